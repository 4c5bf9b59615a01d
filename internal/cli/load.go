package cli

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/ppiankov/credence/internal/model"
	"github.com/spf13/viper"
)

// loadConfig builds the runtime configuration: defaults first, then whatever
// viper has read (config file and CREDENCE_* environment) layered on top.
// Flags are applied by the individual commands, so the precedence order is
// flags > env > config file > defaults.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	// model.Config carries yaml tags; point the decoder at those so the
	// config file and this struct share one set of key names
	if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return cfg, nil
}
