package model

import (
	"os"
	"time"
)

// Config holds the complete runtime configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Evidence    EvidenceConfig    `yaml:"evidence"`

	// Registry maps known-biased domains to a bias note. Read-only after
	// startup; shared by all requests.
	Registry map[string]string `yaml:"registry"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port        int           `yaml:"port"`
	TaskTTL     time.Duration `yaml:"task_ttl"`
	MaxUpload   int64         `yaml:"max_upload_bytes"`
	MinTextSize int           `yaml:"min_text_size"`
}

// HTTPConfig configures outbound HTTP behavior for evidence adapters
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy"`
}

// CacheConfig configures the in-memory evidence query cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig bounds parallelism against third-party rate limits
type ConcurrencyConfig struct {
	VerifyWorkers int     `yaml:"verify_workers"`
	AdapterRate   float64 `yaml:"adapter_rate"` // requests per second per host
	AdapterBurst  int     `yaml:"adapter_burst"`
}

// LLMConfig configures the generative summarizer
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds, applied per call
	MaxTokens int    `yaml:"max_tokens"`
}

// EvidenceConfig carries per-adapter credentials. An empty credential
// disables that adapter only; it never fails startup.
type EvidenceConfig struct {
	SerperAPIKey       string `yaml:"-"`
	TavilyAPIKey       string `yaml:"-"`
	NewsAPIKey         string `yaml:"-"`
	NewsdataAPIKey     string `yaml:"-"`
	FactCheckAPIKey    string `yaml:"-"`
	RedditClientID     string `yaml:"-"`
	RedditClientSecret string `yaml:"-"`
	MaxResults         int    `yaml:"max_results"` // snippets kept per adapter per query
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			TaskTTL:     time.Hour,
			MaxUpload:   25_000_000,
			MinTextSize: 10,
		},
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "Credence/0.1 (+https://github.com/ppiankov/credence)",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 4,
			AdapterRate:   2,
			AdapterBurst:  5,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Evidence: EvidenceConfig{
			MaxResults: 3,
		},
		Registry: DefaultRegistry(),
	}
}

// DefaultRegistry returns the built-in biased-domain watchlist
func DefaultRegistry() map[string]string {
	return map[string]string{
		"daily-mail.com":  "Right-leaning, potential for sensationalism",
		"breitbart.com":   "Far-right, known for strong political bias",
		"theguardian.com": "Left-leaning, generally reliable but with a clear perspective",
	}
}

// LoadCredentialsFromEnv fills adapter and LLM credentials from the
// environment. Absent variables leave the corresponding capability disabled.
func (c *Config) LoadCredentialsFromEnv() {
	c.Evidence.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	c.Evidence.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	c.Evidence.NewsAPIKey = os.Getenv("NEWSAPI_ORG_KEY")
	c.Evidence.NewsdataAPIKey = os.Getenv("NEWSDATA_IO_KEY")
	c.Evidence.FactCheckAPIKey = os.Getenv("GOOGLE_FACT_CHECK_KEY")
	c.Evidence.RedditClientID = os.Getenv("REDDIT_CLIENT_ID")
	c.Evidence.RedditClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")

	switch c.LLM.Provider {
	case "openai":
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			c.LLM.BaseURL = baseURL
		}
	}
}
