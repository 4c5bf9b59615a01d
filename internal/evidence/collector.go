package evidence

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ppiankov/credence/internal/model"
	"go.uber.org/zap"
)

// Collector fans one query out to every evidence source and merges the
// results into a single evidence pool string. Sources that fail or are not
// configured contribute an explanatory placeholder; the round itself never
// fails, even with zero sources configured.
type Collector struct {
	sources []Source
	logger  *zap.Logger
}

// NewCollector creates a collector over the given sources
func NewCollector(sources []Source, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{sources: sources, logger: logger}
}

// BuildSources constructs the standard adapter set from configuration.
// Adapters with missing credentials are still included: they report
// themselves unconfigured and show up as placeholders in the pool.
func BuildSources(cfg *model.Config) []Source {
	c := newClient(cfg)
	maxResults := cfg.Evidence.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}

	return []Source{
		NewSerper(cfg.Evidence.SerperAPIKey, c, maxResults),
		NewTavily(cfg.Evidence.TavilyAPIKey, c, maxResults),
		NewWikipedia(c),
		NewNewsAPI(cfg.Evidence.NewsAPIKey, c, maxResults),
		NewNewsdata(cfg.Evidence.NewsdataAPIKey, c, maxResults),
		NewFactCheck(cfg.Evidence.FactCheckAPIKey, c, maxResults),
		NewReddit(cfg.Evidence.RedditClientID, cfg.Evidence.RedditClientSecret, c, maxResults),
	}
}

// Collect queries all sources concurrently and renders the merged pool.
// Each goroutine writes a disjoint slot, so the merged output is stable
// regardless of completion order.
func (c *Collector) Collect(ctx context.Context, query string) string {
	if len(c.sources) == 0 {
		return "No evidence sources are configured."
	}

	blocks := make([]string, len(c.sources))
	var wg sync.WaitGroup

	for i, src := range c.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			blocks[i] = c.collectOne(ctx, src, query)
		}(i, src)
	}
	wg.Wait()

	return strings.Join(blocks, "\n\n")
}

func (c *Collector) collectOne(ctx context.Context, src Source, query string) string {
	if !src.Configured() {
		return fmt.Sprintf("%s is not configured.", src.Name())
	}

	snippets, err := src.Search(ctx, query)
	if err != nil {
		c.logger.Debug("evidence source failed",
			zap.String("source", src.Name()),
			zap.Error(err),
		)
		return fmt.Sprintf("Error querying %s: %v", src.Name(), err)
	}

	if len(snippets) == 0 {
		return fmt.Sprintf("### Results from %s:\nNo results found.", src.Name())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### Results from %s:", src.Name())
	for _, s := range snippets {
		b.WriteString("\n- ")
		b.WriteString(s.Title)
		if s.Body != "" {
			b.WriteString(": ")
			b.WriteString(s.Body)
		}
		if s.URL != "" {
			fmt.Fprintf(&b, " (Source: %s)", s.URL)
		}
	}
	return b.String()
}
