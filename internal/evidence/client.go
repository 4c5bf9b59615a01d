package evidence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/util"
	"github.com/ppiankov/credence/internal/worker"
)

// client is the shared outbound HTTP client for all evidence adapters.
// It applies per-host rate limiting before every call and caches successful
// JSON responses for the configured TTL so repeated verification rounds for
// the same query do not hammer the vendors.
type client struct {
	httpClient *http.Client
	limiter    *worker.Limiter
	cache      *cache.Memory
	cacheTTL   time.Duration
	userAgent  string
}

func newClient(cfg *model.Config) *client {
	timeout := cfg.HTTP.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	var mem *cache.Memory
	if cfg.Cache.Enabled {
		mem = cache.NewMemory(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	return &client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
		},
		limiter:   worker.NewLimiter(cfg.Concurrency.AdapterRate, cfg.Concurrency.AdapterBurst),
		cache:     mem,
		cacheTTL:  cfg.Cache.TTL,
		userAgent: cfg.HTTP.UserAgent,
	}
}

// getJSON performs a cached, rate-limited GET and decodes the JSON response
func (c *client) getJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	return c.doJSON(ctx, http.MethodGet, rawURL, header, nil, out)
}

// postJSON performs a cached, rate-limited POST with a JSON body
func (c *client) postJSON(ctx context.Context, rawURL string, header http.Header, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json")
	return c.doJSON(ctx, http.MethodPost, rawURL, header, data, out)
}

func (c *client) doJSON(ctx context.Context, method, rawURL string, header http.Header, body []byte, out any) error {
	cacheKey := method + " " + rawURL + " " + string(body)
	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKey); found {
			return json.Unmarshal(cached.([]byte), out)
		}
	}

	respBody, err := c.do(ctx, method, rawURL, header, body)
	if err != nil {
		return err
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, respBody, c.cacheTTL)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// postForm performs an uncached, rate-limited form POST (used for OAuth
// token exchanges, which must never be cached)
func (c *client) postForm(ctx context.Context, rawURL string, header http.Header, form url.Values, out any) error {
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	respBody, err := c.do(ctx, http.MethodPost, rawURL, header, []byte(form.Encode()))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (c *client) do(ctx context.Context, method, rawURL string, header http.Header, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	return respBody, nil
}

// truncate shortens s to at most n runes. Cutting on a rune boundary keeps
// the result valid UTF-8 whatever bytes sit at position n.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n])) + "..."
}
