package evidence

import (
	"context"
	"fmt"
	"net/http"
)

const serperSearchURL = "https://google.serper.dev/search"

// Serper is the Serper.dev web search adapter
type Serper struct {
	apiKey     string
	client     *client
	maxResults int
}

// NewSerper creates a new Serper adapter
func NewSerper(apiKey string, c *client, maxResults int) *Serper {
	return &Serper{apiKey: apiKey, client: c, maxResults: maxResults}
}

// Name returns the source name
func (s *Serper) Name() string {
	return "Serper web search"
}

// Configured reports whether an API key is present
func (s *Serper) Configured() bool {
	return s.apiKey != ""
}

type serperRequest struct {
	Query string `json:"q"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
}

// Search performs a web search and returns the top organic results
func (s *Serper) Search(ctx context.Context, query string) ([]Snippet, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("serper API key not configured")
	}

	header := http.Header{}
	header.Set("X-API-KEY", s.apiKey)

	var resp serperResponse
	if err := s.client.postJSON(ctx, serperSearchURL, header, serperRequest{Query: query}, &resp); err != nil {
		return nil, fmt.Errorf("serper search: %w", err)
	}

	var snippets []Snippet
	for i, r := range resp.Organic {
		if i >= s.maxResults {
			break
		}
		snippets = append(snippets, Snippet{
			SourceName: s.Name(),
			Title:      r.Title,
			Body:       r.Snippet,
			URL:        r.Link,
		})
	}
	return snippets, nil
}
