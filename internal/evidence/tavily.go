package evidence

import (
	"context"
	"fmt"
)

const tavilySearchURL = "https://api.tavily.com/search"

// Tavily is the Tavily web search adapter
type Tavily struct {
	apiKey     string
	client     *client
	maxResults int
}

// NewTavily creates a new Tavily adapter
func NewTavily(apiKey string, c *client, maxResults int) *Tavily {
	return &Tavily{apiKey: apiKey, client: c, maxResults: maxResults}
}

// Name returns the source name
func (t *Tavily) Name() string {
	return "Tavily web search"
}

// Configured reports whether an API key is present
func (t *Tavily) Configured() bool {
	return t.apiKey != ""
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Search performs an advanced-depth web search
func (t *Tavily) Search(ctx context.Context, query string) ([]Snippet, error) {
	if !t.Configured() {
		return nil, fmt.Errorf("tavily API key not configured")
	}

	req := tavilyRequest{
		APIKey:      t.apiKey,
		Query:       query,
		SearchDepth: "advanced",
	}

	var resp tavilyResponse
	if err := t.client.postJSON(ctx, tavilySearchURL, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}

	var snippets []Snippet
	for i, r := range resp.Results {
		if i >= t.maxResults {
			break
		}
		snippets = append(snippets, Snippet{
			SourceName: t.Name(),
			Title:      r.Title,
			Body:       r.Content,
			URL:        r.URL,
		})
	}
	return snippets, nil
}
