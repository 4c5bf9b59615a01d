package evidence

import (
	"context"
	"fmt"
	"net/url"
)

const newsdataSearchURL = "https://newsdata.io/api/1/news"

// Newsdata is the Newsdata.io news search adapter
type Newsdata struct {
	apiKey     string
	client     *client
	maxResults int
}

// NewNewsdata creates a new Newsdata.io adapter
func NewNewsdata(apiKey string, c *client, maxResults int) *Newsdata {
	return &Newsdata{apiKey: apiKey, client: c, maxResults: maxResults}
}

// Name returns the source name
func (n *Newsdata) Name() string {
	return "Newsdata.io"
}

// Configured reports whether an API key is present
func (n *Newsdata) Configured() bool {
	return n.apiKey != ""
}

type newsdataResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
	} `json:"results"`
}

// Search finds news articles relevant to the query
func (n *Newsdata) Search(ctx context.Context, query string) ([]Snippet, error) {
	if !n.Configured() {
		return nil, fmt.Errorf("Newsdata.io key not configured")
	}

	params := url.Values{}
	params.Set("apikey", n.apiKey)
	params.Set("q", query)
	params.Set("language", "en")

	var resp newsdataResponse
	if err := n.client.getJSON(ctx, newsdataSearchURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("newsdata search: %w", err)
	}

	var snippets []Snippet
	for i, a := range resp.Results {
		if i >= n.maxResults {
			break
		}
		snippets = append(snippets, Snippet{
			SourceName: n.Name(),
			Title:      a.Title,
			Body:       stripTags(a.Description),
			URL:        a.Link,
		})
	}
	return snippets, nil
}
