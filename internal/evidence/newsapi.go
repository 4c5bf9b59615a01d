package evidence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const newsAPISearchURL = "https://newsapi.org/v2/everything"

// NewsAPI is the NewsAPI.org news search adapter
type NewsAPI struct {
	apiKey     string
	client     *client
	maxResults int
}

// NewNewsAPI creates a new NewsAPI.org adapter
func NewNewsAPI(apiKey string, c *client, maxResults int) *NewsAPI {
	return &NewsAPI{apiKey: apiKey, client: c, maxResults: maxResults}
}

// Name returns the source name
func (n *NewsAPI) Name() string {
	return "NewsAPI.org"
}

// Configured reports whether an API key is present
func (n *NewsAPI) Configured() bool {
	return n.apiKey != ""
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// Search finds news articles relevant to the query
func (n *NewsAPI) Search(ctx context.Context, query string) ([]Snippet, error) {
	if !n.Configured() {
		return nil, fmt.Errorf("NewsAPI.org key not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(n.maxResults))

	header := http.Header{}
	header.Set("X-Api-Key", n.apiKey)

	var resp newsAPIResponse
	if err := n.client.getJSON(ctx, newsAPISearchURL+"?"+params.Encode(), header, &resp); err != nil {
		return nil, fmt.Errorf("newsapi search: %w", err)
	}

	var snippets []Snippet
	for i, a := range resp.Articles {
		if i >= n.maxResults {
			break
		}
		snippets = append(snippets, Snippet{
			SourceName: n.Name(),
			Title:      a.Title,
			Body:       stripTags(a.Description),
			URL:        a.URL,
		})
	}
	return snippets, nil
}
