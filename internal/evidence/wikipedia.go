package evidence

import (
	"context"
	"fmt"
	"net/url"
)

const (
	wikipediaSearchURL  = "https://en.wikipedia.org/w/api.php"
	wikipediaSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
)

// Wikipedia is the encyclopedia adapter. It needs no credentials: a search
// resolves the best-matching page title, then the summary endpoint supplies
// the page extract.
type Wikipedia struct {
	client *client
}

// NewWikipedia creates a new Wikipedia adapter
func NewWikipedia(c *client) *Wikipedia {
	return &Wikipedia{client: c}
}

// Name returns the source name
func (w *Wikipedia) Name() string {
	return "Wikipedia"
}

// Configured always reports true; Wikipedia needs no API key
func (w *Wikipedia) Configured() bool {
	return true
}

type wikipediaSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikipediaSummaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Search resolves the query to a page and returns its summary
func (w *Wikipedia) Search(ctx context.Context, query string) ([]Snippet, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", "1")
	params.Set("format", "json")

	var search wikipediaSearchResponse
	if err := w.client.getJSON(ctx, wikipediaSearchURL+"?"+params.Encode(), nil, &search); err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}

	if len(search.Query.Search) == 0 {
		return nil, nil
	}
	title := search.Query.Search[0].Title

	var summary wikipediaSummaryResponse
	summaryURL := wikipediaSummaryURL + url.PathEscape(title)
	if err := w.client.getJSON(ctx, summaryURL, nil, &summary); err != nil {
		return nil, fmt.Errorf("wikipedia summary for %q: %w", title, err)
	}

	if summary.Extract == "" {
		return nil, nil
	}

	return []Snippet{{
		SourceName: w.Name(),
		Title:      summary.Title,
		Body:       summary.Extract,
		URL:        summary.ContentURLs.Desktop.Page,
	}}, nil
}
