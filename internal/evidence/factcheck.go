package evidence

import (
	"context"
	"fmt"
	"net/url"
)

const factCheckSearchURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// FactCheck is the Google Fact Check Tools registry adapter. It surfaces
// published fact-check verdicts for claims similar to the query.
type FactCheck struct {
	apiKey     string
	client     *client
	maxResults int
}

// NewFactCheck creates a new Google Fact Check adapter
func NewFactCheck(apiKey string, c *client, maxResults int) *FactCheck {
	return &FactCheck{apiKey: apiKey, client: c, maxResults: maxResults}
}

// Name returns the source name
func (f *FactCheck) Name() string {
	return "Google Fact Check"
}

// Configured reports whether an API key is present
func (f *FactCheck) Configured() bool {
	return f.apiKey != ""
}

type factCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			TextualRating string `json:"textualRating"`
			URL           string `json:"url"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Search looks up published fact checks matching the query
func (f *FactCheck) Search(ctx context.Context, query string) ([]Snippet, error) {
	if !f.Configured() {
		return nil, fmt.Errorf("Google Fact Check API key not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", f.apiKey)

	var resp factCheckResponse
	if err := f.client.getJSON(ctx, factCheckSearchURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("fact check search: %w", err)
	}

	var snippets []Snippet
	for i, c := range resp.Claims {
		if i >= f.maxResults {
			break
		}
		rating := "N/A"
		reviewURL := ""
		if len(c.ClaimReview) > 0 {
			if c.ClaimReview[0].TextualRating != "" {
				rating = c.ClaimReview[0].TextualRating
			}
			reviewURL = c.ClaimReview[0].URL
		}
		snippets = append(snippets, Snippet{
			SourceName: f.Name(),
			Title:      c.Text,
			Body:       "Fact-check verdict: " + rating,
			URL:        reviewURL,
		})
	}
	return snippets, nil
}
