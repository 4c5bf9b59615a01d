package evidence

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	redditTokenURL  = "https://www.reddit.com/api/v1/access_token"
	redditSearchURL = "https://oauth.reddit.com/r/%s/search"
)

// subredditMap maps trusted subreddits to topic keywords. A query is only
// sent to subreddits whose keywords it mentions.
var subredditMap = map[string][]string{
	"AskHistorians":   {"history", "war", "ancient", "historical"},
	"AskScience":      {"science", "biology", "physics", "chemistry", "research"},
	"ChangeMyView":    {"opinion", "view", "belief", "perspective"},
	"NeutralPolitics": {"politics", "government", "election", "policy"},
	"Skeptic":         {"debunk", "pseudoscience", "misinformation", "hoax"},
	"OutOfTheLoop":    {"trending", "viral", "what is", "happened"},
	"WorldNews":       {"world", "international", "global", "country"},
	"News":            {"news", "current events", "breaking"},
	"Factual":         {"factual", "unbiased", "source-based"},
	"TrueReddit":      {"in-depth", "article", "long-read"},
	"AskEconomics":    {"economics", "finance", "market", "money"},
	"AskPhilosophy":   {"philosophy", "ethics", "morality", "meaning"},
	"AskAcademia":     {"academic", "research", "university", "study"},
	"BadHistory":      {"misconception", "bad history", "debunk history"},
	"DataIsBeautiful": {"data", "visualization", "statistics", "chart"},
}

// Reddit is the social discussion adapter. It searches a curated set of
// subreddits via the OAuth API using client-credentials auth.
type Reddit struct {
	clientID     string
	clientSecret string
	client       *client
	maxResults   int

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewReddit creates a new Reddit adapter
func NewReddit(clientID, clientSecret string, c *client, maxResults int) *Reddit {
	return &Reddit{
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       c,
		maxResults:   maxResults,
	}
}

// Name returns the source name
func (r *Reddit) Name() string {
	return "Reddit"
}

// Configured reports whether OAuth credentials are present
func (r *Reddit) Configured() bool {
	return r.clientID != "" && r.clientSecret != ""
}

type redditTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Selftext  string `json:"selftext"`
				Permalink string `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// selectSubreddits picks subreddits whose keywords appear in the query
func selectSubreddits(query string) []string {
	lower := strings.ToLower(query)
	var selected []string
	for sub, keywords := range subredditMap {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				selected = append(selected, sub)
				break
			}
		}
	}
	return selected
}

// accessToken returns a valid OAuth token, refreshing it when expired
func (r *Reddit) accessToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token != "" && time.Now().Before(r.tokenExpiry) {
		return r.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	basic := base64.StdEncoding.EncodeToString([]byte(r.clientID + ":" + r.clientSecret))
	header := http.Header{}
	header.Set("Authorization", "Basic "+basic)

	var resp redditTokenResponse
	if err := r.client.postForm(ctx, redditTokenURL, header, form, &resp); err != nil {
		return "", fmt.Errorf("reddit token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("reddit token: empty access token")
	}

	r.token = resp.AccessToken
	// Refresh one minute early to avoid using a token mid-expiry
	r.tokenExpiry = time.Now().Add(time.Duration(resp.ExpiresIn)*time.Second - time.Minute)

	return r.token, nil
}

// Search looks for relevant discussions across the selected subreddits
func (r *Reddit) Search(ctx context.Context, query string) ([]Snippet, error) {
	if !r.Configured() {
		return nil, fmt.Errorf("reddit API credentials not configured")
	}

	subreddits := selectSubreddits(query)
	if len(subreddits) == 0 {
		return nil, nil
	}

	token, err := r.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(r.maxResults))
	params.Set("sort", "relevance")
	params.Set("restrict_sr", "true")

	searchURL := fmt.Sprintf(redditSearchURL, strings.Join(subreddits, "+")) + "?" + params.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	var resp redditSearchResponse
	if err := r.client.getJSON(ctx, searchURL, header, &resp); err != nil {
		return nil, fmt.Errorf("reddit search: %w", err)
	}

	var snippets []Snippet
	for i, child := range resp.Data.Children {
		if i >= r.maxResults {
			break
		}
		body := truncate(child.Data.Selftext, 150)
		snippets = append(snippets, Snippet{
			SourceName: r.Name(),
			Title:      child.Data.Title,
			Body:       body,
			URL:        "https://reddit.com" + child.Data.Permalink,
		})
	}
	return snippets, nil
}
