package evidence

import "context"

// Snippet is one piece of evidence returned by a source for a query.
// Snippets are ephemeral: they live for a single verification round and are
// never persisted or shared across requests.
type Snippet struct {
	SourceName string `json:"source_name"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	URL        string `json:"url,omitempty"`
}

// Source is a single external evidence capability (web search, news index,
// encyclopedia, fact-check registry, discussion forum). Implementations are
// independently failable: one source's error never aborts a round.
type Source interface {
	// Name returns a short human-readable source name
	Name() string

	// Configured reports whether the source has the credentials it needs.
	// Unconfigured sources are skipped, not treated as errors.
	Configured() bool

	// Search queries the source for evidence relevant to the query
	Search(ctx context.Context, query string) ([]Snippet, error)
}
