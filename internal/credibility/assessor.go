package credibility

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
	"go.uber.org/zap"
)

// Credibility scores: registry-listed domains get reduced trust, everything
// else gets mild default trust.
const (
	ScoreBiased  = 0.5
	ScoreDefault = 0.8
)

const defaultNote = "Source not found in the watchlist."

const assessmentPrompt = `Based on the following information about a content source, provide a brief, one-sentence analysis of its potential bias and reliability.

Information:
- Note: %q
- Calculated credibility score: %.2f (out of 1.0)

Respond with the one-sentence analysis only.`

// Assessor maps a content origin to a credibility score and bias note using
// the static biased-domain registry. The registry is read-only process
// configuration shared by all requests.
type Assessor struct {
	registry map[string]string
	provider llm.Provider
	logger   *zap.Logger
}

// NewAssessor creates a new source credibility assessor
func NewAssessor(registry map[string]string, provider llm.Provider, logger *zap.Logger) *Assessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessor{registry: registry, provider: provider, logger: logger}
}

// Assess scores the origin URL. Registry matches score 0.5 with the
// registry's bias note; everything else (including no URL or an unparseable
// one) scores the 0.8 default. A generative step rephrases the note into a
// one-sentence assessment; on failure the raw note is used verbatim, so
// only prose quality is ever lost.
func (a *Assessor) Assess(ctx context.Context, rawURL string) model.SourceCredibility {
	score := ScoreDefault
	note := defaultNote
	match := ""

	if domain := extractDomain(rawURL); domain != "" {
		if entry, found := a.registry[domain]; found {
			score = ScoreBiased
			note = fmt.Sprintf("Source domain %q is on a watchlist: %s", domain, entry)
			match = domain
		}
	}

	return model.SourceCredibility{
		Score:         score,
		BiasNote:      a.rephrase(ctx, note, score),
		RegistryMatch: match,
	}
}

// rephrase asks the provider for a one-sentence assessment of the note,
// keeping the raw note on any failure
func (a *Assessor) rephrase(ctx context.Context, note string, score float64) string {
	if a.provider == nil {
		return note
	}

	assessment, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(assessmentPrompt, note, score),
	})
	if err != nil || assessment == "" {
		if err != nil {
			a.logger.Warn("credibility assessment generation failed, using raw note", zap.Error(err))
		}
		return note
	}
	return assessment
}

// extractDomain returns the lowercased host of the URL, or "" when the URL
// is absent or unparseable
func extractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
