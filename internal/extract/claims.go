package extract

import (
	"context"
	"strings"

	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
	"go.uber.org/zap"
)

const claimPrompt = `You are an expert fact-checking assistant. Your task is to read the provided text and extract all statements that are verifiable factual claims. A factual claim is a statement that can be checked for accuracy using external sources, such as dates, numbers, events, names, or specific assertions about reality. Do not include opinions, emotional language, generalizations, or subjective statements.

Instructions:
- List only the factual claims, one per line.
- Exclude any statements that are opinions, predictions, or vague descriptions.
- If a sentence contains both factual and non-factual content, extract only the factual part.
- Do not include any explanation or commentary, just the claims.

Text to analyze:
`

// ClaimExtractor turns cleaned text into an ordered list of atomic,
// independently verifiable factual claims.
type ClaimExtractor struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider, logger *zap.Logger) *ClaimExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaimExtractor{provider: provider, logger: logger}
}

// Extract asks the generative provider for one claim per line and parses
// them in emission order. Duplicates are kept; this layer imposes no
// reordering or deduplication. If the provider is missing or errors, the
// result is an empty list and the pipeline continues with zero claims.
func (e *ClaimExtractor) Extract(ctx context.Context, cleanedText string) []model.Claim {
	if e.provider == nil {
		return nil
	}

	response, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: claimPrompt + cleanedText,
	})
	if err != nil {
		e.logger.Warn("claim extraction failed, continuing with zero claims", zap.Error(err))
		return nil
	}

	return parseClaims(response)
}

// parseClaims splits the response into claims, one per non-empty line,
// trimming list markers the model may add
func parseClaims(response string) []model.Claim {
	var claims []model.Claim
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		claims = append(claims, model.Claim{Text: line})
	}
	return claims
}
