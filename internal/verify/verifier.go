package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
	"go.uber.org/zap"
)

// EvidencePool gathers the merged evidence string for one query. The pool is
// total: it renders placeholders for failed or unconfigured sources instead
// of returning an error.
type EvidencePool interface {
	Collect(ctx context.Context, query string) string
}

// errMalformedVerdict marks generative output whose first line is not one of
// the three assessments. Treated as a parse failure, never a silent guess.
var errMalformedVerdict = errors.New("malformed verdict")

const (
	reasoningFallback      = "No reasoning provided."
	synthesisUnavailable   = "Analysis of follow-up evidence is unavailable."
	verdictPromptTemplate  = "Your task is to verify the following claim based on the provided search results.\n\nClaim: %q\n\nSearch Results:\n---\n%s\n---\n\nBased ONLY on the search results, respond with a final assessment on the first line: SUPPORTED, CONTRADICTED, or UNCERTAIN.\nThen, on the second line, provide a brief, one-sentence explanation for your assessment based on the information you found."
	followUpContradictedQ  = "The following claim has been contradicted: %q. Generate a neutral search query to find the correct information or the opposing viewpoint. The query should be objective and suitable for a web search. For example, if the claim is 'The sky is green', a good query would be 'what color is the sky'. Respond with the query only."
	followUpSupportedQ     = "The following claim has been supported: %q. Generate a search query to find high-quality, primary sources or strong evidence that further validates this claim. For example, if the claim is 'Water is H2O', a good query would be 'scientific papers on the chemical composition of water'. Respond with the query only."
	synthesisContradictedP = "The original claim was: %q\nThis claim was found to be contradicted. The following search results are from a query trying to find the correct information.\nSynthesize these results into a single, corrected statement, and list the top 3 most reliable source URLs that support this correction.\n\nSearch Results:\n---\n%s\n---\n\nOutput only a JSON object with two keys: \"statement\" (the corrected fact) and \"sources\" (a list of up to 3 URLs)."
	synthesisSupportedP    = "The original claim was: %q\nThis claim was found to be supported. The following search results are from a query trying to find more evidence.\nSynthesize these results into a single sentence that summarizes the supporting evidence, and list the top 3 most reliable source URLs that provide this evidence.\n\nSearch Results:\n---\n%s\n---\n\nOutput only a JSON object with two keys: \"statement\" (the summary of evidence) and \"sources\" (a list of up to 3 URLs)."
)

// maxCitedSources bounds the URLs carried on one verdict
const maxCitedSources = 3

// Verifier resolves claims to verdicts against the evidence pool.
// Verify is total: every failure path degrades to an UNCERTAIN verdict with
// the failure described in the reasoning.
type Verifier struct {
	provider llm.Provider
	pool     EvidencePool
	logger   *zap.Logger
}

// NewVerifier creates a new claim verifier
func NewVerifier(provider llm.Provider, pool EvidencePool, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{provider: provider, pool: pool, logger: logger}
}

// Verify runs the full verification sequence for one claim: an evidence
// round, a strict two-line classification, and, for non-UNCERTAIN verdicts,
// a second evidence round that yields a corrective or corroborating
// statement with cited sources.
func (v *Verifier) Verify(ctx context.Context, claim model.Claim) model.ClaimVerdict {
	evidenceText := v.pool.Collect(ctx, claim.Text)

	assessment, reasoning, err := v.classify(ctx, claim.Text, evidenceText)
	if err != nil {
		v.logger.Warn("claim classification failed",
			zap.String("claim", claim.Text),
			zap.Error(err),
		)
		return model.ClaimVerdict{
			Claim:      claim,
			Assessment: model.AssessmentUncertain,
			Reasoning:  fmt.Sprintf("Verification failed: %v", err),
		}
	}

	verdict := model.ClaimVerdict{
		Claim:      claim,
		Assessment: assessment,
		Reasoning:  reasoning,
	}

	if assessment == model.AssessmentUncertain {
		return verdict
	}

	// Second round: look for the corrected fact (contradicted) or for
	// stronger corroboration (supported)
	followUp := v.followUpQuery(ctx, claim.Text, assessment)
	followUpEvidence := v.pool.Collect(ctx, followUp)
	statement, sources := v.synthesize(ctx, claim.Text, followUpEvidence, assessment)

	if assessment == model.AssessmentContradicted {
		verdict.CorrectiveStatement = statement
	} else {
		verdict.SupportingEvidence = statement
	}
	verdict.CitedSources = sources

	return verdict
}

// classify asks for the two-line verdict and parses it positionally
func (v *Verifier) classify(ctx context.Context, claim, evidenceText string) (model.Assessment, string, error) {
	if v.provider == nil {
		return "", "", fmt.Errorf("no generative provider configured")
	}

	response, err := v.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(verdictPromptTemplate, claim, evidenceText),
	})
	if err != nil {
		return "", "", err
	}

	return parseVerdict(response)
}

// parseVerdict parses the first line as the assessment and the second as
// the reasoning. The first line must reduce to exactly one of the three
// assessments; anything else is a malformed verdict.
func parseVerdict(response string) (model.Assessment, string, error) {
	lines := strings.Split(strings.TrimSpace(response), "\n")

	first := strings.ToUpper(strings.TrimSpace(lines[0]))
	first = strings.Trim(first, ".:!*")
	assessment := model.Assessment(first)
	if !assessment.Valid() {
		return "", "", fmt.Errorf("%w: %q", errMalformedVerdict, lines[0])
	}

	reasoning := reasoningFallback
	if len(lines) > 1 {
		if second := strings.TrimSpace(lines[1]); second != "" {
			reasoning = second
		}
	}

	return assessment, reasoning, nil
}

// followUpQuery generates a verdict-tailored search query, falling back to
// a deterministic template when the provider fails
func (v *Verifier) followUpQuery(ctx context.Context, claim string, assessment model.Assessment) string {
	fallback := "evidence supporting " + claim
	prompt := followUpSupportedQ
	if assessment == model.AssessmentContradicted {
		fallback = "opposite of " + claim
		prompt = followUpContradictedQ
	}

	if v.provider == nil {
		return fallback
	}

	response, err := v.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(prompt, claim),
	})
	if err != nil || strings.TrimSpace(response) == "" {
		return fallback
	}
	return strings.TrimSpace(response)
}

type synthesisResult struct {
	Statement string   `json:"statement"`
	Sources   []string `json:"sources"`
}

// synthesize turns the follow-up evidence into a single statement plus up
// to three cited source URLs, parsed as JSON. Any failure degrades to an
// explicit unavailable statement with an empty source list.
func (v *Verifier) synthesize(ctx context.Context, claim, evidenceText string, assessment model.Assessment) (string, []string) {
	if v.provider == nil {
		return synthesisUnavailable, nil
	}

	prompt := synthesisSupportedP
	if assessment == model.AssessmentContradicted {
		prompt = synthesisContradictedP
	}

	response, err := v.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(prompt, claim, evidenceText),
	})
	if err != nil {
		v.logger.Warn("evidence synthesis failed", zap.String("claim", claim), zap.Error(err))
		return synthesisUnavailable, nil
	}

	var result synthesisResult
	if err := json.Unmarshal([]byte(stripJSONFences(response)), &result); err != nil {
		v.logger.Warn("evidence synthesis returned malformed JSON",
			zap.String("claim", claim),
			zap.Error(err),
		)
		return synthesisUnavailable, nil
	}
	if result.Statement == "" {
		return synthesisUnavailable, nil
	}

	sources := result.Sources
	if len(sources) > maxCitedSources {
		sources = sources[:maxCitedSources]
	}

	return result.Statement, sources
}

// stripJSONFences removes markdown code fences models wrap JSON in
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
