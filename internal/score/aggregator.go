package score

import (
	"context"
	"fmt"
	"math"

	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
	"go.uber.org/zap"
)

// Fixed aggregation weights. These are policy constants, not per-request
// configuration: verification dominates, sentiment and source credibility
// split the remainder.
const (
	WeightVerification = 0.6
	WeightSentiment    = 0.2
	WeightSource       = 0.2
)

// Factor keys in TrustScoreResult.Factors
const (
	FactorVerification = "verification"
	FactorSentiment    = "sentiment"
	FactorSource       = "source_credibility"
)

const summaryPrompt = `Analyze the following trust score and contributing factors to provide a final, one-sentence summary for the user.

Data:
- Final trust score: %.2f (out of 1.0)
- Verification factor: %q
- Sentiment factor: %q
- Source credibility factor: %q

Example summary: "This text is moderately trustworthy; while the source is credible, the language is highly emotional and some claims could not be verified."
Example summary: "This text is highly trustworthy, with verified claims from a credible source and neutral language."

Respond with the one-sentence summary only.`

// Aggregator combines per-claim verdicts, sentiment polarity, and source
// credibility into one weighted trust score with a generated rationale.
type Aggregator struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewAggregator creates a new score aggregator
func NewAggregator(provider llm.Provider, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{provider: provider, logger: logger}
}

// Aggregate computes the final trust score:
//
//	verification = max(0, supported - 2*contradicted) / totalClaims (0 with no claims)
//	sentiment    = 1 - |compound|
//	source       = credibility score passthrough
//	final        = clamp01(0.6*verification + 0.2*sentiment + 0.2*source)
//
// A contradiction is penalized twice as heavily as a support rewards, so one
// contradiction cancels two supports. The floor clamp applies before the
// division, keeping the verification term in [0, 1] even when contradictions
// outnumber supports.
func (a *Aggregator) Aggregate(ctx context.Context, verdicts []model.ClaimVerdict, sentiment model.SentimentProfile, credibility model.SourceCredibility) model.TrustScoreResult {
	factors := make(map[string]string, 3)

	verificationScore := 0.0
	if len(verdicts) > 0 {
		supported, contradicted := 0, 0
		for _, v := range verdicts {
			switch v.Assessment {
			case model.AssessmentSupported:
				supported++
			case model.AssessmentContradicted:
				contradicted++
			}
		}
		verificationScore = math.Max(0, float64(supported-2*contradicted)) / float64(len(verdicts))
		factors[FactorVerification] = fmt.Sprintf("%d supported, %d contradicted claims.", supported, contradicted)
	} else {
		factors[FactorVerification] = "No claims were verified."
	}

	sentimentScore := 1 - math.Abs(sentiment.Compound)
	factors[FactorSentiment] = "Sentiment: " + sentiment.RiskNote

	sourceScore := credibility.Score
	factors[FactorSource] = "Source: " + credibility.BiasNote

	finalScore := WeightVerification*verificationScore +
		WeightSentiment*sentimentScore +
		WeightSource*sourceScore
	finalScore = math.Max(0, math.Min(1, finalScore))

	return model.TrustScoreResult{
		Score:   finalScore,
		Summary: a.summary(ctx, finalScore, factors),
		Factors: factors,
	}
}

// summary generates the one-sentence rationale, falling back to fixed tier
// templates keyed by score thresholds when the provider is missing or fails
func (a *Aggregator) summary(ctx context.Context, finalScore float64, factors map[string]string) string {
	if a.provider != nil {
		summary, err := a.provider.Complete(ctx, llm.CompletionRequest{
			Prompt: fmt.Sprintf(summaryPrompt, finalScore,
				factors[FactorVerification],
				factors[FactorSentiment],
				factors[FactorSource],
			),
		})
		if err == nil && summary != "" {
			return summary
		}
		if err != nil {
			a.logger.Warn("summary generation failed, using static template", zap.Error(err))
		}
	}

	return staticSummary(finalScore)
}

// staticSummary is the deterministic tier-template fallback
func staticSummary(finalScore float64) string {
	switch {
	case finalScore > 0.7:
		return "The text appears to be generally trustworthy, with most claims supported by evidence and neutral language."
	case finalScore > 0.4:
		return "Exercise caution. While some claims are supported, there are indicators of potential bias or unverified information."
	default:
		return "High skepticism advised. The text contains significant contradictions, biased language, or originates from a source with low credibility."
	}
}
