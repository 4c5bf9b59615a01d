package sentiment

import (
	"context"
	"fmt"
	"math"

	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
	"go.uber.org/zap"
)

// PolarityScores are the continuous polarity-and-intensity sub-scores.
// Compound is a single normalized score in [-1, 1].
type PolarityScores struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// PolarityScorer produces continuous polarity sub-scores for a text
type PolarityScorer interface {
	Scores(text string) PolarityScores
}

// Classifier produces a categorical two-class sentiment label with a
// confidence in [0, 1]
type Classifier interface {
	Classify(text string) (label string, confidence float64)
}

const riskNotePrompt = `Analyze the following sentiment scores from a piece of text and provide a brief, one-sentence explanation of the tone.
If the sentiment is very strong (compound score > 0.7 or < -0.7) or not very neutral, mention that this could indicate biased or manipulative language.

Scores:
- Compound polarity: %.2f (a single score from -1 for negative to +1 for positive)
- Classifier label: %s

Respond with the one-sentence analysis only.`

// Analyzer combines the continuous polarity signal with the categorical
// classifier and synthesizes an overall tone plus a manipulation-risk note.
type Analyzer struct {
	polarity   PolarityScorer
	classifier Classifier
	provider   llm.Provider
	logger     *zap.Logger
}

// NewAnalyzer creates a sentiment analyzer. A nil polarity scorer or
// classifier means the underlying model failed to load; every call then
// returns the fixed degraded profile instead of failing.
func NewAnalyzer(polarity PolarityScorer, classifier Classifier, provider llm.Provider, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		polarity:   polarity,
		classifier: classifier,
		provider:   provider,
		logger:     logger,
	}
}

// Analyze scores the text. The overall tone is POSITIVE only when the
// compound score exceeds +0.05 AND the classifier agrees, symmetric for
// NEGATIVE; any disagreement collapses to NEUTRAL, never to a guess.
func (a *Analyzer) Analyze(ctx context.Context, text string) model.SentimentProfile {
	if a.polarity == nil || a.classifier == nil {
		return model.SentimentProfile{
			ClassifierLabel: model.ClassifierUnavailable,
			OverallTone:     model.ToneNeutral,
			RiskNote:        "Sentiment models could not be loaded.",
		}
	}

	scores := a.polarity.Scores(text)
	label, confidence := a.classifier.Classify(text)

	tone := model.ToneNeutral
	switch {
	case scores.Compound > 0.05 && label == LabelPositive:
		tone = model.TonePositive
	case scores.Compound < -0.05 && label == LabelNegative:
		tone = model.ToneNegative
	}

	return model.SentimentProfile{
		Negative:             scores.Negative,
		Neutral:              scores.Neutral,
		Positive:             scores.Positive,
		Compound:             scores.Compound,
		ClassifierLabel:      label,
		ClassifierConfidence: confidence,
		OverallTone:          tone,
		RiskNote:             a.riskNote(ctx, scores, label),
	}
}

// riskNote generates the manipulation-risk note, degrading to the
// deterministic thresholds when the provider is missing or fails
func (a *Analyzer) riskNote(ctx context.Context, scores PolarityScores, label string) string {
	if a.provider != nil {
		note, err := a.provider.Complete(ctx, llm.CompletionRequest{
			Prompt: fmt.Sprintf(riskNotePrompt, scores.Compound, label),
		})
		if err == nil && note != "" {
			return note
		}
		if err != nil {
			a.logger.Warn("risk note generation failed, using static note", zap.Error(err))
		}
	}

	return staticRiskNote(scores)
}

// staticRiskNote is the deterministic fallback note
func staticRiskNote(scores PolarityScores) string {
	if math.Abs(scores.Compound) > 0.7 {
		return "Warning: text has a very strong sentiment polarity, which could be indicative of manipulative or biased language."
	}
	if scores.Neutral < 0.5 {
		return "Note: text is highly emotional with low neutrality."
	}
	return "No specific manipulative language detected."
}
