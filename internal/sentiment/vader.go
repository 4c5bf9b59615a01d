package sentiment

import "github.com/jonreiter/govader"

// VADERScorer adapts the VADER lexicon analyzer to the PolarityScorer
// interface. VADER is rule-based and deterministic, so repeated analyses of
// the same text always score identically.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADERScorer creates a VADER polarity scorer
func NewVADERScorer() *VADERScorer {
	return &VADERScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Scores returns the four VADER sub-scores for the text
func (v *VADERScorer) Scores(text string) PolarityScores {
	s := v.analyzer.PolarityScores(text)
	return PolarityScores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}
