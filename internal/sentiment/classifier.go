package sentiment

import (
	"fmt"

	"github.com/cdipaolo/sentiment"
)

// Categorical classifier labels
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// BayesClassifier adapts the pretrained naive-Bayes sentiment model to the
// Classifier interface.
type BayesClassifier struct {
	model sentiment.Models
}

// NewBayesClassifier restores the pretrained model. Restore failure is a
// model-load failure: the caller should fall back to the degraded profile
// rather than treating it as fatal.
func NewBayesClassifier() (*BayesClassifier, error) {
	m, err := sentiment.Restore()
	if err != nil {
		return nil, fmt.Errorf("restore sentiment model: %w", err)
	}
	return &BayesClassifier{model: m}, nil
}

// Classify labels the text POSITIVE or NEGATIVE. The model only reports a
// binary document score, so confidence is the fraction of scored words
// agreeing with the document label (1.0 when no words score).
func (b *BayesClassifier) Classify(text string) (string, float64) {
	analysis := b.model.SentimentAnalysis(text, sentiment.English)

	label := LabelNegative
	if analysis.Score == 1 {
		label = LabelPositive
	}

	if len(analysis.Words) == 0 {
		return label, 1.0
	}

	agree := 0
	for _, w := range analysis.Words {
		if w.Score == analysis.Score {
			agree++
		}
	}
	return label, float64(agree) / float64(len(analysis.Words))
}
