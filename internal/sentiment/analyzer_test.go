package sentiment

import (
	"context"
	"testing"

	"github.com/ppiankov/credence/internal/model"
)

type fakeScorer struct {
	scores PolarityScores
}

func (f fakeScorer) Scores(text string) PolarityScores { return f.scores }

type fakeClassifier struct {
	label      string
	confidence float64
}

func (f fakeClassifier) Classify(text string) (string, float64) { return f.label, f.confidence }

func TestAnalyzeAgreementPositive(t *testing.T) {
	a := NewAnalyzer(
		fakeScorer{PolarityScores{Compound: 0.6, Neutral: 0.7}},
		fakeClassifier{LabelPositive, 0.9},
		nil, nil,
	)

	profile := a.Analyze(context.Background(), "great news")
	if profile.OverallTone != model.TonePositive {
		t.Errorf("tone = %s, want POSITIVE", profile.OverallTone)
	}
	if profile.Compound != 0.6 {
		t.Errorf("compound = %v, want 0.6", profile.Compound)
	}
	if profile.ClassifierConfidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", profile.ClassifierConfidence)
	}
}

func TestAnalyzeAgreementNegative(t *testing.T) {
	a := NewAnalyzer(
		fakeScorer{PolarityScores{Compound: -0.6, Neutral: 0.7}},
		fakeClassifier{LabelNegative, 0.8},
		nil, nil,
	)

	if profile := a.Analyze(context.Background(), "terrible"); profile.OverallTone != model.ToneNegative {
		t.Errorf("tone = %s, want NEGATIVE", profile.OverallTone)
	}
}

func TestAnalyzeDisagreementCollapsesToNeutral(t *testing.T) {
	tests := []struct {
		name       string
		compound   float64
		label      string
	}{
		{"positive polarity, negative label", 0.6, LabelNegative},
		{"negative polarity, positive label", -0.6, LabelPositive},
		{"strong disagreement both ways", 0.95, LabelNegative},
		{"weak polarity, positive label", 0.01, LabelPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(
				fakeScorer{PolarityScores{Compound: tt.compound, Neutral: 0.7}},
				fakeClassifier{tt.label, 0.9},
				nil, nil,
			)
			if profile := a.Analyze(context.Background(), "text"); profile.OverallTone != model.ToneNeutral {
				t.Errorf("tone = %s, want NEUTRAL", profile.OverallTone)
			}
		})
	}
}

func TestAnalyzeDegradedProfile(t *testing.T) {
	a := NewAnalyzer(nil, nil, nil, nil)

	profile := a.Analyze(context.Background(), "anything")
	if !profile.Degraded() {
		t.Fatal("expected degraded profile")
	}
	if profile.ClassifierLabel != model.ClassifierUnavailable {
		t.Errorf("label = %q, want %q", profile.ClassifierLabel, model.ClassifierUnavailable)
	}
	if profile.OverallTone != model.ToneNeutral {
		t.Errorf("tone = %s, want NEUTRAL", profile.OverallTone)
	}
	if profile.RiskNote != "Sentiment models could not be loaded." {
		t.Errorf("unexpected risk note: %q", profile.RiskNote)
	}
	if profile.Risky() {
		t.Error("degraded profile must never flag as risky")
	}
}

func TestStaticRiskNote(t *testing.T) {
	tests := []struct {
		name   string
		scores PolarityScores
		want   string
	}{
		{
			"extreme positive polarity",
			PolarityScores{Compound: 0.9, Neutral: 0.8},
			"Warning: text has a very strong sentiment polarity, which could be indicative of manipulative or biased language.",
		},
		{
			"extreme negative polarity",
			PolarityScores{Compound: -0.8, Neutral: 0.8},
			"Warning: text has a very strong sentiment polarity, which could be indicative of manipulative or biased language.",
		},
		{
			"low neutrality",
			PolarityScores{Compound: 0.3, Neutral: 0.4},
			"Note: text is highly emotional with low neutrality.",
		},
		{
			"calm text",
			PolarityScores{Compound: 0.1, Neutral: 0.9},
			"No specific manipulative language detected.",
		},
		{
			"boundary compound not extreme",
			PolarityScores{Compound: 0.7, Neutral: 0.9},
			"No specific manipulative language detected.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := staticRiskNote(tt.scores); got != tt.want {
				t.Errorf("staticRiskNote = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfileRisky(t *testing.T) {
	risky := model.SentimentProfile{Compound: 0.8, Neutral: 0.9, ClassifierLabel: LabelPositive}
	if !risky.Risky() {
		t.Error("extreme compound should flag")
	}

	emotional := model.SentimentProfile{Compound: 0.2, Neutral: 0.3, ClassifierLabel: LabelPositive}
	if !emotional.Risky() {
		t.Error("low neutrality should flag")
	}

	calm := model.SentimentProfile{Compound: 0.1, Neutral: 0.9, ClassifierLabel: LabelPositive}
	if calm.Risky() {
		t.Error("calm profile should not flag")
	}
}
