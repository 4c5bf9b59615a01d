package score

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return f.response, f.err
}

func verdictsOf(assessments ...model.Assessment) []model.ClaimVerdict {
	verdicts := make([]model.ClaimVerdict, len(assessments))
	for i, a := range assessments {
		verdicts[i] = model.ClaimVerdict{Claim: model.Claim{Text: "claim"}, Assessment: a}
	}
	return verdicts
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateExactScore(t *testing.T) {
	// 1 supported of 2 claims: verification 0.5
	// compound 0.5: sentiment 0.5
	// source 0.8
	// final = 0.6*0.5 + 0.2*0.5 + 0.2*0.8 = 0.56
	a := NewAggregator(nil, nil)
	result := a.Aggregate(context.Background(),
		verdictsOf(model.AssessmentSupported, model.AssessmentUncertain),
		model.SentimentProfile{Compound: 0.5},
		model.SourceCredibility{Score: 0.8},
	)

	if !almostEqual(result.Score, 0.56) {
		t.Errorf("score = %v, want 0.56", result.Score)
	}
}

func TestAggregateContradictionsFloorAtZero(t *testing.T) {
	// 1 supported, 1 contradicted: 1 - 2 = -1, floored to 0
	a := NewAggregator(nil, nil)
	result := a.Aggregate(context.Background(),
		verdictsOf(model.AssessmentSupported, model.AssessmentContradicted),
		model.SentimentProfile{Compound: 0},
		model.SourceCredibility{Score: 0.8},
	)

	// verification 0, sentiment 1, source 0.8 -> 0.2 + 0.16 = 0.36
	if !almostEqual(result.Score, 0.36) {
		t.Errorf("score = %v, want 0.36", result.Score)
	}
}

func TestAggregateOneContradictionCancelsTwoSupports(t *testing.T) {
	// 2 supported, 1 contradicted: max(0, 2-2)/3 = 0
	a := NewAggregator(nil, nil)
	result := a.Aggregate(context.Background(),
		verdictsOf(model.AssessmentSupported, model.AssessmentSupported, model.AssessmentContradicted),
		model.SentimentProfile{Compound: 0},
		model.SourceCredibility{Score: 0},
	)

	if !almostEqual(result.Score, 0.2) { // sentiment term only
		t.Errorf("score = %v, want 0.2", result.Score)
	}
	if result.Factors[FactorVerification] != "2 supported, 1 contradicted claims." {
		t.Errorf("verification factor = %q", result.Factors[FactorVerification])
	}
}

func TestAggregateNoClaims(t *testing.T) {
	a := NewAggregator(nil, nil)
	result := a.Aggregate(context.Background(), nil,
		model.SentimentProfile{Compound: 0},
		model.SourceCredibility{Score: 0.8},
	)

	// verification 0, sentiment 1, source 0.8 -> 0.36
	if !almostEqual(result.Score, 0.36) {
		t.Errorf("score = %v, want 0.36", result.Score)
	}
	if result.Factors[FactorVerification] != "No claims were verified." {
		t.Errorf("verification factor = %q", result.Factors[FactorVerification])
	}
}

func TestAggregateSentimentSymmetric(t *testing.T) {
	a := NewAggregator(nil, nil)
	pos := a.Aggregate(context.Background(), nil, model.SentimentProfile{Compound: 0.8}, model.SourceCredibility{})
	neg := a.Aggregate(context.Background(), nil, model.SentimentProfile{Compound: -0.8}, model.SourceCredibility{})

	if !almostEqual(pos.Score, neg.Score) {
		t.Errorf("polarity direction must not matter: %v vs %v", pos.Score, neg.Score)
	}
}

func TestAggregateMonotonicInSource(t *testing.T) {
	a := NewAggregator(nil, nil)
	low := a.Aggregate(context.Background(), nil, model.SentimentProfile{}, model.SourceCredibility{Score: 0.5})
	high := a.Aggregate(context.Background(), nil, model.SentimentProfile{}, model.SourceCredibility{Score: 0.8})

	if low.Score >= high.Score {
		t.Errorf("higher source credibility must not lower the score: %v >= %v", low.Score, high.Score)
	}
}

func TestAggregateScoreStaysInRange(t *testing.T) {
	a := NewAggregator(nil, nil)
	result := a.Aggregate(context.Background(),
		verdictsOf(model.AssessmentSupported),
		model.SentimentProfile{Compound: 0},
		model.SourceCredibility{Score: 1},
	)
	if result.Score < 0 || result.Score > 1 {
		t.Errorf("score %v out of [0, 1]", result.Score)
	}
}

func TestAggregateFactorStrings(t *testing.T) {
	a := NewAggregator(nil, nil)
	result := a.Aggregate(context.Background(), nil,
		model.SentimentProfile{RiskNote: "No specific manipulative language detected."},
		model.SourceCredibility{Score: 0.8, BiasNote: "Source not found in the watchlist."},
	)

	if result.Factors[FactorSentiment] != "Sentiment: No specific manipulative language detected." {
		t.Errorf("sentiment factor = %q", result.Factors[FactorSentiment])
	}
	if result.Factors[FactorSource] != "Source: Source not found in the watchlist." {
		t.Errorf("source factor = %q", result.Factors[FactorSource])
	}
}

func TestStaticSummaryTiers(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.9, "The text appears to be generally trustworthy, with most claims supported by evidence and neutral language."},
		{0.71, "The text appears to be generally trustworthy, with most claims supported by evidence and neutral language."},
		{0.7, "Exercise caution. While some claims are supported, there are indicators of potential bias or unverified information."},
		{0.5, "Exercise caution. While some claims are supported, there are indicators of potential bias or unverified information."},
		{0.4, "High skepticism advised. The text contains significant contradictions, biased language, or originates from a source with low credibility."},
		{0.1, "High skepticism advised. The text contains significant contradictions, biased language, or originates from a source with low credibility."},
	}

	for _, tt := range tests {
		if got := staticSummary(tt.score); got != tt.want {
			t.Errorf("staticSummary(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSummaryUsesProviderWhenAvailable(t *testing.T) {
	provider := &fakeProvider{response: "A crisp generated summary."}
	a := NewAggregator(provider, nil)
	result := a.Aggregate(context.Background(), nil, model.SentimentProfile{}, model.SourceCredibility{})

	if result.Summary != "A crisp generated summary." {
		t.Errorf("summary = %q, want the generated one", result.Summary)
	}
}

func TestSummaryFallsBackOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("down")}
	a := NewAggregator(provider, nil)
	result := a.Aggregate(context.Background(), nil, model.SentimentProfile{}, model.SourceCredibility{Score: 1})

	// 0.2 sentiment + 0.2 source = 0.4 -> lowest tier
	if result.Summary != staticSummary(result.Score) {
		t.Errorf("summary = %q, want static tier template", result.Summary)
	}
}
