package credibility

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/credence/internal/llm"
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

func testRegistry() map[string]string {
	return map[string]string{
		"breitbart.com": "Far-right, known for strong political bias",
	}
}

func TestAssessRegistryMatch(t *testing.T) {
	a := NewAssessor(testRegistry(), nil, nil)

	cred := a.Assess(context.Background(), "https://breitbart.com/some/article")
	if cred.Score != ScoreBiased {
		t.Errorf("score = %v, want %v", cred.Score, ScoreBiased)
	}
	if cred.RegistryMatch != "breitbart.com" {
		t.Errorf("registry match = %q, want breitbart.com", cred.RegistryMatch)
	}
	if !strings.Contains(cred.BiasNote, "watchlist") || !strings.Contains(cred.BiasNote, "Far-right") {
		t.Errorf("bias note should carry the registry entry, got %q", cred.BiasNote)
	}
}

func TestAssessMatchIsCaseInsensitive(t *testing.T) {
	a := NewAssessor(testRegistry(), nil, nil)

	cred := a.Assess(context.Background(), "https://BREITBART.com/article")
	if cred.Score != ScoreBiased {
		t.Errorf("score = %v, want %v", cred.Score, ScoreBiased)
	}
}

func TestAssessUnknownDomain(t *testing.T) {
	a := NewAssessor(testRegistry(), nil, nil)

	cred := a.Assess(context.Background(), "https://example.org/post")
	if cred.Score != ScoreDefault {
		t.Errorf("score = %v, want %v", cred.Score, ScoreDefault)
	}
	if cred.RegistryMatch != "" {
		t.Errorf("unexpected registry match %q", cred.RegistryMatch)
	}
	if cred.BiasNote != "Source not found in the watchlist." {
		t.Errorf("unexpected bias note %q", cred.BiasNote)
	}
}

func TestAssessNoURL(t *testing.T) {
	a := NewAssessor(testRegistry(), nil, nil)

	cred := a.Assess(context.Background(), "")
	if cred.Score != ScoreDefault {
		t.Errorf("score = %v, want default", cred.Score)
	}
}

func TestAssessGenerativeRephrase(t *testing.T) {
	provider := &fakeProvider{response: "This source carries a known political slant."}
	a := NewAssessor(testRegistry(), provider, nil)

	cred := a.Assess(context.Background(), "https://breitbart.com/x")
	if cred.BiasNote != "This source carries a known political slant." {
		t.Errorf("bias note = %q, want the generated assessment", cred.BiasNote)
	}
	// The score itself is never generative
	if cred.Score != ScoreBiased {
		t.Errorf("score = %v, want %v", cred.Score, ScoreBiased)
	}
}

func TestAssessRephraseFailureKeepsRawNote(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider down")}
	a := NewAssessor(testRegistry(), provider, nil)

	cred := a.Assess(context.Background(), "https://example.org/post")
	if cred.BiasNote != "Source not found in the watchlist." {
		t.Errorf("bias note = %q, want the raw note", cred.BiasNote)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://Example.COM/path?q=1", "example.com"},
		{"http://sub.example.com:8080/x", "sub.example.com"},
		{"", ""},
		{"not a url at all ::", ""},
	}

	for _, tt := range tests {
		if got := extractDomain(tt.rawURL); got != tt.want {
			t.Errorf("extractDomain(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}
