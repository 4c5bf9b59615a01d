package worker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

type funcVerifier func(ctx context.Context, claim model.Claim) model.ClaimVerdict

func (f funcVerifier) Verify(ctx context.Context, claim model.Claim) model.ClaimVerdict {
	return f(ctx, claim)
}

func TestVerifyAllPreservesOrder(t *testing.T) {
	claims := make([]model.Claim, 20)
	for i := range claims {
		claims[i] = model.Claim{Text: fmt.Sprintf("claim %d", i)}
	}

	v := funcVerifier(func(ctx context.Context, claim model.Claim) model.ClaimVerdict {
		return model.ClaimVerdict{Claim: claim, Assessment: model.AssessmentSupported}
	})

	pool := NewVerifyPool(4)
	verdicts := pool.VerifyAll(context.Background(), v, claims)

	if len(verdicts) != len(claims) {
		t.Fatalf("expected %d verdicts, got %d", len(claims), len(verdicts))
	}
	for i, verdict := range verdicts {
		if verdict.Claim.Text != claims[i].Text {
			t.Errorf("verdict %d is for %q, want %q", i, verdict.Claim.Text, claims[i].Text)
		}
	}
}

func TestVerifyAllEmptyClaims(t *testing.T) {
	pool := NewVerifyPool(4)
	verdicts := pool.VerifyAll(context.Background(), nil, nil)
	if len(verdicts) != 0 {
		t.Errorf("expected no verdicts, got %d", len(verdicts))
	}
}

func TestVerifyAllBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0

	v := funcVerifier(func(ctx context.Context, claim model.Claim) model.ClaimVerdict {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
		return model.ClaimVerdict{Claim: claim, Assessment: model.AssessmentUncertain}
	})

	claims := make([]model.Claim, 16)
	pool := NewVerifyPool(3)
	pool.VerifyAll(context.Background(), v, claims)

	if peak > 3 {
		t.Errorf("peak concurrency %d exceeds worker bound 3", peak)
	}
}

func TestVerifyAllCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	v := funcVerifier(func(ctx context.Context, claim model.Claim) model.ClaimVerdict {
		cancel()
		time.Sleep(time.Millisecond)
		return model.ClaimVerdict{Claim: claim, Assessment: model.AssessmentSupported}
	})

	claims := make([]model.Claim, 50)
	for i := range claims {
		claims[i] = model.Claim{Text: fmt.Sprintf("claim %d", i)}
	}

	pool := NewVerifyPool(1)
	verdicts := pool.VerifyAll(ctx, v, claims)

	if len(verdicts) != len(claims) {
		t.Fatalf("expected %d verdicts, got %d", len(claims), len(verdicts))
	}

	cancelled := 0
	for _, verdict := range verdicts {
		if verdict.Reasoning == "Verification was cancelled before this claim was checked." {
			if verdict.Assessment != model.AssessmentUncertain {
				t.Errorf("cancelled verdict has assessment %s", verdict.Assessment)
			}
			cancelled++
		}
	}
	if cancelled == 0 {
		t.Error("expected some claims to be cancelled before dispatch")
	}
}
