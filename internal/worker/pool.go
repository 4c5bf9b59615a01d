package worker

import (
	"context"
	"sync"

	"github.com/ppiankov/credence/internal/model"
)

// Verifier resolves a single claim to a verdict. It must be total: a
// failing verification degrades to an UNCERTAIN verdict, never an error.
type Verifier interface {
	Verify(ctx context.Context, claim model.Claim) model.ClaimVerdict
}

// VerifyPool runs claim verifications on a bounded set of workers.
// Claims have no data dependency on each other, so the only constraint is
// the worker count, sized to respect third-party rate limits.
type VerifyPool struct {
	workers int
}

// NewVerifyPool creates a pool with the specified number of workers
func NewVerifyPool(workers int) *VerifyPool {
	if workers <= 0 {
		workers = 1
	}
	return &VerifyPool{workers: workers}
}

// VerifyAll verifies every claim concurrently and returns verdicts in
// claim order. A cancelled context stops dispatching new claims; claims
// never dispatched come back UNCERTAIN with the cancellation as reasoning.
func (p *VerifyPool) VerifyAll(ctx context.Context, v Verifier, claims []model.Claim) []model.ClaimVerdict {
	verdicts := make([]model.ClaimVerdict, len(claims))
	if len(claims) == 0 {
		return verdicts
	}

	type job struct {
		index int
		claim model.Claim
	}

	jobs := make(chan job)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(claims) {
		workers = len(claims)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				// Each worker writes a disjoint slot, no locking needed
				verdicts[j.index] = v.Verify(ctx, j.claim)
			}
		}()
	}

	dispatched := make([]bool, len(claims))
dispatch:
	for i, c := range claims {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{index: i, claim: c}:
			dispatched[i] = true
		}
	}
	close(jobs)
	wg.Wait()

	for i := range verdicts {
		if !dispatched[i] {
			verdicts[i] = model.ClaimVerdict{
				Claim:      claims[i],
				Assessment: model.AssessmentUncertain,
				Reasoning:  "Verification was cancelled before this claim was checked.",
			}
		}
	}

	return verdicts
}
