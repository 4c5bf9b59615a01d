package task

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/model"
)

// State is the lifecycle stage of an asynchronous analysis task
type State string

const (
	StatePending    State = "PENDING"
	StateProcessing State = "PROCESSING"
	StateCompleted  State = "COMPLETED"
	StateFailed     State = "FAILED"
)

// CanTransition reports whether the state machine permits moving from one
// state to another. Terminal states accept no transitions.
func CanTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateProcessing || to == StateFailed
	case StateProcessing:
		return to == StateCompleted || to == StateFailed
	}
	return false
}

// Status is the externally visible record of one task
type Status struct {
	ID        string                  `json:"id"`
	Kind      string                  `json:"kind"`
	State     State                   `json:"state"`
	Result    *model.AnalysisResponse `json:"result,omitempty"`
	Error     string                  `json:"error,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Store tracks asynchronous task statuses with TTL-based expiry. Completed
// and failed tasks age out rather than accumulating.
type Store struct {
	mu    sync.Mutex
	cache *cache.Memory
	ttl   time.Duration
	ids   map[string]struct{}
}

// NewStore creates a task store whose entries expire after ttl
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: cache.NewMemory(ttl, 10*time.Minute),
		ttl:   ttl,
		ids:   map[string]struct{}{},
	}
}

// Create registers a new PENDING task and returns its status
func (s *Store) Create(kind string) Status {
	now := time.Now().UTC()
	status := Status{
		ID:        uuid.NewString(),
		Kind:      kind,
		State:     StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(status.ID, status, s.ttl)
	s.ids[status.ID] = struct{}{}
	return status
}

// Get returns the task status, or false when unknown or expired
func (s *Store) Get(id string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

func (s *Store) get(id string) (Status, bool) {
	value, found := s.cache.Get(id)
	if !found {
		delete(s.ids, id)
		return Status{}, false
	}
	return value.(Status), true
}

// Advance moves the task to a new state, attaching the result or error.
// Invalid transitions are rejected so a finished task cannot be reopened.
func (s *Store) Advance(id string, to State, result *model.AnalysisResponse, taskErr string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, found := s.get(id)
	if !found {
		return Status{}, fmt.Errorf("unknown task %q", id)
	}
	if !CanTransition(status.State, to) {
		return Status{}, fmt.Errorf("invalid transition %s -> %s for task %q", status.State, to, id)
	}

	status.State = to
	status.Result = result
	status.Error = taskErr
	status.UpdatedAt = time.Now().UTC()
	s.cache.Set(id, status, s.ttl)
	return status, nil
}

// List returns all live task statuses in no particular order
func (s *Store) List() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Status, 0, len(s.ids))
	for id := range s.ids {
		if status, found := s.get(id); found {
			out = append(out, status)
		}
	}
	return out
}
