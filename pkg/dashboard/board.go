// Package dashboard binds the API surface to renderable view state: each
// board loads its data on refresh, derives aggregate stats from the
// loaded set, and exposes mutations that refetch on success.
package dashboard

import (
	"context"
	"sync"
	"time"
)

// Board is one refreshable dashboard view.
type Board interface {
	Name() string
	Refresh(ctx context.Context) error
}

// loadState tracks one board's load lifecycle: whether a load is in
// flight, the last displayable error, and when data last arrived.
type loadState struct {
	mu       sync.RWMutex
	loading  bool
	lastErr  string
	loadedAt time.Time
}

func (s *loadState) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *loadState) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return
	}
	s.lastErr = ""
	s.loadedAt = time.Now()
}

// Loading reports whether a refresh is in flight.
func (s *loadState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last displayable error message, or "" when the last
// refresh succeeded.
func (s *loadState) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LoadedAt returns when data last arrived successfully.
func (s *loadState) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
