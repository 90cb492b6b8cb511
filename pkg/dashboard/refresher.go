package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edgedesk/edgedesk-go/pkg/metrics"
)

// StageResult holds the outcome of one board refresh.
type StageResult struct {
	Board     string        `json:"board"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// Refresher drives periodic refreshes across a set of boards, replacing
// the page-mount lifecycle with a polling loop.
type Refresher struct {
	interval time.Duration
	boards   []Board
	metrics  *metrics.ClientMetrics

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	onStage func(*StageResult)
	onError func(error)
}

// NewRefresher creates a refresher over the given boards.
func NewRefresher(interval time.Duration, m *metrics.ClientMetrics, boards ...Board) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{
		interval: interval,
		boards:   boards,
		metrics:  m,
		stopCh:   make(chan struct{}),
	}
}

// OnStage sets a callback for per-board refresh results.
func (r *Refresher) OnStage(fn func(*StageResult)) {
	r.onStage = fn
}

// OnError sets a callback for refresh errors.
func (r *Refresher) OnError(fn func(error)) {
	r.onError = fn
}

// Start runs an immediate refresh cycle and then ticks until Stop or
// context cancellation.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("refresher already running")
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	r.RunOnce(ctx)

	go r.loop(ctx)
	return nil
}

// Stop stops the refresh loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		close(r.stopCh)
		r.running = false
	}
}

// IsRunning reports whether the loop is active.
func (r *Refresher) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// RunOnce refreshes every board sequentially. Failures are reported but
// do not stop later boards: each board keeps its own retry state.
func (r *Refresher) RunOnce(ctx context.Context) {
	for _, board := range r.boards {
		start := time.Now()
		err := board.Refresh(ctx)
		result := &StageResult{
			Board:     board.Name(),
			Success:   err == nil,
			Duration:  time.Since(start),
			Timestamp: time.Now(),
		}
		if err != nil {
			result.Error = err.Error()
			if r.onError != nil {
				r.onError(fmt.Errorf("refresh %s: %w", board.Name(), err))
			}
		}

		if r.metrics != nil {
			status := "ok"
			if err != nil {
				status = "error"
			}
			r.metrics.RefreshTotal.WithLabelValues(board.Name(), status).Inc()
			r.metrics.RefreshDuration.WithLabelValues(board.Name()).Observe(result.Duration.Seconds())
		}
		if r.onStage != nil {
			r.onStage(result)
		}
	}
}

func (r *Refresher) loop(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}
