package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoard struct {
	name      string
	err       error
	refreshes int
}

func (b *fakeBoard) Name() string { return b.name }

func (b *fakeBoard) Refresh(ctx context.Context) error {
	b.refreshes++
	return b.err
}

func TestRunOnceContinuesPastFailures(t *testing.T) {
	failing := &fakeBoard{name: "failing", err: errors.New("backend down")}
	healthy := &fakeBoard{name: "healthy"}

	var stages []*StageResult
	var errs []error

	r := NewRefresher(time.Minute, nil, failing, healthy)
	r.OnStage(func(result *StageResult) { stages = append(stages, result) })
	r.OnError(func(err error) { errs = append(errs, err) })

	r.RunOnce(context.Background())

	// The failing board must not stop the boards after it.
	assert.Equal(t, 1, failing.refreshes)
	assert.Equal(t, 1, healthy.refreshes)

	require.Len(t, stages, 2)
	assert.False(t, stages[0].Success)
	assert.Equal(t, "backend down", stages[0].Error)
	assert.True(t, stages[1].Success)
	assert.Empty(t, stages[1].Error)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "failing")
}

func TestStartRunsImmediately(t *testing.T) {
	board := &fakeBoard{name: "b"}

	r := NewRefresher(time.Hour, nil, board)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	// Start runs one cycle synchronously before the ticker loop.
	assert.Equal(t, 1, board.refreshes)
	assert.True(t, r.IsRunning())

	assert.Error(t, r.Start(context.Background()), "double start must fail")
}

func TestStopIsIdempotent(t *testing.T) {
	r := NewRefresher(time.Hour, nil, &fakeBoard{name: "b"})
	require.NoError(t, r.Start(context.Background()))

	r.Stop()
	assert.False(t, r.IsRunning())
	r.Stop()
}
