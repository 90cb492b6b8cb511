package dashboard

import (
	"context"
	"sync"

	"github.com/edgedesk/edgedesk-go/pkg/api"

	"github.com/shopspring/decimal"
)

// DFSBoard is the daily-fantasy dashboard: projections, stacks and saved
// lineups for one client, sport and platform.
type DFSBoard struct {
	loadState

	client   *api.Client
	clientID string

	mu          sync.RWMutex
	sport       string
	platform    string
	projections []api.DFSProjection
	stacks      []api.DFSStack
	lineups     []api.DFSLineup
}

// NewDFSBoard creates a DFS board.
func NewDFSBoard(client *api.Client, clientID, sport, platform string) *DFSBoard {
	return &DFSBoard{
		client:   client,
		clientID: clientID,
		sport:    sport,
		platform: platform,
	}
}

func (b *DFSBoard) Name() string { return "dfs" }

// SetSlate changes the sport/platform loaded on the next refresh.
func (b *DFSBoard) SetSlate(sport, platform string) {
	b.mu.Lock()
	b.sport = sport
	b.platform = platform
	b.mu.Unlock()
}

// Refresh loads projections, stacks and lineups.
func (b *DFSBoard) Refresh(ctx context.Context) error {
	b.begin()

	b.mu.RLock()
	sport, platform := b.sport, b.platform
	b.mu.RUnlock()

	projections, err := b.client.DFSProjections(ctx, sport, platform, 200)
	if err != nil {
		b.finish(err)
		return err
	}
	stacks, err := b.client.DFSStacks(ctx, sport)
	if err != nil {
		b.finish(err)
		return err
	}
	lineups, err := b.client.DFSLineups(ctx, b.clientID, sport)
	if err != nil {
		b.finish(err)
		return err
	}

	b.mu.Lock()
	b.projections = projections
	b.stacks = stacks
	b.lineups = lineups
	b.mu.Unlock()

	b.finish(nil)
	return nil
}

// Retry re-runs the last refresh.
func (b *DFSBoard) Retry(ctx context.Context) error {
	return b.Refresh(ctx)
}

// Projections returns the loaded projections.
func (b *DFSBoard) Projections() []api.DFSProjection {
	b.mu.RLock()
	defer b.mu.RUnlock()

	projections := make([]api.DFSProjection, len(b.projections))
	copy(projections, b.projections)
	return projections
}

// Stacks returns the loaded stacks.
func (b *DFSBoard) Stacks() []api.DFSStack {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stacks := make([]api.DFSStack, len(b.stacks))
	copy(stacks, b.stacks)
	return stacks
}

// Lineups returns the loaded lineups.
func (b *DFSBoard) Lineups() []api.DFSLineup {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lineups := make([]api.DFSLineup, len(b.lineups))
	copy(lineups, b.lineups)
	return lineups
}

// BestValue returns the n projections with the highest value (projected
// points per salary dollar), computed over the loaded set.
func (b *DFSBoard) BestValue(n int) []api.DFSProjection {
	projections := b.Projections()
	if n <= 0 || n > len(projections) {
		n = len(projections)
	}

	// Selection by repeated max keeps this allocation-free beyond the
	// copy; slates are a few hundred rows at most.
	best := make([]api.DFSProjection, 0, n)
	used := make(map[int]bool, n)
	for len(best) < n {
		maxIdx := -1
		maxVal := decimal.Zero
		for i, p := range projections {
			if used[i] {
				continue
			}
			if maxIdx == -1 || p.Value.GreaterThan(maxVal) {
				maxIdx = i
				maxVal = p.Value
			}
		}
		if maxIdx == -1 {
			break
		}
		used[maxIdx] = true
		best = append(best, projections[maxIdx])
	}
	return best
}

// Optimize runs the backend optimizer and refetches lineups on success.
func (b *DFSBoard) Optimize(ctx context.Context, numLineups int, lockedIDs []string, stack string) ([]api.DFSLineup, error) {
	b.mu.RLock()
	sport, platform := b.sport, b.platform
	b.mu.RUnlock()

	lineups, err := b.client.OptimizeLineups(ctx, &api.OptimizeRequest{
		ClientID:   b.clientID,
		Sport:      sport,
		Platform:   platform,
		NumLineups: numLineups,
		LockedIDs:  lockedIDs,
		Stack:      stack,
	})
	if err != nil {
		return nil, err
	}

	if err := b.Refresh(ctx); err != nil {
		return lineups, nil
	}
	return lineups, nil
}

// DeleteLineup removes a lineup and refetches on success.
func (b *DFSBoard) DeleteLineup(ctx context.Context, lineupID string) error {
	if err := b.client.DeleteLineup(ctx, lineupID, b.clientID); err != nil {
		return err
	}
	_ = b.Refresh(ctx)
	return nil
}
