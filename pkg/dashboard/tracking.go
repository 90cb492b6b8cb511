package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/edgedesk/edgedesk-go/pkg/api"
	"github.com/edgedesk/edgedesk-go/pkg/metrics"

	"github.com/shopspring/decimal"
)

// BetSummary is the derived aggregate view of the loaded bet set. It is
// a pure function of already-fetched data, recomputed on every refresh.
type BetSummary struct {
	TotalBets    int                        `json:"total_bets"`
	PendingBets  int                        `json:"pending_bets"`
	SettledBets  int                        `json:"settled_bets"`
	Wins         int                        `json:"wins"`
	Losses       int                        `json:"losses"`
	TotalStake   decimal.Decimal            `json:"total_stake"`
	PendingStake decimal.Decimal            `json:"pending_stake"`
	ProfitLoss   decimal.Decimal            `json:"profit_loss"`
	WinRate      decimal.Decimal            `json:"win_rate"`
	ROI          decimal.Decimal            `json:"roi"`
	StakeBySport map[string]decimal.Decimal `json:"stake_by_sport"`
}

// SummarizeBets reduces a bet set into its aggregate summary.
func SummarizeBets(bets []api.TrackedBet) BetSummary {
	summary := BetSummary{
		StakeBySport: make(map[string]decimal.Decimal),
	}

	for _, bet := range bets {
		summary.TotalBets++
		summary.TotalStake = summary.TotalStake.Add(bet.Stake)
		summary.StakeBySport[bet.Sport] = summary.StakeBySport[bet.Sport].Add(bet.Stake)

		if bet.Status == api.BetStatusPending {
			summary.PendingBets++
			summary.PendingStake = summary.PendingStake.Add(bet.Stake)
			continue
		}

		summary.SettledBets++
		summary.ProfitLoss = summary.ProfitLoss.Add(bet.ProfitLoss)
		switch bet.Result {
		case api.BetResultWin:
			summary.Wins++
		case api.BetResultLoss:
			summary.Losses++
		}
	}

	decided := summary.Wins + summary.Losses
	if decided > 0 {
		summary.WinRate = decimal.NewFromInt(int64(summary.Wins)).
			Div(decimal.NewFromInt(int64(decided)))
	}
	settledStake := summary.TotalStake.Sub(summary.PendingStake)
	if settledStake.IsPositive() {
		summary.ROI = summary.ProfitLoss.Div(settledStake)
	}

	return summary
}

// TrackingBoard is the bet-tracking dashboard: backend stats, the
// filtered bet list, the leaderboard, and the locally derived summary.
type TrackingBoard struct {
	loadState

	client  *api.Client
	metrics *metrics.ClientMetrics
	guard   *StakeGuard

	mu           sync.RWMutex
	statusFilter string
	sportFilter  string
	stats        *api.TrackingStats
	bets         []api.TrackedBet
	leaderboard  []api.LeaderboardEntry
	summary      BetSummary
}

// TrackingOption configures the board.
type TrackingOption func(*TrackingBoard)

// WithTrackingMetrics publishes derived stats as gauges.
func WithTrackingMetrics(m *metrics.ClientMetrics) TrackingOption {
	return func(b *TrackingBoard) {
		b.metrics = m
	}
}

// WithStakeGuard installs a client-side stake guard on PlaceBet.
func WithStakeGuard(guard *StakeGuard) TrackingOption {
	return func(b *TrackingBoard) {
		b.guard = guard
	}
}

// NewTrackingBoard creates a tracking board over the API client.
func NewTrackingBoard(client *api.Client, opts ...TrackingOption) *TrackingBoard {
	b := &TrackingBoard{client: client}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *TrackingBoard) Name() string { return "tracking" }

// SetFilters sets the status/sport filters applied on the next refresh.
// "" or "all" disables a filter.
func (b *TrackingBoard) SetFilters(status, sport string) {
	b.mu.Lock()
	b.statusFilter = status
	b.sportFilter = sport
	b.mu.Unlock()
}

// Refresh loads stats, bets and leaderboard, then recomputes the derived
// summary. On failure the previous data is kept and Err carries the
// normalized message for display next to a retry control.
func (b *TrackingBoard) Refresh(ctx context.Context) error {
	b.begin()

	b.mu.RLock()
	status, sport := b.statusFilter, b.sportFilter
	b.mu.RUnlock()

	stats, err := b.client.GetTrackingStats(ctx)
	if err != nil {
		b.finish(err)
		return err
	}
	bets, err := b.client.ListBets(ctx, status, sport)
	if err != nil {
		b.finish(err)
		return err
	}
	leaderboard, err := b.client.Leaderboard(ctx, "profit_loss", 20)
	if err != nil {
		b.finish(err)
		return err
	}

	summary := SummarizeBets(bets)

	b.mu.Lock()
	b.stats = stats
	b.bets = bets
	b.leaderboard = leaderboard
	b.summary = summary
	b.mu.Unlock()

	if b.guard != nil {
		dayLoss := decimal.Zero
		if summary.ProfitLoss.IsNegative() {
			dayLoss = summary.ProfitLoss.Neg()
		}
		b.guard.Observe(summary.PendingStake, dayLoss)
	}
	if b.metrics != nil {
		clientID := ""
		if id := b.client.Sessions().Identity(); id != nil {
			clientID = id.ClientID
		}
		b.metrics.ObserveTracking(clientID, summary.ProfitLoss, summary.WinRate, summary.TotalStake)
	}

	b.finish(nil)
	return nil
}

// Retry re-runs the last refresh.
func (b *TrackingBoard) Retry(ctx context.Context) error {
	return b.Refresh(ctx)
}

// Stats returns the backend aggregate stats from the last refresh.
func (b *TrackingBoard) Stats() *api.TrackingStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

// Bets returns the loaded bet list.
func (b *TrackingBoard) Bets() []api.TrackedBet {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bets := make([]api.TrackedBet, len(b.bets))
	copy(bets, b.bets)
	return bets
}

// Leaderboard returns the loaded leaderboard.
func (b *TrackingBoard) Leaderboard() []api.LeaderboardEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]api.LeaderboardEntry, len(b.leaderboard))
	copy(entries, b.leaderboard)
	return entries
}

// Summary returns the locally derived aggregate summary.
func (b *TrackingBoard) Summary() BetSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.summary
}

// PlaceBet records a new bet and refetches the board on success.
func (b *TrackingBoard) PlaceBet(ctx context.Context, req *api.PlaceBetRequest) (*api.TrackedBet, error) {
	if b.guard != nil {
		if ok, reason := b.guard.Check(req.Stake); !ok {
			return nil, fmt.Errorf("stake rejected: %s", reason)
		}
	}

	bet, err := b.client.PlaceBet(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := b.Refresh(ctx); err != nil {
		// The mutation landed; a failed refetch keeps stale data but
		// must not mask the successful placement.
		return bet, nil
	}
	return bet, nil
}

// SettleBet settles a bet and refetches the board on success.
func (b *TrackingBoard) SettleBet(ctx context.Context, betID, result string) (*api.TrackedBet, error) {
	bet, err := b.client.SettleBet(ctx, betID, result)
	if err != nil {
		return nil, err
	}
	if err := b.Refresh(ctx); err != nil {
		return bet, nil
	}
	return bet, nil
}
