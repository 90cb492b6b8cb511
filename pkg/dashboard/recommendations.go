package dashboard

import (
	"context"
	"sync"

	"github.com/edgedesk/edgedesk-go/pkg/api"
	"github.com/edgedesk/edgedesk-go/pkg/metrics"

	"github.com/shopspring/decimal"
)

// SportAll disables the client-side sport filter.
const SportAll = "all"

// FilterBySport returns the recommendations for one sport. "all" (or "")
// passes every recommendation through unchanged: the client-side filter
// must never narrow a backend min-edge run when no sport is selected.
func FilterBySport(recs []api.Recommendation, sport string) []api.Recommendation {
	if sport == "" || sport == SportAll {
		return recs
	}
	filtered := make([]api.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if rec.Sport == sport {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// RecSummary is the derived aggregate view of a recommendation set.
type RecSummary struct {
	Count          int             `json:"count"`
	AvgEdge        decimal.Decimal `json:"avg_edge"`
	BestEdge       decimal.Decimal `json:"best_edge"`
	TotalSuggested decimal.Decimal `json:"total_suggested_stake"`
}

// SummarizeRecs reduces a recommendation set to its aggregates.
func SummarizeRecs(recs []api.Recommendation) RecSummary {
	summary := RecSummary{Count: len(recs)}
	if len(recs) == 0 {
		return summary
	}

	edgeSum := decimal.Zero
	for _, rec := range recs {
		edgeSum = edgeSum.Add(rec.Edge)
		if rec.Edge.GreaterThan(summary.BestEdge) {
			summary.BestEdge = rec.Edge
		}
		summary.TotalSuggested = summary.TotalSuggested.Add(rec.SuggestedStake)
	}
	summary.AvgEdge = edgeSum.Div(decimal.NewFromInt(int64(len(recs))))
	return summary
}

// RecommendationBoard is the picks dashboard for one client profile.
type RecommendationBoard struct {
	loadState

	client   *api.Client
	metrics  *metrics.ClientMetrics
	clientID string
	limit    int

	mu            sync.RWMutex
	selectedSport string
	recs          []api.Recommendation
}

// NewRecommendationBoard creates a board for the given client profile.
// limit <= 0 uses the backend default page size.
func NewRecommendationBoard(client *api.Client, clientID string, limit int, m *metrics.ClientMetrics) *RecommendationBoard {
	return &RecommendationBoard{
		client:        client,
		metrics:       m,
		clientID:      clientID,
		limit:         limit,
		selectedSport: SportAll,
	}
}

func (b *RecommendationBoard) Name() string { return "recommendations" }

// SelectSport sets the client-side sport filter.
func (b *RecommendationBoard) SelectSport(sport string) {
	b.mu.Lock()
	b.selectedSport = sport
	b.mu.Unlock()
}

// Refresh loads the latest picks.
func (b *RecommendationBoard) Refresh(ctx context.Context) error {
	b.begin()

	recs, err := b.client.LatestRecommendations(ctx, b.clientID, b.limit)
	if err != nil {
		b.finish(err)
		return err
	}

	b.setRecs(recs)
	b.finish(nil)
	return nil
}

// Retry re-runs the last refresh.
func (b *RecommendationBoard) Retry(ctx context.Context) error {
	return b.Refresh(ctx)
}

// RunPicks triggers a fresh recommendation run and replaces the local
// state with the response, skipping a separate refetch.
func (b *RecommendationBoard) RunPicks(ctx context.Context, minEdge *decimal.Decimal, sports []string) ([]api.Recommendation, error) {
	b.begin()

	recs, err := b.client.RunRecommendations(ctx, b.clientID, &api.RunRecommendationsRequest{
		Sports:  sports,
		MinEdge: minEdge,
	})
	if err != nil {
		b.finish(err)
		return nil, err
	}

	b.setRecs(recs)
	b.finish(nil)
	return recs, nil
}

func (b *RecommendationBoard) setRecs(recs []api.Recommendation) {
	b.mu.Lock()
	b.recs = recs
	b.mu.Unlock()

	if b.metrics != nil {
		for _, rec := range recs {
			b.metrics.RecommendationEdge.WithLabelValues(rec.Sport).Observe(rec.Edge.InexactFloat64())
		}
	}
}

// Visible returns the loaded picks after the sport filter.
func (b *RecommendationBoard) Visible() []api.Recommendation {
	b.mu.RLock()
	recs := make([]api.Recommendation, len(b.recs))
	copy(recs, b.recs)
	sport := b.selectedSport
	b.mu.RUnlock()

	return FilterBySport(recs, sport)
}

// Summary returns the derived aggregates over the visible picks.
func (b *RecommendationBoard) Summary() RecSummary {
	return SummarizeRecs(b.Visible())
}
