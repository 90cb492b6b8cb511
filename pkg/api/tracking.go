package api

import (
	"context"
	"net/url"
	"strconv"
)

// GetTrackingStats fetches the backend's aggregate bet-tracking stats.
func (c *Client) GetTrackingStats(ctx context.Context) (*TrackingStats, error) {
	var stats TrackingStats
	if err := c.get(ctx, "/tracking/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListBets fetches tracked bets. status and sport are optional filters;
// "" or "all" means no filter.
func (c *Client) ListBets(ctx context.Context, status, sport string) ([]TrackedBet, error) {
	params := url.Values{}
	if status != "" && status != "all" {
		params.Set("status", status)
	}
	if sport != "" && sport != "all" {
		params.Set("sport", sport)
	}

	var bets []TrackedBet
	if err := c.get(ctx, "/tracking/bets", params, &bets); err != nil {
		return nil, err
	}
	return bets, nil
}

// Leaderboard fetches the public tracking leaderboard.
func (c *Client) Leaderboard(ctx context.Context, sortBy string, limit int) ([]LeaderboardEntry, error) {
	params := url.Values{}
	if sortBy != "" {
		params.Set("sort_by", sortBy)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var entries []LeaderboardEntry
	if err := c.get(ctx, "/tracking/leaderboard", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// PlaceBet records a new tracked bet.
func (c *Client) PlaceBet(ctx context.Context, req *PlaceBetRequest) (*TrackedBet, error) {
	var bet TrackedBet
	if err := c.post(ctx, "/tracking/bets", req, &bet); err != nil {
		return nil, err
	}
	return &bet, nil
}

// SettleBet settles a tracked bet with one of the BetResult values.
func (c *Client) SettleBet(ctx context.Context, betID, result string) (*TrackedBet, error) {
	body := map[string]string{"result": result}

	var bet TrackedBet
	if err := c.post(ctx, "/tracking/bets/"+betID+"/settle", body, &bet); err != nil {
		return nil, err
	}
	return &bet, nil
}
