package api

import (
	"context"
	"net/url"
	"strconv"
)

// DFS platforms with salary data.
const (
	PlatformDraftKings = "draftkings"
	PlatformFanDuel    = "fanduel"
)

// DFSProjections fetches player projections for a sport/platform.
func (c *Client) DFSProjections(ctx context.Context, sport, platform string, limit int) ([]DFSProjection, error) {
	params := url.Values{}
	if sport != "" {
		params.Set("sport", sport)
	}
	if platform != "" {
		params.Set("platform", platform)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var projections []DFSProjection
	if err := c.get(ctx, "/dfs/projections", params, &projections); err != nil {
		return nil, err
	}
	return projections, nil
}

// DFSStacks fetches correlated team stacks for a sport.
func (c *Client) DFSStacks(ctx context.Context, sport string) ([]DFSStack, error) {
	params := url.Values{}
	if sport != "" {
		params.Set("sport", sport)
	}

	var stacks []DFSStack
	if err := c.get(ctx, "/dfs/stacks", params, &stacks); err != nil {
		return nil, err
	}
	return stacks, nil
}

// DFSLineups fetches a client's saved lineups, optionally filtered by
// sport.
func (c *Client) DFSLineups(ctx context.Context, clientID, sport string) ([]DFSLineup, error) {
	params := url.Values{}
	params.Set("client_id", clientID)
	if sport != "" && sport != "all" {
		params.Set("sport", sport)
	}

	var lineups []DFSLineup
	if err := c.get(ctx, "/dfs/lineups", params, &lineups); err != nil {
		return nil, err
	}
	return lineups, nil
}

// OptimizeLineups runs the backend lineup optimizer and returns the
// generated lineups.
func (c *Client) OptimizeLineups(ctx context.Context, req *OptimizeRequest) ([]DFSLineup, error) {
	var lineups []DFSLineup
	if err := c.post(ctx, "/dfs/optimize", req, &lineups); err != nil {
		return nil, err
	}
	return lineups, nil
}

// DeleteLineup removes a saved lineup.
func (c *Client) DeleteLineup(ctx context.Context, lineupID, clientID string) error {
	params := url.Values{}
	params.Set("client_id", clientID)
	return c.del(ctx, "/dfs/lineups/"+lineupID, params, nil)
}
