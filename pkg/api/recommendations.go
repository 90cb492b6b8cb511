package api

import (
	"context"
	"net/url"
	"strconv"
)

// LatestRecommendations fetches the most recent picks for a client.
// limit <= 0 uses the backend default.
func (c *Client) LatestRecommendations(ctx context.Context, clientID string, limit int) ([]Recommendation, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var recs []Recommendation
	if err := c.get(ctx, "/clients/"+clientID+"/recommendations/latest", params, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// RunRecommendations triggers a fresh recommendation run for a client and
// returns the generated picks.
func (c *Client) RunRecommendations(ctx context.Context, clientID string, req *RunRecommendationsRequest) ([]Recommendation, error) {
	var recs []Recommendation
	if err := c.post(ctx, "/clients/"+clientID+"/recommendations/run", req, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
