package api

import (
	"context"
	"net/url"
)

// GetH2HSummary fetches the head-to-head record for two teams. Team names
// go into the path as escaped segments, not query parameters: the backend
// routes on /h2h/{sport}/{team1}/{team2}/summary and a query-string form
// silently matched nothing.
func (c *Client) GetH2HSummary(ctx context.Context, sport, team1, team2 string) (*H2HSummary, error) {
	endpoint := "/h2h/" + url.PathEscape(sport) +
		"/" + url.PathEscape(team1) +
		"/" + url.PathEscape(team2) + "/summary"

	var summary H2HSummary
	if err := c.get(ctx, endpoint, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
