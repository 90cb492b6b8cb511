package api

import (
	"context"
	"net/url"
)

// ListParlays fetches a client's saved parlay slips.
func (c *Client) ListParlays(ctx context.Context, clientID string) ([]Parlay, error) {
	params := url.Values{}
	params.Set("client_id", clientID)

	var parlays []Parlay
	if err := c.get(ctx, "/parlays", params, &parlays); err != nil {
		return nil, err
	}
	return parlays, nil
}

// CreateParlay saves a new parlay slip.
func (c *Client) CreateParlay(ctx context.Context, req *ParlayRequest) (*Parlay, error) {
	var parlay Parlay
	if err := c.post(ctx, "/parlays", req, &parlay); err != nil {
		return nil, err
	}
	return &parlay, nil
}

// DeleteParlay removes a saved parlay slip.
func (c *Client) DeleteParlay(ctx context.Context, id string) error {
	return c.del(ctx, "/parlays/"+id, nil, nil)
}
