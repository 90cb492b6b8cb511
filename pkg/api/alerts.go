package api

import "context"

// ListAlerts fetches the user's alert rules.
func (c *Client) ListAlerts(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := c.get(ctx, "/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// CreateAlert creates a new alert rule.
func (c *Client) CreateAlert(ctx context.Context, req *AlertRequest) (*Alert, error) {
	var alert Alert
	if err := c.post(ctx, "/alerts", req, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// DeleteAlert removes an alert rule.
func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	return c.del(ctx, "/alerts/"+id, nil, nil)
}

// ToggleAlert flips an alert rule's enabled state and returns the updated
// rule.
func (c *Client) ToggleAlert(ctx context.Context, id string) (*Alert, error) {
	var alert Alert
	if err := c.post(ctx, "/alerts/"+id+"/toggle", nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}
