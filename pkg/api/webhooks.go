package api

import "context"

// ListWebhooks fetches the user's registered webhooks.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var hooks []Webhook
	if err := c.get(ctx, "/webhooks", nil, &hooks); err != nil {
		return nil, err
	}
	return hooks, nil
}

// CreateWebhook registers a new webhook. The signing secret is only
// returned on creation.
func (c *Client) CreateWebhook(ctx context.Context, req *WebhookRequest) (*Webhook, error) {
	var hook Webhook
	if err := c.post(ctx, "/webhooks", req, &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// DeleteWebhook removes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.del(ctx, "/webhooks/"+id, nil, nil)
}

// ToggleWebhook flips a webhook's enabled state.
func (c *Client) ToggleWebhook(ctx context.Context, id string) (*Webhook, error) {
	var hook Webhook
	if err := c.post(ctx, "/webhooks/"+id+"/toggle", nil, &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}
