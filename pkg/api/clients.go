package api

import "context"

// ListClients fetches the user's client profiles.
func (c *Client) ListClients(ctx context.Context) ([]ClientProfile, error) {
	var clients []ClientProfile
	if err := c.get(ctx, "/clients", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// GetClient fetches a single client profile.
func (c *Client) GetClient(ctx context.Context, id string) (*ClientProfile, error) {
	var client ClientProfile
	if err := c.get(ctx, "/clients/"+id, nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient creates a new client profile.
func (c *Client) CreateClient(ctx context.Context, req *ClientRequest) (*ClientProfile, error) {
	var client ClientProfile
	if err := c.post(ctx, "/clients", req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClient updates an existing client profile.
func (c *Client) UpdateClient(ctx context.Context, id string, req *ClientRequest) (*ClientProfile, error) {
	var client ClientProfile
	if err := c.put(ctx, "/clients/"+id, req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}
