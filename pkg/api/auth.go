package api

import (
	"context"

	"github.com/edgedesk/edgedesk-go/pkg/session"
)

// Login authenticates with email/username and password (plus a TOTP code
// when 2FA is enabled) and persists the returned credentials to the
// session store. When the backend answers with requires_2fa the session is
// left untouched and the caller must retry with a TOTP code.
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if err := c.storeCredentials(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and persists the returned credentials.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if err := c.storeCredentials(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the session server-side and clears stored credentials.
// The local session is cleared even when the revocation call fails, so a
// dead backend cannot pin a stale token on disk.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/auth/logout", nil, nil)
	if clearErr := c.sessions.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Refresh exchanges the stored refresh token for a new token pair and
// persists it.
func (c *Client) Refresh(ctx context.Context) (*AuthResponse, error) {
	body := map[string]string{"refresh_token": c.sessions.RefreshToken()}

	var resp AuthResponse
	if err := c.post(ctx, "/auth/refresh", body, &resp); err != nil {
		return nil, err
	}
	if err := c.storeCredentials(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) storeCredentials(resp *AuthResponse) error {
	if resp.Requires2FA || resp.AccessToken == "" {
		return nil
	}

	creds := session.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.User != nil {
		creds.Identity = session.Identity{
			UserID:   resp.User.ID,
			Email:    resp.User.Email,
			Username: resp.User.Username,
		}
	} else if id := c.sessions.Identity(); id != nil {
		// Refresh responses omit the user; keep the stored identity.
		creds.Identity = *id
	}
	return c.sessions.SetCredentials(creds)
}
