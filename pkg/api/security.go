package api

import (
	"context"
	"net/url"
	"strconv"
)

// Setup2FA starts 2FA enrollment, returning the authenticator secret and
// provisioning URL.
func (c *Client) Setup2FA(ctx context.Context) (*TwoFASetup, error) {
	var setup TwoFASetup
	if err := c.post(ctx, "/security/2fa/setup", nil, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

// Enable2FA confirms enrollment with a TOTP code.
func (c *Client) Enable2FA(ctx context.Context, code string) error {
	body := map[string]string{"totp_code": code}
	return c.post(ctx, "/security/2fa/enable", body, nil)
}

// Disable2FA turns 2FA off. Requires a current TOTP code.
func (c *Client) Disable2FA(ctx context.Context, code string) error {
	body := map[string]string{"totp_code": code}
	return c.post(ctx, "/security/2fa/disable", body, nil)
}

// ListSessions fetches the account's active login sessions.
func (c *Client) ListSessions(ctx context.Context) ([]SecuritySession, error) {
	var sessions []SecuritySession
	if err := c.get(ctx, "/security/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// RevokeSession terminates one login session. Revoking the current
// session returns the client to anonymous: callers should clear the
// session store afterwards.
func (c *Client) RevokeSession(ctx context.Context, sessionID string) error {
	return c.del(ctx, "/security/sessions/"+sessionID, nil, nil)
}

// GetAuditLog fetches recent security audit events.
func (c *Client) GetAuditLog(ctx context.Context, limit int) ([]AuditLogEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var entries []AuditLogEntry
	if err := c.get(ctx, "/security/audit-log", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
