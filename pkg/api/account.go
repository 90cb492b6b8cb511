package api

import "context"

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "/account/forgot-password", body, nil)
}

// ResetPassword completes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{
		"token":        token,
		"new_password": newPassword,
	}
	return c.post(ctx, "/account/reset-password", body, nil)
}

// UpdateProfile changes account profile fields.
func (c *Client) UpdateProfile(ctx context.Context, req *ProfileUpdateRequest) (*User, error) {
	var user User
	if err := c.put(ctx, "/account/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyAge submits a date of birth (YYYY-MM-DD) for age verification.
func (c *Client) VerifyAge(ctx context.Context, dateOfBirth string) error {
	body := map[string]string{"date_of_birth": dateOfBirth}
	return c.post(ctx, "/account/verify-age", body, nil)
}
