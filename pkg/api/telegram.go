package api

import "context"

// GetTelegramStatus fetches the Telegram link state. An unlinked account
// includes a one-time link code to send to the bot.
func (c *Client) GetTelegramStatus(ctx context.Context) (*TelegramStatus, error) {
	var status TelegramStatus
	if err := c.get(ctx, "/telegram/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// LinkTelegram requests a fresh link code.
func (c *Client) LinkTelegram(ctx context.Context) (*TelegramStatus, error) {
	var status TelegramStatus
	if err := c.post(ctx, "/telegram/link", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UnlinkTelegram disconnects the Telegram channel.
func (c *Client) UnlinkTelegram(ctx context.Context) error {
	return c.post(ctx, "/telegram/unlink", nil, nil)
}
