package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.edgedesk.io", cfg.BaseURL)
	assert.Equal(t, time.Minute, cfg.PollEvery)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"mlb", "nba", "nfl"}, cfg.SportList())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EDGEDESK_BASE_URL", "http://localhost:9000")
	t.Setenv("EDGEDESK_POLL_INTERVAL", "30s")
	t.Setenv("EDGEDESK_SPORTS", "nba, soccer ,")
	t.Setenv("EDGEDESK_CLIENT_ID", "c42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.PollEvery)
	assert.Equal(t, "c42", cfg.ClientID)
	assert.Equal(t, []string{"nba", "soccer"}, cfg.SportList())
}

func TestLoadRejectsTightPollInterval(t *testing.T) {
	t.Setenv("EDGEDESK_POLL_INTERVAL", "2s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll interval")
}
