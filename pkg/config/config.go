// Package config loads daemon configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the daemon settings, populated from EDGEDESK_* variables.
type Config struct {
	BaseURL     string        `env:"EDGEDESK_BASE_URL,default=https://api.edgedesk.io"`
	Email       string        `env:"EDGEDESK_EMAIL"`
	Password    string        `env:"EDGEDESK_PASSWORD"`
	ClientID    string        `env:"EDGEDESK_CLIENT_ID"`
	SessionPath string        `env:"EDGEDESK_SESSION_PATH"`
	Sports      string        `env:"EDGEDESK_SPORTS"`
	DFSSport    string        `env:"EDGEDESK_DFS_SPORT,default=nba"`
	DFSPlatform string        `env:"EDGEDESK_DFS_PLATFORM,default=draftkings"`
	PollEvery   time.Duration `env:"EDGEDESK_POLL_INTERVAL,default=1m"`
	RateLimit   float64       `env:"EDGEDESK_RATE_LIMIT,default=10"`
	HTTPAddr    string        `env:"EDGEDESK_HTTP_ADDR,default=:8080"`
	LogLevel    string        `env:"EDGEDESK_LOG_LEVEL,default=info"`
}

// Load reads .env if present, then decodes the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// Comma-separated defaults cannot live in the struct tag, the tag
	// itself is comma-delimited.
	if cfg.Sports == "" {
		cfg.Sports = "mlb,nba,nfl"
	}
	if cfg.PollEvery < 10*time.Second {
		return nil, fmt.Errorf("poll interval %s too short, minimum 10s", cfg.PollEvery)
	}
	return &cfg, nil
}

// SportList returns the configured sports as a slice.
func (c *Config) SportList() []string {
	parts := strings.Split(c.Sports, ",")
	sports := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sports = append(sports, s)
		}
	}
	return sports
}
