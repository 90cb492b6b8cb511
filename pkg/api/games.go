package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Sports with dedicated daily game feeds.
const (
	SportMLB    = "mlb"
	SportNBA    = "nba"
	SportNFL    = "nfl"
	SportCBB    = "cbb"
	SportSoccer = "soccer"
)

var feedSports = map[string]bool{
	SportMLB: true,
	SportNBA: true,
	SportNFL: true,
	SportCBB: true,
}

// ListGames fetches games across sports. sport "" or "all" means no
// filter; limit <= 0 uses the backend default.
func (c *Client) ListGames(ctx context.Context, sport string, limit int) ([]Game, error) {
	params := url.Values{}
	if sport != "" && sport != "all" {
		params.Set("sport", sport)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var games []Game
	if err := c.get(ctx, "/games", params, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListSports fetches the sports the backend currently covers.
func (c *Client) ListSports(ctx context.Context) ([]string, error) {
	var sports []string
	if err := c.get(ctx, "/games/sports", nil, &sports); err != nil {
		return nil, err
	}
	return sports, nil
}

// TodaysGames fetches the given sport's slate for the caller's local
// calendar date. The date is built from local time fields on purpose:
// a UTC-derived date would flip to tomorrow's slate during US evening
// hours.
func (c *Client) TodaysGames(ctx context.Context, sport string) ([]Game, error) {
	return c.GamesOn(ctx, sport, time.Now())
}

// GamesOn fetches the given sport's slate for the local calendar date of t.
func (c *Client) GamesOn(ctx context.Context, sport string, t time.Time) ([]Game, error) {
	if !feedSports[sport] {
		return nil, fmt.Errorf("no daily feed for sport %q", sport)
	}

	params := url.Values{}
	params.Set("date", localDateString(t))

	var games []Game
	if err := c.get(ctx, "/"+sport+"/games", params, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// RefreshSport asks the backend to re-pull a sport's feed from its
// upstream provider.
func (c *Client) RefreshSport(ctx context.Context, sport string) error {
	if !feedSports[sport] {
		return fmt.Errorf("no daily feed for sport %q", sport)
	}
	return c.post(ctx, "/"+sport+"/refresh", nil, nil)
}

// SoccerMatches fetches soccer fixtures for a date. Zero t means today's
// local date.
func (c *Client) SoccerMatches(ctx context.Context, t time.Time) ([]SoccerMatch, error) {
	if t.IsZero() {
		t = time.Now()
	}

	params := url.Values{}
	params.Set("date", localDateString(t))

	var matches []SoccerMatch
	if err := c.get(ctx, "/soccer/matches", params, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
