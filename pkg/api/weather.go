package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// GetWeatherImpact fetches the expected weather effect on a game. The
// sport is a path segment; venue, date and hour travel as query
// parameters. Zero gameDate means today's local date.
func (c *Client) GetWeatherImpact(ctx context.Context, sport, venue string, gameDate time.Time, gameHour int) (*WeatherImpact, error) {
	if gameDate.IsZero() {
		gameDate = time.Now()
	}

	params := url.Values{}
	params.Set("venue", venue)
	params.Set("game_date", localDateString(gameDate))
	params.Set("game_hour", strconv.Itoa(gameHour))

	var impact WeatherImpact
	if err := c.get(ctx, "/weather/impact/"+url.PathEscape(sport), params, &impact); err != nil {
		return nil, err
	}
	return &impact, nil
}

// IndoorImpact is the client-side fallback for indoor sports. NBA games
// have no weather exposure, so callers skip the network round trip and
// render this directly.
func IndoorImpact(sport, venue string) *WeatherImpact {
	return &WeatherImpact{
		Sport:       sport,
		Venue:       venue,
		Indoor:      true,
		ImpactScore: decimal.Zero,
		Summary:     "Indoor venue: no weather impact",
	}
}
