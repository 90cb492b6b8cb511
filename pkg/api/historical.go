package api

import "context"

// GetModelsStatus fetches training state for every sport model.
func (c *Client) GetModelsStatus(ctx context.Context) ([]ModelStatus, error) {
	var statuses []ModelStatus
	if err := c.get(ctx, "/historical/models/status", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// ListBacktests fetches completed backtest runs.
func (c *Client) ListBacktests(ctx context.Context) ([]Backtest, error) {
	var runs []Backtest
	if err := c.get(ctx, "/historical/backtests", nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRatings fetches a sport's power ratings.
func (c *Client) GetRatings(ctx context.Context, sport string) ([]TeamRating, error) {
	var ratings []TeamRating
	if err := c.get(ctx, "/historical/ratings/"+sport, nil, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// SeedHistorical asks the backend to seed its historical game database.
func (c *Client) SeedHistorical(ctx context.Context) error {
	return c.post(ctx, "/historical/seed", nil, nil)
}

// TrainModel retrains a sport model and returns its new status.
func (c *Client) TrainModel(ctx context.Context, req *TrainRequest) (*ModelStatus, error) {
	var status ModelStatus
	if err := c.post(ctx, "/historical/train", req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RunBacktest starts a backtest and returns the completed run.
func (c *Client) RunBacktest(ctx context.Context, req *BacktestRequest) (*Backtest, error) {
	var run Backtest
	if err := c.post(ctx, "/historical/backtest", req, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
