package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Auth ---

// User is the authenticated account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the credentials payload for login.
type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
	TOTPCode        string `json:"totp_code,omitempty"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	User         *User  `json:"user,omitempty"`
	Requires2FA  bool   `json:"requires_2fa,omitempty"`
}

// --- Clients ---

// ClientProfile is a betting client (bankroll owner) managed by a user.
type ClientProfile struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Bankroll    decimal.Decimal `json:"bankroll"`
	RiskProfile string          `json:"risk_profile"`
	Sports      []string        `json:"sports,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ClientRequest creates or updates a client profile.
type ClientRequest struct {
	Name        string          `json:"name"`
	Bankroll    decimal.Decimal `json:"bankroll"`
	RiskProfile string          `json:"risk_profile,omitempty"`
	Sports      []string        `json:"sports,omitempty"`
}

// --- Recommendations ---

// Recommendation is a model-generated betting pick.
type Recommendation struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	Sport          string          `json:"sport"`
	GameID         string          `json:"game_id"`
	Matchup        string          `json:"matchup"`
	Market         string          `json:"market"`
	Selection      string          `json:"selection"`
	Line           decimal.Decimal `json:"line"`
	Odds           decimal.Decimal `json:"odds"`
	ModelProb      decimal.Decimal `json:"model_prob"`
	Edge           decimal.Decimal `json:"edge"`
	SuggestedStake decimal.Decimal `json:"suggested_stake"`
	Book           string          `json:"book,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RunRecommendationsRequest triggers a fresh recommendation run.
type RunRecommendationsRequest struct {
	Sports  []string         `json:"sports,omitempty"`
	MinEdge *decimal.Decimal `json:"min_edge,omitempty"`
}

// --- Games ---

// Game is a scheduled or live sporting event.
type Game struct {
	ID        string    `json:"id"`
	Sport     string    `json:"sport"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	StartTime time.Time `json:"start_time"`
	Status    string    `json:"status"`
	HomeScore int       `json:"home_score,omitempty"`
	AwayScore int       `json:"away_score,omitempty"`
	Venue     string    `json:"venue,omitempty"`
}

// SoccerMatch is a soccer fixture from the soccer feed.
type SoccerMatch struct {
	ID        string    `json:"id"`
	League    string    `json:"league"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	KickoffAt time.Time `json:"kickoff_at"`
	Status    string    `json:"status"`
	HomeGoals int       `json:"home_goals,omitempty"`
	AwayGoals int       `json:"away_goals,omitempty"`
}

// --- Tracking ---

// Bet result values accepted by the settle endpoint.
const (
	BetResultWin  = "win"
	BetResultLoss = "loss"
	BetResultPush = "push"
	BetResultVoid = "void"
)

// Bet status values used by the tracking list filter.
const (
	BetStatusPending = "pending"
	BetStatusSettled = "settled"
)

// TrackingStats is the backend's aggregate view of tracked bets.
type TrackingStats struct {
	TotalBets   int             `json:"total_bets"`
	PendingBets int             `json:"pending_bets"`
	WonBets     int             `json:"won_bets"`
	LostBets    int             `json:"lost_bets"`
	TotalStaked decimal.Decimal `json:"total_staked"`
	ProfitLoss  decimal.Decimal `json:"profit_loss"`
	ROI         decimal.Decimal `json:"roi"`
	WinRate     decimal.Decimal `json:"win_rate"`
}

// TrackedBet is one tracked wager.
type TrackedBet struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"client_id"`
	Sport      string          `json:"sport"`
	GameID     string          `json:"game_id,omitempty"`
	Matchup    string          `json:"matchup,omitempty"`
	Market     string          `json:"market"`
	Selection  string          `json:"selection"`
	Odds       decimal.Decimal `json:"odds"`
	Stake      decimal.Decimal `json:"stake"`
	Status     string          `json:"status"`
	Result     string          `json:"result,omitempty"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
	PlacedAt   time.Time       `json:"placed_at"`
	SettledAt  *time.Time      `json:"settled_at,omitempty"`
}

// PlaceBetRequest records a new tracked bet.
type PlaceBetRequest struct {
	ClientID  string          `json:"client_id"`
	Sport     string          `json:"sport"`
	GameID    string          `json:"game_id,omitempty"`
	Matchup   string          `json:"matchup,omitempty"`
	Market    string          `json:"market"`
	Selection string          `json:"selection"`
	Odds      decimal.Decimal `json:"odds"`
	Stake     decimal.Decimal `json:"stake"`
}

// LeaderboardEntry is one row of the tracking leaderboard.
type LeaderboardEntry struct {
	Rank       int             `json:"rank"`
	Username   string          `json:"username"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
	ROI        decimal.Decimal `json:"roi"`
	Wins       int             `json:"wins"`
	Losses     int             `json:"losses"`
}

// --- Billing ---

// BillingPlan is a purchasable subscription tier.
type BillingPlan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PriceID      string          `json:"price_id"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	Features     []string        `json:"features,omitempty"`
}

// Subscription is the user's current billing state.
type Subscription struct {
	Status            string     `json:"status"`
	PlanID            string     `json:"plan_id,omitempty"`
	PlanName          string     `json:"plan_name,omitempty"`
	BillingPeriod     string     `json:"billing_period,omitempty"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end,omitempty"`
}

// CheckoutSession carries the hosted checkout URL.
type CheckoutSession struct {
	URL string `json:"url"`
}

// PortalSession carries the hosted billing portal URL.
type PortalSession struct {
	URL string `json:"url"`
}

// --- Alerts / Webhooks / Telegram ---

// Alert is a user-configured notification rule.
type Alert struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Sport     string          `json:"sport,omitempty"`
	MinEdge   decimal.Decimal `json:"min_edge"`
	Channel   string          `json:"channel"`
	Enabled   bool            `json:"enabled"`
	CreatedAt time.Time       `json:"created_at"`
}

// AlertRequest creates a new alert rule.
type AlertRequest struct {
	Type    string          `json:"type"`
	Sport   string          `json:"sport,omitempty"`
	MinEdge decimal.Decimal `json:"min_edge"`
	Channel string          `json:"channel"`
}

// Webhook is an outbound notification endpoint.
type Webhook struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Secret    string    `json:"secret,omitempty"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// WebhookRequest registers a new webhook.
type WebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// TelegramStatus describes the Telegram channel link.
type TelegramStatus struct {
	Linked   bool   `json:"linked"`
	ChatID   string `json:"chat_id,omitempty"`
	LinkCode string `json:"link_code,omitempty"`
}

// --- Historical / Models ---

// ModelStatus reports one sport model's training state.
type ModelStatus struct {
	Sport         string          `json:"sport"`
	Trained       bool            `json:"trained"`
	LastTrainedAt *time.Time      `json:"last_trained_at,omitempty"`
	Accuracy      decimal.Decimal `json:"accuracy"`
	SampleGames   int             `json:"sample_games,omitempty"`
}

// Backtest is a completed historical strategy evaluation.
type Backtest struct {
	ID        string          `json:"id"`
	Sport     string          `json:"sport"`
	Strategy  string          `json:"strategy"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	TotalBets int             `json:"total_bets"`
	ROI       decimal.Decimal `json:"roi"`
	WinRate   decimal.Decimal `json:"win_rate"`
	CreatedAt time.Time       `json:"created_at"`
}

// BacktestRequest starts a new backtest run.
type BacktestRequest struct {
	Sport     string           `json:"sport"`
	Strategy  string           `json:"strategy"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	MinEdge   *decimal.Decimal `json:"min_edge,omitempty"`
}

// TrainRequest retrains a sport model.
type TrainRequest struct {
	Sport   string `json:"sport"`
	Seasons int    `json:"seasons,omitempty"`
}

// TeamRating is one row of a sport's power ratings.
type TeamRating struct {
	Team   string          `json:"team"`
	Rating decimal.Decimal `json:"rating"`
	Rank   int             `json:"rank"`
}

// --- DFS ---

// DFSProjection is a daily-fantasy player projection.
type DFSProjection struct {
	PlayerID   string          `json:"player_id"`
	Name       string          `json:"name"`
	Team       string          `json:"team"`
	Position   string          `json:"position"`
	Salary     int             `json:"salary"`
	Projection decimal.Decimal `json:"projection"`
	Value      decimal.Decimal `json:"value"`
	Platform   string          `json:"platform"`
}

// DFSStack is a correlated group of players from one team.
type DFSStack struct {
	Team               string          `json:"team"`
	Players            []string        `json:"players"`
	CombinedProjection decimal.Decimal `json:"combined_projection"`
}

// DFSLineup is a saved optimized lineup.
type DFSLineup struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	Sport           string          `json:"sport"`
	Platform        string          `json:"platform"`
	Players         []DFSProjection `json:"players"`
	TotalSalary     int             `json:"total_salary"`
	ProjectedPoints decimal.Decimal `json:"projected_points"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OptimizeRequest asks the backend optimizer for lineups.
type OptimizeRequest struct {
	ClientID   string   `json:"client_id"`
	Sport      string   `json:"sport"`
	Platform   string   `json:"platform"`
	NumLineups int      `json:"num_lineups,omitempty"`
	LockedIDs  []string `json:"locked_ids,omitempty"`
	Stack      string   `json:"stack,omitempty"`
}

// --- Security ---

// TwoFASetup carries the provisioning data for an authenticator app.
type TwoFASetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// SecuritySession is one active login session.
type SecuritySession struct {
	ID         string    `json:"id"`
	UserAgent  string    `json:"user_agent"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	Current    bool      `json:"current"`
}

// AuditLogEntry is one security audit event.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Account ---

// ProfileUpdateRequest changes account profile fields.
type ProfileUpdateRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// --- H2H ---

// H2HSummary is the historical head-to-head record for two teams.
type H2HSummary struct {
	Sport        string          `json:"sport"`
	Team1        string          `json:"team1"`
	Team2        string          `json:"team2"`
	Meetings     int             `json:"meetings"`
	Team1Wins    int             `json:"team1_wins"`
	Team2Wins    int             `json:"team2_wins"`
	Draws        int             `json:"draws,omitempty"`
	AvgTotal     decimal.Decimal `json:"avg_total"`
	LastMeetings []Game          `json:"last_meetings,omitempty"`
}

// --- Weather ---

// WeatherImpact describes expected weather effect on a game.
type WeatherImpact struct {
	Sport        string          `json:"sport"`
	Venue        string          `json:"venue"`
	GameDate     string          `json:"game_date"`
	GameHour     int             `json:"game_hour"`
	Indoor       bool            `json:"indoor"`
	TempF        decimal.Decimal `json:"temp_f,omitempty"`
	WindMph      decimal.Decimal `json:"wind_mph,omitempty"`
	PrecipChance decimal.Decimal `json:"precip_chance,omitempty"`
	ImpactScore  decimal.Decimal `json:"impact_score"`
	Summary      string          `json:"summary,omitempty"`
}

// --- Parlays ---

// ParlayLeg is one selection inside a parlay.
type ParlayLeg struct {
	Sport     string          `json:"sport"`
	GameID    string          `json:"game_id,omitempty"`
	Matchup   string          `json:"matchup,omitempty"`
	Market    string          `json:"market"`
	Selection string          `json:"selection"`
	Odds      decimal.Decimal `json:"odds"`
}

// Parlay is a saved multi-leg slip.
type Parlay struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	Legs            []ParlayLeg     `json:"legs"`
	CombinedOdds    decimal.Decimal `json:"combined_odds"`
	Stake           decimal.Decimal `json:"stake"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ParlayRequest saves a new parlay slip.
type ParlayRequest struct {
	ClientID string          `json:"client_id"`
	Legs     []ParlayLeg     `json:"legs"`
	Stake    decimal.Decimal `json:"stake"`
}
