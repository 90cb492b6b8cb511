package dashboard

import (
	"sync"

	"github.com/shopspring/decimal"
)

// StakeLimits bounds what the tracking board will let through before a
// bet reaches the backend.
type StakeLimits struct {
	MaxStakePerBet decimal.Decimal // max stake on one bet
	MaxOpenStake   decimal.Decimal // max total stake across pending bets
	MaxDailyLoss   decimal.Decimal // stop placing bets past this day loss
}

// DefaultStakeLimits returns conservative defaults.
func DefaultStakeLimits() *StakeLimits {
	return &StakeLimits{
		MaxStakePerBet: decimal.NewFromInt(250),
		MaxOpenStake:   decimal.NewFromInt(2000),
		MaxDailyLoss:   decimal.NewFromInt(500),
	}
}

// StakeGuard checks proposed bets against the limits using the board's
// currently loaded state. It is advisory: the backend enforces its own
// rules, the guard just fails fast client-side.
type StakeGuard struct {
	mu      sync.RWMutex
	limits  *StakeLimits
	dayLoss decimal.Decimal
	openSt  decimal.Decimal
}

// NewStakeGuard creates a guard with the given limits (nil means
// defaults).
func NewStakeGuard(limits *StakeLimits) *StakeGuard {
	if limits == nil {
		limits = DefaultStakeLimits()
	}
	return &StakeGuard{limits: limits}
}

// Observe updates the guard from freshly derived tracking state.
func (g *StakeGuard) Observe(openStake, dayLoss decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.openSt = openStake
	g.dayLoss = dayLoss
}

// Check reports whether a proposed stake is allowed, with a reason when
// it is not.
func (g *StakeGuard) Check(stake decimal.Decimal) (bool, string) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if stake.LessThanOrEqual(decimal.Zero) {
		return false, "stake must be positive"
	}
	if stake.GreaterThan(g.limits.MaxStakePerBet) {
		return false, "exceeds per-bet stake limit"
	}
	if g.openSt.Add(stake).GreaterThan(g.limits.MaxOpenStake) {
		return false, "would exceed open stake limit"
	}
	if g.dayLoss.GreaterThanOrEqual(g.limits.MaxDailyLoss) {
		return false, "daily loss limit reached"
	}
	return true, ""
}
