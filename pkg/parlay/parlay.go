// Package parlay builds multi-leg parlay slips and computes their
// combined odds and payout projections client-side. The saved slip is
// sent to the backend as-is; settlement stays server-side.
package parlay

import (
	"fmt"
	"sync"

	"github.com/edgedesk/edgedesk-go/pkg/api"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.5, -200 -> 1.5. Values in (-100, 100) are not valid American
// odds.
func AmericanToDecimal(american decimal.Decimal) (decimal.Decimal, error) {
	abs := american.Abs()
	if abs.LessThan(hundred) {
		return decimal.Zero, fmt.Errorf("invalid american odds: %s", american)
	}
	if american.IsPositive() {
		return one.Add(american.Div(hundred)), nil
	}
	return one.Add(hundred.Div(abs)), nil
}

// DecimalToAmerican converts decimal odds to American odds.
// 2.5 -> +150, 1.5 -> -200.
func DecimalToAmerican(dec decimal.Decimal) (decimal.Decimal, error) {
	if dec.LessThanOrEqual(one) {
		return decimal.Zero, fmt.Errorf("invalid decimal odds: %s", dec)
	}
	profit := dec.Sub(one)
	if dec.GreaterThanOrEqual(decimal.NewFromInt(2)) {
		return profit.Mul(hundred), nil
	}
	return hundred.Div(profit).Neg(), nil
}

// ImpliedProbability returns the probability implied by decimal odds.
func ImpliedProbability(dec decimal.Decimal) (decimal.Decimal, error) {
	if dec.LessThanOrEqual(one) {
		return decimal.Zero, fmt.Errorf("invalid decimal odds: %s", dec)
	}
	return one.Div(dec), nil
}

// Slip is an in-progress parlay. Leg odds are decimal odds.
type Slip struct {
	mu    sync.RWMutex
	id    string
	legs  []api.ParlayLeg
	stake decimal.Decimal
}

// NewSlip creates an empty slip with a fresh id.
func NewSlip() *Slip {
	return &Slip{id: uuid.New().String()}
}

// ID returns the slip's client-generated id.
func (s *Slip) ID() string {
	return s.id
}

// AddLeg appends a selection. Two legs on the same game are correlated
// and rejected, matching the backend's validation.
func (s *Slip) AddLeg(leg api.ParlayLeg) error {
	if leg.Odds.LessThanOrEqual(one) {
		return fmt.Errorf("leg odds must exceed 1.0, got %s", leg.Odds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.legs {
		if leg.GameID != "" && existing.GameID == leg.GameID {
			return fmt.Errorf("slip already has a leg on game %s", leg.GameID)
		}
	}
	s.legs = append(s.legs, leg)
	return nil
}

// RemoveLeg deletes the leg at index i.
func (s *Slip) RemoveLeg(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.legs) {
		return fmt.Errorf("no leg at index %d", i)
	}
	s.legs = append(s.legs[:i], s.legs[i+1:]...)
	return nil
}

// Legs returns a copy of the current legs.
func (s *Slip) Legs() []api.ParlayLeg {
	s.mu.RLock()
	defer s.mu.RUnlock()

	legs := make([]api.ParlayLeg, len(s.legs))
	copy(legs, s.legs)
	return legs
}

// SetStake sets the slip's stake.
func (s *Slip) SetStake(stake decimal.Decimal) error {
	if stake.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("stake must be positive, got %s", stake)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stake = stake
	return nil
}

// CombinedOdds is the product of the legs' decimal odds. An empty slip
// has combined odds of zero.
func (s *Slip) CombinedOdds() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.legs) == 0 {
		return decimal.Zero
	}
	combined := one
	for _, leg := range s.legs {
		combined = combined.Mul(leg.Odds)
	}
	return combined
}

// PotentialPayout is stake times combined odds.
func (s *Slip) PotentialPayout() decimal.Decimal {
	odds := s.CombinedOdds()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stake.Mul(odds)
}

// PotentialProfit is the payout minus the stake.
func (s *Slip) PotentialProfit() decimal.Decimal {
	payout := s.PotentialPayout()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return payout.Sub(s.stake)
}

// ToRequest converts the slip to the create-parlay payload. A slip needs
// at least two legs and a positive stake.
func (s *Slip) ToRequest(clientID string) (*api.ParlayRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.legs) < 2 {
		return nil, fmt.Errorf("parlay needs at least 2 legs, have %d", len(s.legs))
	}
	if s.stake.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("parlay needs a positive stake")
	}

	legs := make([]api.ParlayLeg, len(s.legs))
	copy(legs, s.legs)

	return &api.ParlayRequest{
		ClientID: clientID,
		Legs:     legs,
		Stake:    s.stake,
	}, nil
}
