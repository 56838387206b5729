// Package reward defines rewards granted to users by trades and promotions.
package reward

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRewardNotFound is returned when a reward cannot be found.
	ErrRewardNotFound = errors.New("reward not found")
	// ErrAlreadyClaimed is returned when a reward is claimed twice.
	ErrAlreadyClaimed = errors.New("reward already claimed")
)

// Type enumerates what a reward grants.
type Type int

const (
	// TypePack grants an unopened pack.
	TypePack Type = iota
	// TypeCurrency grants in-game currency.
	TypeCurrency
	// TypeCardFromTrade records a card received through a trade.
	TypeCardFromTrade
	// TypeCurrencyFromTrade records currency received through a trade.
	TypeCurrencyFromTrade
)

// String returns the wire representation of the reward type.
func (t Type) String() string {
	switch t {
	case TypePack:
		return "PACK"
	case TypeCurrency:
		return "CURRENCY"
	case TypeCardFromTrade:
		return "CARD_FROM_TRADE"
	case TypeCurrencyFromTrade:
		return "CURRENCY_FROM_TRADE"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts a wire string into a reward Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "PACK":
		return TypePack, nil
	case "CURRENCY":
		return TypeCurrency, nil
	case "CARD_FROM_TRADE":
		return TypeCardFromTrade, nil
	case "CURRENCY_FROM_TRADE":
		return TypeCurrencyFromTrade, nil
	default:
		return 0, fmt.Errorf("unknown reward type %q", s)
	}
}

// Reward is granted to a user and stays pending until claimed.
type Reward struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Type      Type       `json:"type"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	Amount    int        `json:"amount"`
	CreatedAt time.Time  `json:"created_at"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
}

// New creates a pending Reward.
func New(userID uuid.UUID, t Type, amount int, itemID *uuid.UUID) *Reward {
	return &Reward{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      t,
		ItemID:    itemID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// Claim marks the reward claimed. Claiming twice is an error.
func (r *Reward) Claim() error {
	if r.ClaimedAt != nil {
		return ErrAlreadyClaimed
	}
	now := time.Now().UTC()
	r.ClaimedAt = &now
	return nil
}

// IsClaimed reports whether the reward has been claimed.
func (r *Reward) IsClaimed() bool {
	return r.ClaimedAt != nil
}
