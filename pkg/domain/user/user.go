// Package user defines the User aggregate: identity, currency balance and
// the sets of cards, packs and trades a user holds.
package user

import (
	"errors"
	"time"

	"github.com/cardex/cardex/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials do not check out.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrNegativeAmount is returned when a currency credit is negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrInsufficientCurrency is returned when a debit exceeds the balance.
	ErrInsufficientCurrency = errors.New("insufficient currency")
)

// User represents a player in the marketplace. Currency and the owned-card
// set mutate on every trade execution and pack purchase; the trade executor
// is the only writer of card ownership transfers.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Password     string      `json:"-"`
	Currency     int         `json:"currency"`
	OwnedCards   []uuid.UUID `json:"owned_cards"`
	OwnedPacks   []uuid.UUID `json:"owned_packs"`
	OpenTrades   []uuid.UUID `json:"open_trades"`
	TradeHistory []uuid.UUID `json:"trade_history"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// New creates a User with a hashed password, zero currency and empty holdings.
func New(username, password string) (*User, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewFromData creates a User from raw data (used for DB hydration).
func NewFromData(
	id uuid.UUID,
	username, password string,
	currency int,
	created, updated time.Time,
) *User {
	return &User{
		ID:        id,
		Username:  username,
		Password:  password,
		Currency:  currency,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// AddCurrency credits the balance. Negative amounts are rejected.
func (u *User) AddCurrency(amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	u.Currency += amount
	return nil
}

// DeductCurrency debits the balance. Negative amounts and overdrafts are
// rejected.
func (u *User) DeductCurrency(amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount > u.Currency {
		return ErrInsufficientCurrency
	}
	u.Currency -= amount
	return nil
}

// AddCard records ownership of a card.
func (u *User) AddCard(cardID uuid.UUID) {
	u.OwnedCards = append(u.OwnedCards, cardID)
}

// RemoveCard drops a card from the owned set.
func (u *User) RemoveCard(cardID uuid.UUID) {
	for i, id := range u.OwnedCards {
		if id == cardID {
			u.OwnedCards = append(u.OwnedCards[:i], u.OwnedCards[i+1:]...)
			return
		}
	}
}

// HasCard reports whether the user owns the given card.
func (u *User) HasCard(cardID uuid.UUID) bool {
	for _, id := range u.OwnedCards {
		if id == cardID {
			return true
		}
	}
	return false
}

// AddPack records ownership of a pack.
func (u *User) AddPack(packID uuid.UUID) {
	u.OwnedPacks = append(u.OwnedPacks, packID)
}

// RemovePack drops a pack from the owned set.
func (u *User) RemovePack(packID uuid.UUID) {
	for i, id := range u.OwnedPacks {
		if id == packID {
			u.OwnedPacks = append(u.OwnedPacks[:i], u.OwnedPacks[i+1:]...)
			return
		}
	}
}

// AddOpenTrade records a listing created by this user.
func (u *User) AddOpenTrade(tradeID uuid.UUID) {
	u.OpenTrades = append(u.OpenTrades, tradeID)
}

// CompleteTrade appends a completed trade to the history and removes the
// matching open listing, if any.
func (u *User) CompleteTrade(tradeID uuid.UUID) {
	u.TradeHistory = append(u.TradeHistory, tradeID)
	for i, id := range u.OpenTrades {
		if id == tradeID {
			u.OpenTrades = append(u.OpenTrades[:i], u.OpenTrades[i+1:]...)
			return
		}
	}
}
