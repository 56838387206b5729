// Package trade defines the trade aggregates and the validation and
// execution engine that moves currency and card ownership between users.
package trade

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTradeNotFound is returned when an open trade cannot be found.
	ErrTradeNotFound = errors.New("trade not found")
	// ErrCompletedTradeNotFound is returned when a completed trade cannot be found.
	ErrCompletedTradeNotFound = errors.New("completed trade not found")
	// ErrNotTradeOwner is returned when a user manipulates someone else's listing.
	ErrNotTradeOwner = errors.New("trade does not belong to user")
	// ErrSelfTrade is returned when a user tries to execute their own listing.
	ErrSelfTrade = errors.New("cannot execute own trade")
	// ErrBuyerCardRequired is returned when a card trade is executed without
	// the buyer's card loaded.
	ErrBuyerCardRequired = errors.New("buyer card must be provided for card trade")
)

// Type discriminates what a listing is exchanged for.
type Type int

const (
	// ForPrice is a listing exchanged for in-game currency.
	ForPrice Type = iota
	// ForCard is a listing exchanged for a specific other card.
	ForCard
)

// String returns the wire representation of the trade type.
func (t Type) String() string {
	switch t {
	case ForPrice:
		return "FOR_PRICE"
	case ForCard:
		return "FOR_CARD"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts a wire string into a trade Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "FOR_PRICE":
		return ForPrice, nil
	case "FOR_CARD":
		return ForCard, nil
	default:
		return 0, fmt.Errorf("unknown trade type %q", s)
	}
}

// OpenTrade is a standing offer: the offering user's card against either a
// price (ForPrice) or a wanted card (ForCard). Exactly one of Price and
// WantCardID is active depending on Type. The listing is deleted atomically
// when the trade executes.
type OpenTrade struct {
	ID         uuid.UUID  `json:"id"`
	Type       Type       `json:"type"`
	UserID     uuid.UUID  `json:"user_id"`
	CardID     uuid.UUID  `json:"card_id"`
	Price      int        `json:"price"`
	WantCardID *uuid.UUID `json:"want_card_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewOpen creates a validated open trade listing.
func NewOpen(t Type, userID, cardID uuid.UUID, price int, wantCardID *uuid.UUID) (*OpenTrade, error) {
	ot := &OpenTrade{
		ID:         uuid.New(),
		Type:       t,
		UserID:     userID,
		CardID:     cardID,
		Price:      price,
		WantCardID: wantCardID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := ot.validate(); err != nil {
		return nil, err
	}
	return ot, nil
}

func (ot *OpenTrade) validate() error {
	if ot.Type == ForCard && ot.WantCardID == nil {
		return errors.New("want card id must be provided for FOR_CARD trades")
	}
	if ot.Type == ForPrice && ot.Price <= 0 {
		return errors.New("price must be greater than 0 for FOR_PRICE trades")
	}
	return nil
}

// UpdatePrice changes the asking price of a ForPrice listing.
func (ot *OpenTrade) UpdatePrice(newPrice int) error {
	if ot.Type != ForPrice {
		return errors.New("only FOR_PRICE trades can update price")
	}
	if newPrice <= 0 {
		return errors.New("price must be greater than 0")
	}
	ot.Price = newPrice
	return nil
}

// CompletedTrade is the immutable record of an executed trade. Its ID reuses
// the open trade's ID. BuyerCardID is non-nil iff the trade was ForCard;
// Price is 0 for ForCard trades.
type CompletedTrade struct {
	ID           uuid.UUID  `json:"id"`
	Type         Type       `json:"type"`
	SellerUserID uuid.UUID  `json:"seller_user_id"`
	SellerCardID uuid.UUID  `json:"seller_card_id"`
	BuyerUserID  uuid.UUID  `json:"buyer_user_id"`
	BuyerCardID  *uuid.UUID `json:"buyer_card_id,omitempty"`
	Price        int        `json:"price"`
	ExecutedDate time.Time  `json:"executed_date"`
}

// NewCompleted creates a validated completed trade record stamped with the
// current UTC time.
func NewCompleted(
	id uuid.UUID,
	t Type,
	sellerUserID, sellerCardID, buyerUserID uuid.UUID,
	price int,
	buyerCardID *uuid.UUID,
) (*CompletedTrade, error) {
	ct := &CompletedTrade{
		ID:           id,
		Type:         t,
		SellerUserID: sellerUserID,
		SellerCardID: sellerCardID,
		BuyerUserID:  buyerUserID,
		BuyerCardID:  buyerCardID,
		Price:        price,
		ExecutedDate: time.Now().UTC(),
	}
	if ct.Type == ForCard && ct.BuyerCardID == nil {
		return nil, errors.New("buyer card id must be provided for FOR_CARD trades")
	}
	if ct.Type == ForPrice && ct.Price <= 0 {
		return nil, errors.New("price must be greater than 0 for FOR_PRICE trades")
	}
	return ct, nil
}
