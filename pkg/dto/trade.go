package dto

import (
	"time"

	"github.com/google/uuid"
)

// OpenTradeCreate represents the data needed to persist a new listing.
type OpenTradeCreate struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	UserID     uuid.UUID  `json:"user_id"`
	CardID     uuid.UUID  `json:"card_id"`
	Price      int        `json:"price"`
	WantCardID *uuid.UUID `json:"want_card_id,omitempty"`
}

// OpenTradeRead represents a read-optimized view of an open listing.
type OpenTradeRead struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	UserID     uuid.UUID  `json:"user_id"`
	CardID     uuid.UUID  `json:"card_id"`
	Price      int        `json:"price"`
	WantCardID *uuid.UUID `json:"want_card_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OpenTradeListFilter narrows and orders the open trade listing.
type OpenTradeListFilter struct {
	Type         *string
	UserID       *uuid.UUID
	CollectionID *uuid.UUID
	Grade        *string
	MinPrice     *int
	MaxPrice     *int
	VehicleID    *uuid.UUID
	WantCardID   *uuid.UUID
	SortBy       string
	Limit        int
	Offset       int
}

// CompletedTradeCreate represents the data needed to persist an executed trade.
type CompletedTradeCreate struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	SellerUserID uuid.UUID  `json:"seller_user_id"`
	SellerCardID uuid.UUID  `json:"seller_card_id"`
	BuyerUserID  uuid.UUID  `json:"buyer_user_id"`
	BuyerCardID  *uuid.UUID `json:"buyer_card_id,omitempty"`
	Price        int        `json:"price"`
	ExecutedDate time.Time  `json:"executed_date"`
}

// CompletedTradeRead represents a read-optimized view of an executed trade.
type CompletedTradeRead struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	SellerUserID uuid.UUID  `json:"seller_user_id"`
	SellerCardID uuid.UUID  `json:"seller_card_id"`
	BuyerUserID  uuid.UUID  `json:"buyer_user_id"`
	BuyerCardID  *uuid.UUID `json:"buyer_card_id,omitempty"`
	Price        int        `json:"price"`
	ExecutedDate time.Time  `json:"executed_date"`
}

// CompletedTradeListFilter narrows trade history queries. Role is one of
// "seller", "buyer" or "all" and only applies when UserID is set.
type CompletedTradeListFilter struct {
	UserID *uuid.UUID
	Role   string
	Limit  int
	Offset int
}
