package trade

import "github.com/google/uuid"

// CreateTradeInput is the request body for listing a card.
type CreateTradeInput struct {
	Type       string     `json:"type" validate:"required,oneof=FOR_PRICE FOR_CARD"`
	CardID     uuid.UUID  `json:"card_id" validate:"required"`
	Price      int        `json:"price" validate:"min=0"`
	WantCardID *uuid.UUID `json:"want_card_id,omitempty"`
}

// ExecuteTradeInput is the request body for executing a listing. The buyer
// card is only meaningful for card-for-card listings.
type ExecuteTradeInput struct {
	BuyerCardID *uuid.UUID `json:"buyer_card_id,omitempty"`
}

// FairnessInput is the request body for the advisory fairness check.
type FairnessInput struct {
	Value1 int `json:"value1" validate:"min=0"`
	Value2 int `json:"value2" validate:"min=0"`
}
