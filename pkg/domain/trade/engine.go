package trade

import (
	"errors"

	"github.com/cardex/cardex/pkg/domain/card"
	"github.com/cardex/cardex/pkg/domain/user"
)

// Validation reasons. The exact messages are part of the API surface: they
// travel to clients verbatim and are matched by the frontend, so they keep
// their historical capitalization and wording. "Price cannot be negative"
// also fires for a price of exactly zero; the message predates the stricter
// check and is kept as-is.
var (
	// ErrSellerDoesNotOwnCard fires when the listed card id is absent from
	// the seller's owned set.
	ErrSellerDoesNotOwnCard = errors.New("Seller does not own the card")
	// ErrCardNotSellers fires when the card row's owner disagrees with the seller.
	ErrCardNotSellers = errors.New("Card does not belong to seller")
	// ErrPriceNotPositive fires for a non-positive asking price.
	ErrPriceNotPositive = errors.New("Price cannot be negative")
	// ErrInsufficientFunds fires when the buyer cannot cover the price.
	ErrInsufficientFunds = errors.New("Insufficient funds")
	// ErrWantCardMissing fires when a card trade has no wanted card.
	ErrWantCardMissing = errors.New("Card trade must specify wanted card")
	// ErrBuyerDoesNotOwnCard fires when the wanted card id is absent from
	// the buyer's owned set.
	ErrBuyerDoesNotOwnCard = errors.New("Buyer does not own the requested card")
	// ErrCardNotBuyers fires when the offered card row's owner disagrees
	// with the buyer.
	ErrCardNotBuyers = errors.New("Requested card does not belong to buyer")
)

// Verdict is the validator's outcome. Invalidity is data, not failure: Err
// carries exactly one of the reason errors above when Valid is false, and is
// nil otherwise.
type Verdict struct {
	Valid bool
	Err   error
}

// Validate decides whether executing the trade between seller and buyer is
// legal. It is pure: no mutation, no I/O. Checks run in a fixed order and
// short-circuit on the first violation. buyerCard may be nil; the ownership
// cross-check on it only runs when it is supplied.
func Validate(
	t *OpenTrade,
	seller, buyer *user.User,
	sellerCard *card.Card,
	buyerCard *card.Card,
) Verdict {
	if !seller.HasCard(t.CardID) {
		return Verdict{Err: ErrSellerDoesNotOwnCard}
	}
	if sellerCard.UserID != seller.ID {
		return Verdict{Err: ErrCardNotSellers}
	}

	switch t.Type {
	case ForPrice:
		if t.Price <= 0 {
			return Verdict{Err: ErrPriceNotPositive}
		}
		if buyer.Currency < t.Price {
			return Verdict{Err: ErrInsufficientFunds}
		}
	case ForCard:
		if t.WantCardID == nil {
			return Verdict{Err: ErrWantCardMissing}
		}
		if !buyer.HasCard(*t.WantCardID) {
			return Verdict{Err: ErrBuyerDoesNotOwnCard}
		}
		if buyerCard != nil && buyerCard.UserID != buyer.ID {
			return Verdict{Err: ErrCardNotBuyers}
		}
	}

	return Verdict{Valid: true}
}

// Execute validates the trade and, on success, applies the state transition
// to the passed aggregates: currency moves, card ownership is reassigned,
// the open listing is removed from the seller and a completed record is
// appended to both parties' histories. Nothing is mutated before every check
// has passed, so a returned error always means no state changed. The caller
// owns persistence and must commit all mutated aggregates in one
// transaction.
func Execute(
	t *OpenTrade,
	seller, buyer *user.User,
	sellerCard *card.Card,
	buyerCard *card.Card,
) (*CompletedTrade, error) {
	if v := Validate(t, seller, buyer, sellerCard, buyerCard); !v.Valid {
		return nil, v.Err
	}

	var completed *CompletedTrade
	var err error

	switch t.Type {
	case ForPrice:
		if err = buyer.DeductCurrency(t.Price); err != nil {
			return nil, err
		}
		if err = seller.AddCurrency(t.Price); err != nil {
			return nil, err
		}
		sellerCard.Transfer(buyer.ID)
		seller.RemoveCard(sellerCard.ID)
		buyer.AddCard(sellerCard.ID)
		completed, err = NewCompleted(
			t.ID, ForPrice, seller.ID, sellerCard.ID, buyer.ID, t.Price, nil,
		)
	case ForCard:
		// Validate skips the ownership cross-check when no buyer card is
		// supplied; the swap below cannot.
		if buyerCard == nil {
			return nil, ErrBuyerCardRequired
		}
		sellerCard.Transfer(buyer.ID)
		buyerCard.Transfer(seller.ID)
		seller.RemoveCard(sellerCard.ID)
		seller.AddCard(buyerCard.ID)
		buyer.RemoveCard(buyerCard.ID)
		buyer.AddCard(sellerCard.ID)
		completed, err = NewCompleted(
			t.ID, ForCard, seller.ID, sellerCard.ID, buyer.ID, 0, &buyerCard.ID,
		)
	}
	if err != nil {
		return nil, err
	}

	seller.CompleteTrade(t.ID)
	buyer.CompleteTrade(t.ID)
	return completed, nil
}
