package trade_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/cardex/cardex/pkg/domain/card"
	"github.com/cardex/cardex/pkg/domain/trade"
	"github.com/cardex/cardex/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func newTestUser(t *testing.T, currency int) *user.User {
	t.Helper()
	u, err := user.New("trader", "password123")
	require.NoError(t, err)
	u.Currency = currency
	return u
}

func newOwnedCard(t *testing.T, owner *user.User, value int) *card.Card {
	t.Helper()
	c, err := card.New(owner.ID, uuid.New(), uuid.New(), card.GradeFactory, value)
	require.NoError(t, err)
	owner.AddCard(c.ID)
	return c
}

func newPriceTrade(t *testing.T, seller *user.User, c *card.Card, price int) *trade.OpenTrade {
	t.Helper()
	ot, err := trade.NewOpen(trade.ForPrice, seller.ID, c.ID, price, nil)
	require.NoError(t, err)
	seller.AddOpenTrade(ot.ID)
	return ot
}

func newCardTrade(t *testing.T, seller *user.User, c *card.Card, wantID uuid.UUID) *trade.OpenTrade {
	t.Helper()
	ot, err := trade.NewOpen(trade.ForCard, seller.ID, c.ID, 0, &wantID)
	require.NoError(t, err)
	seller.AddOpenTrade(ot.ID)
	return ot
}

func TestValidate_PriceTrade(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 500)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := newPriceTrade(t, seller, sellerCard, 300)

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.True(v.Valid, "a funded price trade should be valid")
	assert.NoError(v.Err, "valid verdicts carry no reason")
}

func TestValidate_SellerDoesNotOwnCard(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 500)
	sellerCard, err := card.New(seller.ID, uuid.New(), uuid.New(), card.GradeFactory, 300)
	require.NoError(t, err)
	// card never added to the seller's owned set
	ot, err := trade.NewOpen(trade.ForPrice, seller.ID, sellerCard.ID, 300, nil)
	require.NoError(t, err)

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.False(v.Valid)
	assert.EqualError(v.Err, "Seller does not own the card")
}

func TestValidate_CardBelongsToSomeoneElse(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 500)
	stranger := newTestUser(t, 0)
	// the row's owner disagrees with the listing user
	strangersCard := newOwnedCard(t, stranger, 300)
	seller.AddCard(strangersCard.ID)
	ot := newPriceTrade(t, seller, strangersCard, 300)

	v := trade.Validate(ot, seller, buyer, strangersCard, nil)
	assert.False(v.Valid)
	assert.EqualError(v.Err, "Card does not belong to seller")
}

func TestValidate_NonPositivePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		price int
	}{
		{"zero", 0},
		{"negative", -50},
	}
	for _, tc := range cases {
		price := tc.price
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert := assert.New(t)

			seller := newTestUser(t, 0)
			buyer := newTestUser(t, 500)
			sellerCard := newOwnedCard(t, seller, 300)
			// bypass the constructor: a non-positive price can only reach
			// the validator through older persisted rows
			ot := &trade.OpenTrade{
				ID:     uuid.New(),
				Type:   trade.ForPrice,
				UserID: seller.ID,
				CardID: sellerCard.ID,
				Price:  price,
			}

			v := trade.Validate(ot, seller, buyer, sellerCard, nil)
			assert.False(v.Valid)
			assert.EqualError(v.Err, "Price cannot be negative")
		})
	}
}

func TestValidate_InsufficientFunds(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 299)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := newPriceTrade(t, seller, sellerCard, 300)

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.False(v.Valid)
	assert.EqualError(v.Err, "Insufficient funds")
}

func TestValidate_ExactFundsAreEnough(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 300)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := newPriceTrade(t, seller, sellerCard, 300)

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.True(v.Valid, "a buyer holding exactly the price can afford it")
}

func TestValidate_CardTradeMissingWantCard(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 0)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := &trade.OpenTrade{
		ID:     uuid.New(),
		Type:   trade.ForCard,
		UserID: seller.ID,
		CardID: sellerCard.ID,
	}

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.False(v.Valid)
	assert.EqualError(v.Err, "Card trade must specify wanted card")
}

func TestValidate_BuyerDoesNotOwnRequestedCard(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 0)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := newCardTrade(t, seller, sellerCard, uuid.New())

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.False(v.Valid)
	assert.EqualError(v.Err, "Buyer does not own the requested card")
}

func TestValidate_RequestedCardBelongsToSomeoneElse(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 0)
	stranger := newTestUser(t, 0)
	sellerCard := newOwnedCard(t, seller, 300)
	strangersCard := newOwnedCard(t, stranger, 280)
	buyer.AddCard(strangersCard.ID)
	ot := newCardTrade(t, seller, sellerCard, strangersCard.ID)

	v := trade.Validate(ot, seller, buyer, sellerCard, strangersCard)
	assert.False(v.Valid)
	assert.EqualError(v.Err, "Requested card does not belong to buyer")
}

func TestValidate_CardTradeWithoutBuyerCardRow(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 0)
	sellerCard := newOwnedCard(t, seller, 300)
	buyerCard := newOwnedCard(t, buyer, 280)
	ot := newCardTrade(t, seller, sellerCard, buyerCard.ID)

	// the ownership cross-check only runs when the row is supplied
	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.True(v.Valid)
}

func TestValidate_ShortCircuitsOnFirstViolation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// seller owns nothing AND the buyer is broke; only the first reason
	// in check order is reported
	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 0)
	sellerCard, err := card.New(seller.ID, uuid.New(), uuid.New(), card.GradeFactory, 300)
	require.NoError(t, err)
	ot, err := trade.NewOpen(trade.ForPrice, seller.ID, sellerCard.ID, 300, nil)
	require.NoError(t, err)

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.EqualError(v.Err, "Seller does not own the card")
}

func TestExecute_PriceTrade(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	seller := newTestUser(t, 100)
	buyer := newTestUser(t, 500)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := newPriceTrade(t, seller, sellerCard, 300)

	before := time.Now().UTC()
	completed, err := trade.Execute(ot, seller, buyer, sellerCard, nil)
	require.NoError(err)
	require.NotNil(completed)

	assert.Equal(200, buyer.Currency, "buyer pays the asking price")
	assert.Equal(400, seller.Currency, "seller receives the asking price")
	assert.Equal(buyer.ID, sellerCard.UserID, "card ownership moves to the buyer")
	assert.False(seller.HasCard(sellerCard.ID), "seller's owned set drops the card")
	assert.True(buyer.HasCard(sellerCard.ID), "buyer's owned set gains the card")

	assert.Equal(ot.ID, completed.ID, "completed record reuses the listing id")
	assert.Equal(trade.ForPrice, completed.Type)
	assert.Equal(seller.ID, completed.SellerUserID)
	assert.Equal(buyer.ID, completed.BuyerUserID)
	assert.Equal(sellerCard.ID, completed.SellerCardID)
	assert.Nil(completed.BuyerCardID, "price trades carry no buyer card")
	assert.Equal(300, completed.Price)
	assert.False(completed.ExecutedDate.Before(before), "timestamp is fresh")
	assert.Equal(time.UTC, completed.ExecutedDate.Location())

	assert.NotContains(seller.OpenTrades, ot.ID, "listing leaves the seller's open set")
	assert.Contains(seller.TradeHistory, ot.ID)
	assert.Contains(buyer.TradeHistory, ot.ID)
}

func TestExecute_CardTrade(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	seller := newTestUser(t, 100)
	buyer := newTestUser(t, 500)
	sellerCard := newOwnedCard(t, seller, 300)
	buyerCard := newOwnedCard(t, buyer, 280)
	ot := newCardTrade(t, seller, sellerCard, buyerCard.ID)

	completed, err := trade.Execute(ot, seller, buyer, sellerCard, buyerCard)
	require.NoError(err)
	require.NotNil(completed)

	assert.Equal(100, seller.Currency, "no currency moves in a card trade")
	assert.Equal(500, buyer.Currency, "no currency moves in a card trade")
	assert.Equal(buyer.ID, sellerCard.UserID)
	assert.Equal(seller.ID, buyerCard.UserID)
	assert.True(seller.HasCard(buyerCard.ID))
	assert.True(buyer.HasCard(sellerCard.ID))
	assert.False(seller.HasCard(sellerCard.ID))
	assert.False(buyer.HasCard(buyerCard.ID))

	assert.Equal(trade.ForCard, completed.Type)
	assert.Equal(0, completed.Price)
	require.NotNil(completed.BuyerCardID)
	assert.Equal(buyerCard.ID, *completed.BuyerCardID)
}

func TestExecute_CardTradeWithoutBuyerCardRow(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 0)
	sellerCard := newOwnedCard(t, seller, 300)
	buyerCard := newOwnedCard(t, buyer, 280)
	ot := newCardTrade(t, seller, sellerCard, buyerCard.ID)

	// validation tolerates the missing row; execution must refuse it
	// instead of swapping against nothing
	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	assert.True(v.Valid)

	completed, err := trade.Execute(ot, seller, buyer, sellerCard, nil)
	assert.ErrorIs(err, trade.ErrBuyerCardRequired)
	assert.Nil(completed)
	assert.Equal(seller.ID, sellerCard.UserID, "rejected execution moves nothing")
	assert.Contains(seller.OwnedCards, sellerCard.ID)
	assert.Contains(buyer.OwnedCards, buyerCard.ID)
}

func TestExecute_InvalidTradeLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 100)
	buyer := newTestUser(t, 299)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := newPriceTrade(t, seller, sellerCard, 300)

	completed, err := trade.Execute(ot, seller, buyer, sellerCard, nil)
	assert.Nil(completed)
	assert.EqualError(err, "Insufficient funds", "execution reports the verdict reason")

	assert.Equal(100, seller.Currency, "no partial mutation on rejection")
	assert.Equal(299, buyer.Currency, "no partial mutation on rejection")
	assert.Equal(seller.ID, sellerCard.UserID)
	assert.True(seller.HasCard(sellerCard.ID))
	assert.Contains(seller.OpenTrades, ot.ID, "listing stays open")
	assert.Empty(buyer.TradeHistory)
}

func TestExecute_ReturnsSameReasonAsValidate(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	seller := newTestUser(t, 0)
	buyer := newTestUser(t, 0)
	sellerCard := newOwnedCard(t, seller, 300)
	ot := newCardTrade(t, seller, sellerCard, uuid.New())

	v := trade.Validate(ot, seller, buyer, sellerCard, nil)
	_, err := trade.Execute(ot, seller, buyer, sellerCard, nil)
	assert.Equal(v.Err, err, "validator and executor agree on the reason")
}
