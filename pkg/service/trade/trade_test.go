package trade_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/cardex/cardex/infra/lock"
	domaintrade "github.com/cardex/cardex/pkg/domain/trade"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/eventbus"
	rewardsvc "github.com/cardex/cardex/pkg/service/reward"
	tradesvc "github.com/cardex/cardex/pkg/service/trade"
	"github.com/cardex/cardex/pkg/testutils"
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

func newService(f *testutils.FakeUoW) *tradesvc.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewMemoryEventBus(logger)
	rewardsvc.New(f, logger).RegisterHandlers(bus)
	return tradesvc.New(f, lock.NoopLock{}, bus, logger)
}

func TestCreateTrade(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 0)
	cardID := f.SeedCard(seller, "FACTORY", 300)
	svc := newService(f)

	created, err := svc.CreateTrade(context.Background(), seller, cardID, "FOR_PRICE", 300, nil)
	require.NoError(err)
	assert.Equal("FOR_PRICE", created.Type)
	assert.Equal(300, created.Price)
	assert.Equal(seller, created.UserID)
	assert.Contains(f.OpenTrades, created.ID)
}

func TestCreateTrade_RejectsForeignCard(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 0)
	stranger := f.SeedUser("stranger", 0)
	cardID := f.SeedCard(stranger, "FACTORY", 300)
	svc := newService(f)

	_, err := svc.CreateTrade(context.Background(), seller, cardID, "FOR_PRICE", 300, nil)
	assert.ErrorIs(err, domaintrade.ErrNotTradeOwner)
	assert.Empty(f.OpenTrades)
}

func TestCancelTrade(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 0)
	other := f.SeedUser("other", 0)
	cardID := f.SeedCard(seller, "FACTORY", 300)
	tradeID := f.SeedOpenTrade("FOR_PRICE", seller, cardID, 300, nil)
	svc := newService(f)

	err := svc.CancelTrade(context.Background(), tradeID, other)
	assert.ErrorIs(err, domaintrade.ErrNotTradeOwner, "only the lister may cancel")
	assert.Contains(f.OpenTrades, tradeID)

	require.NoError(svc.CancelTrade(context.Background(), tradeID, seller))
	assert.NotContains(f.OpenTrades, tradeID)
}

func TestExecuteTrade_ForPrice(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 100)
	buyer := f.SeedUser("buyer", 500)
	cardID := f.SeedCard(seller, "FACTORY", 300)
	tradeID := f.SeedOpenTrade("FOR_PRICE", seller, cardID, 300, nil)
	svc := newService(f)

	result, err := svc.ExecuteTrade(context.Background(), tradeID, buyer, nil)
	require.NoError(err)
	require.NotNil(result.CompletedTrade)

	assert.Equal(tradeID, result.CompletedTrade.ID, "completed record reuses the listing id")
	assert.Equal(300, result.CompletedTrade.Price)
	assert.Nil(result.CompletedTrade.BuyerCardID)

	assert.Equal(200, f.Users[buyer].Currency)
	assert.Equal(400, f.Users[seller].Currency)
	assert.Equal(buyer, f.Cards[cardID].UserID, "card ownership persisted to the buyer")
	assert.NotContains(f.OpenTrades, tradeID, "open listing row removed")
	assert.Contains(f.CompletedTrades, tradeID)

	// the reward handler ran on the synchronous bus
	require.NotNil(result.BuyerReward)
	assert.Equal("CARD_FROM_TRADE", result.BuyerReward.Type)
	require.NotNil(result.BuyerReward.ItemID)
	assert.Equal(cardID, *result.BuyerReward.ItemID)
	require.NotNil(result.SellerReward)
	assert.Equal("CURRENCY_FROM_TRADE", result.SellerReward.Type)
	assert.Equal(300, result.SellerReward.Amount)
}

func TestExecuteTrade_ForCard(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 100)
	buyer := f.SeedUser("buyer", 100)
	sellerCard := f.SeedCard(seller, "NISMO", 900)
	buyerCard := f.SeedCard(buyer, "LIMITED_RUN", 800)
	tradeID := f.SeedOpenTrade("FOR_CARD", seller, sellerCard, 0, &buyerCard)
	svc := newService(f)

	result, err := svc.ExecuteTrade(context.Background(), tradeID, buyer, nil)
	require.NoError(err)

	assert.Equal(buyer, f.Cards[sellerCard].UserID)
	assert.Equal(seller, f.Cards[buyerCard].UserID)
	assert.Equal(100, f.Users[seller].Currency, "no currency moves")
	assert.Equal(100, f.Users[buyer].Currency, "no currency moves")

	require.NotNil(result.CompletedTrade.BuyerCardID)
	assert.Equal(buyerCard, *result.CompletedTrade.BuyerCardID)
	assert.Equal(0, result.CompletedTrade.Price)

	require.NotNil(result.SellerReward)
	assert.Equal("CARD_FROM_TRADE", result.SellerReward.Type)
	assert.Equal(buyerCard, *result.SellerReward.ItemID)
	require.NotNil(result.BuyerReward)
	assert.Equal(sellerCard, *result.BuyerReward.ItemID)
}

func TestExecuteTrade_InsufficientFunds(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 0)
	buyer := f.SeedUser("buyer", 299)
	cardID := f.SeedCard(seller, "FACTORY", 300)
	tradeID := f.SeedOpenTrade("FOR_PRICE", seller, cardID, 300, nil)
	svc := newService(f)

	_, err := svc.ExecuteTrade(context.Background(), tradeID, buyer, nil)
	assert.EqualError(err, "Insufficient funds")

	assert.Equal(299, f.Users[buyer].Currency, "nothing persisted on rejection")
	assert.Equal(seller, f.Cards[cardID].UserID)
	assert.Contains(f.OpenTrades, tradeID, "listing survives a failed execution")
	assert.Empty(f.Rewards, "no rewards for rejected trades")
}

func TestExecuteTrade_UnknownTrade(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	f := testutils.NewFakeUoW()
	buyer := f.SeedUser("buyer", 500)
	svc := newService(f)

	_, err := svc.ExecuteTrade(context.Background(), uuid.New(), buyer, nil)
	assert.ErrorIs(err, domaintrade.ErrTradeNotFound)
}

func TestExecuteTrade_SecondExecutionFails(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 0)
	buyer := f.SeedUser("buyer", 1000)
	rival := f.SeedUser("rival", 1000)
	cardID := f.SeedCard(seller, "FACTORY", 300)
	tradeID := f.SeedOpenTrade("FOR_PRICE", seller, cardID, 300, nil)
	svc := newService(f)

	_, err := svc.ExecuteTrade(context.Background(), tradeID, buyer, nil)
	require.NoError(err)

	_, err = svc.ExecuteTrade(context.Background(), tradeID, rival, nil)
	assert.ErrorIs(err, domaintrade.ErrTradeNotFound, "the open row is gone after the first execution")
	assert.Equal(1000, f.Users[rival].Currency)
}

func TestExecuteTrade_RejectsSelfExecution(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 1000)
	cardID := f.SeedCard(seller, "FACTORY", 300)
	tradeID := f.SeedOpenTrade("FOR_PRICE", seller, cardID, 300, nil)
	svc := newService(f)

	_, err := svc.ExecuteTrade(context.Background(), tradeID, seller, nil)
	assert.ErrorIs(err, domaintrade.ErrSelfTrade)

	assert.Equal(1000, f.Users[seller].Currency, "no currency moves on a rejected execution")
	assert.Equal(seller, f.Cards[cardID].UserID)
	assert.Contains(f.OpenTrades, tradeID, "the listing stays open")
	assert.Empty(f.CompletedTrades)
	assert.Empty(f.Rewards)
}

func TestGetTradeHistory_RoleFilter(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 0)
	buyer := f.SeedUser("buyer", 1000)
	cardID := f.SeedCard(seller, "FACTORY", 300)
	tradeID := f.SeedOpenTrade("FOR_PRICE", seller, cardID, 300, nil)
	svc := newService(f)

	_, err := svc.ExecuteTrade(context.Background(), tradeID, buyer, nil)
	require.NoError(err)

	asSeller, total, err := svc.GetTradeHistory(context.Background(),
		dto.CompletedTradeListFilter{UserID: &seller, Role: "seller"})
	require.NoError(err)
	assert.Len(asSeller, 1)
	assert.EqualValues(1, total)

	asBuyer, _, err := svc.GetTradeHistory(context.Background(),
		dto.CompletedTradeListFilter{UserID: &seller, Role: "buyer"})
	require.NoError(err)
	assert.Empty(asBuyer, "the seller never bought anything")
}
