package reward_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	domainreward "github.com/cardex/cardex/pkg/domain/reward"
	domaintrade "github.com/cardex/cardex/pkg/domain/trade"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/eventbus"
	rewardsvc "github.com/cardex/cardex/pkg/service/reward"
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedReward(f *testutils.FakeUoW, userID uuid.UUID, rewardType string, amount int) uuid.UUID {
	id := uuid.New()
	f.Rewards[id] = &dto.RewardRead{
		ID:        id,
		UserID:    userID,
		Type:      rewardType,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	return id
}

func TestClaimCurrencyReward(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	userID := f.SeedUser("winner", 100)
	rewardID := seedReward(f, userID, "CURRENCY", 250)
	svc := rewardsvc.New(f, discardLogger())

	claimed, err := svc.ClaimReward(context.Background(), userID, rewardID)
	require.NoError(err)
	assert.NotNil(claimed.ClaimedAt)
	assert.Equal(350, f.Users[userID].Currency, "claim credits the balance")
}

func TestClaimReward_Twice(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	userID := f.SeedUser("winner", 0)
	rewardID := seedReward(f, userID, "CURRENCY", 250)
	svc := rewardsvc.New(f, discardLogger())

	_, err := svc.ClaimReward(context.Background(), userID, rewardID)
	require.NoError(err)

	_, err = svc.ClaimReward(context.Background(), userID, rewardID)
	assert.ErrorIs(err, domainreward.ErrAlreadyClaimed)
	assert.Equal(250, f.Users[userID].Currency, "double claim never pays twice")
}

func TestClaimReward_WrongUser(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	f := testutils.NewFakeUoW()
	owner := f.SeedUser("owner", 0)
	thief := f.SeedUser("thief", 0)
	rewardID := seedReward(f, owner, "CURRENCY", 250)
	svc := rewardsvc.New(f, discardLogger())

	_, err := svc.ClaimReward(context.Background(), thief, rewardID)
	assert.ErrorIs(err, domainuser.ErrUserUnauthorized)
}

func TestListUserRewards_ClaimedFilter(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	userID := f.SeedUser("winner", 0)
	pendingID := seedReward(f, userID, "CURRENCY", 100)
	claimedID := seedReward(f, userID, "CURRENCY", 100)
	svc := rewardsvc.New(f, discardLogger())
	_, err := svc.ClaimReward(context.Background(), userID, claimedID)
	require.NoError(err)

	unclaimed := false
	pending, err := svc.ListUserRewards(context.Background(), userID, &unclaimed)
	require.NoError(err)
	require.Len(pending, 1)
	assert.Equal(pendingID, pending[0].ID)

	all, err := svc.ListUserRewards(context.Background(), userID, nil)
	require.NoError(err)
	assert.Len(all, 2)
}

func TestTradeExecutedHandler_GrantsBothParties(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	seller := f.SeedUser("seller", 0)
	buyer := f.SeedUser("buyer", 0)
	sellerCard := uuid.New()
	svc := rewardsvc.New(f, discardLogger())
	bus := eventbus.NewMemoryEventBus(discardLogger())
	svc.RegisterHandlers(bus)

	completed, err := domaintrade.NewCompleted(
		uuid.New(), domaintrade.ForPrice, seller, sellerCard, buyer, 300, nil)
	require.NoError(err)

	bus.Publish(context.Background(), domaintrade.ExecutedEvent{Completed: completed})

	buyerRewards, err := svc.ListUserRewards(context.Background(), buyer, nil)
	require.NoError(err)
	require.Len(buyerRewards, 1)
	assert.Equal("CARD_FROM_TRADE", buyerRewards[0].Type)
	assert.Equal(sellerCard, *buyerRewards[0].ItemID)

	sellerRewards, err := svc.ListUserRewards(context.Background(), seller, nil)
	require.NoError(err)
	require.Len(sellerRewards, 1)
	assert.Equal("CURRENCY_FROM_TRADE", sellerRewards[0].Type)
	assert.Equal(300, sellerRewards[0].Amount)
}
