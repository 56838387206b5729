package reward_test

import (
	"testing"

	"github.com/cardex/cardex/pkg/domain/reward"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	for _, tp := range []reward.Type{
		reward.TypePack,
		reward.TypeCurrency,
		reward.TypeCardFromTrade,
		reward.TypeCurrencyFromTrade,
	} {
		parsed, err := reward.ParseType(tp.String())
		require.NoError(t, err)
		assert.Equal(tp, parsed)
	}

	_, err := reward.ParseType("LOOTBOX")
	assert.Error(err)
}

func TestClaim(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	r := reward.New(uuid.New(), reward.TypeCurrency, 100, nil)
	assert.False(r.IsClaimed())
	assert.Nil(r.ClaimedAt)

	require.NoError(r.Claim())
	assert.True(r.IsClaimed())
	require.NotNil(r.ClaimedAt)

	first := *r.ClaimedAt
	assert.ErrorIs(r.Claim(), reward.ErrAlreadyClaimed)
	assert.Equal(first, *r.ClaimedAt, "second claim does not move the stamp")
}

func TestNewTradeReward(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	cardID := uuid.New()
	r := reward.New(uuid.New(), reward.TypeCardFromTrade, 0, &cardID)
	assert.Equal(reward.TypeCardFromTrade, r.Type)
	assert.Equal(cardID, *r.ItemID)
	assert.Zero(r.Amount)
	assert.False(r.CreatedAt.IsZero())
}
