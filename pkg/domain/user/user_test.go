package user_test

import (
	"testing"

	"github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	u, err := user.New("trader", "password123")
	require.NoError(err)
	assert.NotEmpty(u.ID)
	assert.Equal("trader", u.Username)
	assert.Zero(u.Currency)
	assert.NotEqual("password123", u.Password, "password is stored hashed")
	assert.True(utils.CheckPasswordHash("password123", u.Password))

	_, err = user.New("", "password123")
	assert.Error(err, "username is required")
}

func TestCurrencyGuards(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	u, err := user.New("trader", "password123")
	require.NoError(err)

	require.NoError(u.AddCurrency(500))
	assert.Equal(500, u.Currency)

	assert.ErrorIs(u.AddCurrency(-1), user.ErrNegativeAmount)
	assert.Equal(500, u.Currency, "rejected credit leaves the balance alone")

	require.NoError(u.DeductCurrency(500))
	assert.Zero(u.Currency)

	assert.ErrorIs(u.DeductCurrency(1), user.ErrInsufficientCurrency)
	assert.Zero(u.Currency, "rejected debit leaves the balance alone")

	assert.ErrorIs(u.DeductCurrency(-1), user.ErrNegativeAmount, "a negative debit must not credit")
	assert.Zero(u.Currency)
}

func TestCardOwnership(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	u, err := user.New("trader", "password123")
	require.NoError(err)

	cardID := uuid.New()
	assert.False(u.HasCard(cardID))

	u.AddCard(cardID)
	assert.True(u.HasCard(cardID))

	u.RemoveCard(cardID)
	assert.False(u.HasCard(cardID))

	// removing an unknown card is a no-op
	u.RemoveCard(uuid.New())
	assert.Empty(u.OwnedCards)
}

func TestCompleteTrade(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	u, err := user.New("trader", "password123")
	require.NoError(err)

	tradeID := uuid.New()
	u.AddOpenTrade(tradeID)
	require.Contains(u.OpenTrades, tradeID)

	u.CompleteTrade(tradeID)
	assert.NotContains(u.OpenTrades, tradeID, "completed listing leaves the open set")
	assert.Contains(u.TradeHistory, tradeID)

	// the buyer side never listed the trade; history still grows
	other := uuid.New()
	u.CompleteTrade(other)
	assert.Contains(u.TradeHistory, other)
	assert.Empty(u.OpenTrades)
}
