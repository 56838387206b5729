package pack_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	packsvc "github.com/cardex/cardex/pkg/service/pack"
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

func seedCollection(f *testutils.FakeUoW, packPrice int, vehicleValues ...int) uuid.UUID {
	id := uuid.New()
	col := &dto.CollectionRead{
		ID:        id,
		Name:      "JDM Legends",
		PackPrice: packPrice,
	}
	for _, v := range vehicleValues {
		col.Vehicles = append(col.Vehicles, dto.VehicleRead{
			ID:    uuid.New(),
			Year:  "1999",
			Make:  "Nissan",
			Model: "Skyline GT-R",
			Value: v,
		})
	}
	f.Collections[id] = col
	return id
}

func TestBuyPack(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	userID := f.SeedUser("collector", 1000)
	collectionID := seedCollection(f, 300, 500)
	svc := packsvc.New(f, discardLogger())

	p, err := svc.BuyPack(context.Background(), userID, collectionID)
	require.NoError(err)
	assert.Equal(userID, p.UserID)
	assert.Equal(collectionID, p.CollectionID)
	assert.Equal(300, p.Value)
	assert.Equal(700, f.Users[userID].Currency, "pack price deducted")
}

func TestBuyPack_InsufficientCurrency(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	f := testutils.NewFakeUoW()
	userID := f.SeedUser("collector", 299)
	collectionID := seedCollection(f, 300, 500)
	svc := packsvc.New(f, discardLogger())

	_, err := svc.BuyPack(context.Background(), userID, collectionID)
	assert.ErrorIs(err, domainuser.ErrInsufficientCurrency)
	assert.Equal(299, f.Users[userID].Currency)
	assert.Empty(f.Packs)
}

func TestOpenPack(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	userID := f.SeedUser("collector", 1000)
	collectionID := seedCollection(f, 300, 500, 800)
	// always the first vehicle, always the lowest roll: FACTORY at 1x
	svc := packsvc.NewWithRand(f, discardLogger(), func(n int) int { return 0 })

	bought, err := svc.BuyPack(context.Background(), userID, collectionID)
	require.NoError(err)

	cards, err := svc.OpenPack(context.Background(), userID, bought.ID)
	require.NoError(err)
	require.Len(cards, packsvc.CardsPerPack)
	for _, c := range cards {
		assert.Equal(userID, c.UserID)
		assert.Equal(collectionID, c.CollectionID)
		assert.Equal("FACTORY", c.Grade)
		assert.Equal(500, c.Value, "base vehicle value at the factory multiplier")
	}
	assert.NotContains(f.Packs, bought.ID, "pack consumed on opening")
}

func TestOpenPack_TopRoll(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	userID := f.SeedUser("collector", 1000)
	collectionID := seedCollection(f, 300, 500)
	// roll 99 lands in the top tier
	svc := packsvc.NewWithRand(f, discardLogger(), func(n int) int {
		if n == 100 {
			return 99
		}
		return 0
	})

	bought, err := svc.BuyPack(context.Background(), userID, collectionID)
	require.NoError(err)
	cards, err := svc.OpenPack(context.Background(), userID, bought.ID)
	require.NoError(err)
	for _, c := range cards {
		assert.Equal("NISMO", c.Grade)
		assert.Equal(2000, c.Value, "top tier multiplies the base value by four")
	}
}

func TestOpenPack_WrongOwner(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	f := testutils.NewFakeUoW()
	owner := f.SeedUser("owner", 1000)
	thief := f.SeedUser("thief", 1000)
	collectionID := seedCollection(f, 300, 500)
	svc := packsvc.New(f, discardLogger())

	bought, err := svc.BuyPack(context.Background(), owner, collectionID)
	require.NoError(err)

	_, err = svc.OpenPack(context.Background(), thief, bought.ID)
	assert.ErrorIs(err, domainuser.ErrUserUnauthorized)
	assert.Contains(f.Packs, bought.ID, "pack survives a rejected open")
}
