package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	infrauser "github.com/cardex/cardex/infra/repository/user"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func userRows(id uuid.UUID, username string, currency int) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(
		[]string{"id", "username", "password", "currency", "created_at", "updated_at"},
	).AddRow(id, username, "hashed", currency, now, now)
}

func TestGet(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	db, mock := newMockDB(t)
	repo := infrauser.New(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(userRows(id, "trader", 500))

	u, err := repo.Get(context.Background(), id)
	require.NoError(err)
	assert.Equal(id, u.ID)
	assert.Equal("trader", u.Username)
	assert.Equal("hashed", u.HashedPassword)
	assert.Equal(500, u.Currency)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	db, mock := newMockDB(t)
	repo := infrauser.New(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(err, domainuser.ErrUserNotFound)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestGetByUsername(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	db, mock := newMockDB(t)
	repo := infrauser.New(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("trader", 1).
		WillReturnRows(userRows(id, "trader", 0))

	u, err := repo.GetByUsername(context.Background(), "trader")
	require.NoError(err)
	assert.Equal(id, u.ID)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestExistsByUsername(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("trader").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByUsername(context.Background(), "trader")
	require.NoError(err)
	assert.True(exists)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	db, mock := newMockDB(t)
	repo := infrauser.New(db)
	id := uuid.New()

	mock.ExpectExec(`INSERT INTO "users"`).
		WithArgs(id, "trader", "hashed", 1000, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &dto.UserCreate{
		ID:       id,
		Username: "trader",
		Password: "hashed",
		Currency: 1000,
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUpdate_OnlyTouchesProvidedFields(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	db, mock := newMockDB(t)
	repo := infrauser.New(db)
	id := uuid.New()
	currency := 750

	mock.ExpectExec(`UPDATE "users" SET "currency"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(currency, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), id, &dto.UserUpdate{Currency: &currency})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUpdate_NoFieldsIsNoop(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	err := repo.Update(context.Background(), uuid.New(), &dto.UserUpdate{})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}
