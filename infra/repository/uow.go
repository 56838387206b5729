// Package repository implements the unit of work on GORM.
package repository

import (
	"context"

	carddb "github.com/cardex/cardex/infra/repository/card"
	collectiondb "github.com/cardex/cardex/infra/repository/collection"
	packdb "github.com/cardex/cardex/infra/repository/pack"
	rewarddb "github.com/cardex/cardex/infra/repository/reward"
	tradedb "github.com/cardex/cardex/infra/repository/trade"
	userdb "github.com/cardex/cardex/infra/repository/user"
	"github.com/cardex/cardex/pkg/repository"
	cardrepo "github.com/cardex/cardex/pkg/repository/card"
	collectionrepo "github.com/cardex/cardex/pkg/repository/collection"
	packrepo "github.com/cardex/cardex/pkg/repository/pack"
	rewardrepo "github.com/cardex/cardex/pkg/repository/reward"
	traderepo "github.com/cardex/cardex/pkg/repository/trade"
	userrepo "github.com/cardex/cardex/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the
// transaction's session, so everything written within fn commits or rolls
// back as a unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW
// whose repositories share the transaction session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the root DB otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return userdb.New(u.session()), nil
}

// CardRepository returns the card repository bound to the current session.
func (u *UoW) CardRepository() (cardrepo.Repository, error) {
	return carddb.New(u.session()), nil
}

// TradeRepository returns the trade repository bound to the current session.
func (u *UoW) TradeRepository() (traderepo.Repository, error) {
	return tradedb.New(u.session()), nil
}

// PackRepository returns the pack repository bound to the current session.
func (u *UoW) PackRepository() (packrepo.Repository, error) {
	return packdb.New(u.session()), nil
}

// RewardRepository returns the reward repository bound to the current session.
func (u *UoW) RewardRepository() (rewardrepo.Repository, error) {
	return rewarddb.New(u.session()), nil
}

// CollectionRepository returns the catalog repository bound to the current
// session.
func (u *UoW) CollectionRepository() (collectionrepo.Repository, error) {
	return collectiondb.New(u.session()), nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userdb.User{},
		&collectiondb.Collection{},
		&collectiondb.Vehicle{},
		&carddb.Card{},
		&packdb.Pack{},
		&tradedb.OpenTrade{},
		&tradedb.CompletedTrade{},
		&rewarddb.Reward{},
	)
}
