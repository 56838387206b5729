// Package repository defines the unit-of-work contract shared by all
// services.
package repository

import (
	"context"

	"github.com/cardex/cardex/pkg/repository/card"
	"github.com/cardex/cardex/pkg/repository/collection"
	"github.com/cardex/cardex/pkg/repository/pack"
	"github.com/cardex/cardex/pkg/repository/reward"
	"github.com/cardex/cardex/pkg/repository/trade"
	"github.com/cardex/cardex/pkg/repository/user"
)

// UnitOfWork provides transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction's DB
// session, so all writes within fn commit or roll back together. The trade
// executor relies on this for its all-or-nothing guarantee.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary. If the
	// function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// UserRepository returns the user repository bound to the current session.
	UserRepository() (user.Repository, error)

	// CardRepository returns the card repository bound to the current session.
	CardRepository() (card.Repository, error)

	// TradeRepository returns the trade repository bound to the current session.
	TradeRepository() (trade.Repository, error)

	// PackRepository returns the pack repository bound to the current session.
	PackRepository() (pack.Repository, error)

	// RewardRepository returns the reward repository bound to the current session.
	RewardRepository() (reward.Repository, error)

	// CollectionRepository returns the catalog repository bound to the
	// current session.
	CollectionRepository() (collection.Repository, error)
}
