// Package pack provides business logic for buying and opening card packs.
package pack

import (
	"context"
	"log/slog"
	"math/rand"

	domaincard "github.com/cardex/cardex/pkg/domain/card"
	domainpack "github.com/cardex/cardex/pkg/domain/pack"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/repository"
	"github.com/google/uuid"
)

// CardsPerPack is how many cards a single pack yields.
const CardsPerPack = 5

// Grade odds out of 100 and the value multiplier applied on top of the
// vehicle's base value.
var gradeTable = []struct {
	grade      domaincard.Grade
	weight     int
	multiplier int
}{
	{domaincard.GradeFactory, 70, 1},
	{domaincard.GradeLimitedRun, 25, 2},
	{domaincard.GradeNismo, 5, 4},
}

// Service provides business logic for pack operations.
type Service struct {
	uow     repository.UnitOfWork
	logger  *slog.Logger
	randInt func(n int) int
}

// New creates a pack Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, randInt: rand.Intn}
}

// NewWithRand creates a pack Service with a custom integer source. Tests use
// this to make pack contents deterministic.
func NewWithRand(uow repository.UnitOfWork, logger *slog.Logger, randInt func(n int) int) *Service {
	return &Service{uow: uow, logger: logger, randInt: randInt}
}

// GetPack retrieves a pack by id.
func (s *Service) GetPack(ctx context.Context, id uuid.UUID) (p *dto.PackRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PackRepository()
		if err != nil {
			return err
		}
		p, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		p = nil
	}
	return
}

// ListUserPacks lists a user's unopened packs.
func (s *Service) ListUserPacks(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
) (packs []*dto.PackRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PackRepository()
		if err != nil {
			return err
		}
		packs, err = repo.ListByOwner(ctx, userID, collectionID)
		return err
	})
	return
}

// BuyPack deducts the collection's pack price from the user and mints an
// unopened pack. The deduction and mint share one transaction.
func (s *Service) BuyPack(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (bought *dto.PackRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		collections, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		col, err := collections.Get(ctx, collectionID)
		if err != nil {
			return err
		}

		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		read, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		acct := domainuser.NewFromData(
			read.ID, read.Username, read.HashedPassword,
			read.Currency, read.CreatedAt, read.UpdatedAt,
		)
		if err := acct.DeductCurrency(col.PackPrice); err != nil {
			return err
		}
		if err := users.Update(ctx, userID, &dto.UserUpdate{Currency: &acct.Currency}); err != nil {
			return err
		}

		p, err := domainpack.New(userID, collectionID, col.PackPrice)
		if err != nil {
			return err
		}
		packs, err := uow.PackRepository()
		if err != nil {
			return err
		}
		if err := packs.Create(ctx, &dto.PackCreate{
			ID:           p.ID,
			UserID:       p.UserID,
			CollectionID: p.CollectionID,
			Value:        p.Value,
		}); err != nil {
			return err
		}
		bought, err = packs.Get(ctx, p.ID)
		return err
	})
	if err != nil {
		bought = nil
		return
	}
	s.logger.Info("pack bought", "pack_id", bought.ID, "user_id", userID, "collection_id", collectionID)
	return
}

// OpenPack consumes a pack and mints its cards. Each card takes a random
// vehicle from the pack's collection and a weighted grade roll; the grade
// multiplies the vehicle's base value. Only the pack owner may open it.
func (s *Service) OpenPack(
	ctx context.Context,
	userID, packID uuid.UUID,
) (minted []*dto.CardRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		packs, err := uow.PackRepository()
		if err != nil {
			return err
		}
		p, err := packs.Get(ctx, packID)
		if err != nil {
			return err
		}
		if p.UserID != userID {
			return domainuser.ErrUserUnauthorized
		}

		collections, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		vehicles, err := collections.ListVehicles(ctx, p.CollectionID)
		if err != nil {
			return err
		}
		if len(vehicles) == 0 {
			return domainpack.ErrPackNotFound
		}

		cards, err := uow.CardRepository()
		if err != nil {
			return err
		}
		for i := 0; i < CardsPerPack; i++ {
			v := vehicles[s.randInt(len(vehicles))]
			grade, multiplier := s.rollGrade()
			c, err := domaincard.New(userID, v.ID, p.CollectionID, grade, v.Value*multiplier)
			if err != nil {
				return err
			}
			if err := cards.Create(ctx, &dto.CardCreate{
				ID:           c.ID,
				UserID:       c.UserID,
				VehicleID:    c.VehicleID,
				CollectionID: c.CollectionID,
				Grade:        c.Grade.String(),
				Value:        c.Value,
			}); err != nil {
				return err
			}
			read, err := cards.Get(ctx, c.ID)
			if err != nil {
				return err
			}
			minted = append(minted, read)
		}
		return packs.Delete(ctx, packID)
	})
	if err != nil {
		minted = nil
		return
	}
	s.logger.Info("pack opened", "pack_id", packID, "user_id", userID, "cards", len(minted))
	return
}

func (s *Service) rollGrade() (domaincard.Grade, int) {
	roll := s.randInt(100)
	for _, row := range gradeTable {
		if roll < row.weight {
			return row.grade, row.multiplier
		}
		roll -= row.weight
	}
	last := gradeTable[len(gradeTable)-1]
	return last.grade, last.multiplier
}
