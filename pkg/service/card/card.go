// Package card provides read-side business logic for cards.
package card

import (
	"context"
	"log/slog"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for card operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a card Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// GetCard retrieves a card by id with its joined vehicle name.
func (s *Service) GetCard(ctx context.Context, id uuid.UUID) (c *dto.CardRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		c = nil
	}
	return
}

// ListCards lists cards matching the filter. The limit is clamped to 1-100.
func (s *Service) ListCards(
	ctx context.Context,
	filter dto.CardListFilter,
) (cards []*dto.CardRead, total int64, err error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		cards, total, err = repo.List(ctx, filter)
		return err
	})
	return
}
