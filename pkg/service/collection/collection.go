// Package collection provides read-side business logic for the catalog.
package collection

import (
	"context"
	"log/slog"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for collection operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a collection Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ListCollections lists all collections without their vehicles.
func (s *Service) ListCollections(ctx context.Context) (cols []*dto.CollectionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		cols, err = repo.List(ctx)
		return err
	})
	return
}

// GetCollection retrieves a collection with its vehicles.
func (s *Service) GetCollection(ctx context.Context, id uuid.UUID) (col *dto.CollectionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		col, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		col = nil
	}
	return
}

// GetVehicle retrieves a single vehicle.
func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (v *dto.VehicleRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CollectionRepository()
		if err != nil {
			return err
		}
		v, err = repo.GetVehicle(ctx, id)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}
