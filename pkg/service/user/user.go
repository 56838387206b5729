// Package user provides business logic for user account operations.
package user

import (
	"context"
	"log/slog"

	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/repository"
	"github.com/cardex/cardex/pkg/utils"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// GetUserByUsername retrieves a user by username.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// UpdateUser updates account fields. The password, when present, is hashed
// before it reaches the repository.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) (u *dto.UserRead, err error) {
	if update.Password != nil {
		hashed, herr := utils.HashPassword(*update.Password)
		if herr != nil {
			return nil, herr
		}
		update.Password = &hashed
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// AddCurrency credits a user's balance and returns the updated account.
func (s *Service) AddCurrency(ctx context.Context, id uuid.UUID, amount int) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		read, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		acct := domainuser.NewFromData(
			read.ID, read.Username, read.HashedPassword,
			read.Currency, read.CreatedAt, read.UpdatedAt,
		)
		if err := acct.AddCurrency(amount); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, &dto.UserUpdate{Currency: &acct.Currency}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}
