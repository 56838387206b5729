// Package user implements the user repository on GORM.
package user

import (
	"context"
	"errors"

	"github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	userrepo "github.com/cardex/cardex/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed user repository.
func New(db *gorm.DB) userrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.UserCreate) error {
	model := User{
		ID:       create.ID,
		Username: create.Username,
		Password: create.Password,
		Currency: create.Currency,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var model User
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	var model User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, uu *dto.UserUpdate) error {
	updates := make(map[string]interface{})

	// Only include non-nil fields in the update
	if uu.Username != nil {
		updates["username"] = *uu.Username
	}
	if uu.Password != nil {
		updates["password"] = *uu.Password
	}
	if uu.Currency != nil {
		updates["currency"] = *uu.Currency
	}

	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func mapModelToDTO(m *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             m.ID,
		Username:       m.Username,
		HashedPassword: m.Password,
		Currency:       m.Currency,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
