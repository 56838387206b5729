// Package pack implements the pack repository on GORM.
package pack

import (
	"context"
	"errors"

	domainpack "github.com/cardex/cardex/pkg/domain/pack"
	"github.com/cardex/cardex/pkg/dto"
	packrepo "github.com/cardex/cardex/pkg/repository/pack"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed pack repository.
func New(db *gorm.DB) packrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.PackCreate) error {
	model := Pack{
		ID:           create.ID,
		UserID:       create.UserID,
		CollectionID: create.CollectionID,
		Value:        create.Value,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.PackRead, error) {
	var model Pack
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainpack.ErrPackNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) ListByOwner(ctx context.Context, userID uuid.UUID, collectionID *uuid.UUID) ([]*dto.PackRead, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}
	var models []Pack
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.PackRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Pack{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainpack.ErrPackNotFound
	}
	return nil
}

func mapModelToDTO(m *Pack) *dto.PackRead {
	return &dto.PackRead{
		ID:           m.ID,
		UserID:       m.UserID,
		CollectionID: m.CollectionID,
		Value:        m.Value,
		CreatedAt:    m.CreatedAt,
	}
}
