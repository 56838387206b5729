// Package collection implements the catalog repository on GORM.
package collection

import (
	"context"
	"errors"

	"github.com/cardex/cardex/pkg/domain/catalog"
	"github.com/cardex/cardex/pkg/dto"
	collectionrepo "github.com/cardex/cardex/pkg/repository/collection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed catalog repository.
func New(db *gorm.DB) collectionrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.CollectionRead, error) {
	var model Collection
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCollectionNotFound
		}
		return nil, err
	}
	vehicles, err := r.ListVehicles(ctx, id)
	if err != nil {
		return nil, err
	}
	read := mapCollectionToDTO(&model)
	read.Vehicles = make([]dto.VehicleRead, 0, len(vehicles))
	for _, v := range vehicles {
		read.Vehicles = append(read.Vehicles, *v)
	}
	return read, nil
}

func (r *repository) List(ctx context.Context) ([]*dto.CollectionRead, error) {
	var models []Collection
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.CollectionRead, 0, len(models))
	for i := range models {
		result = append(result, mapCollectionToDTO(&models[i]))
	}
	return result, nil
}

func (r *repository) GetVehicle(ctx context.Context, id uuid.UUID) (*dto.VehicleRead, error) {
	var model Vehicle
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrVehicleNotFound
		}
		return nil, err
	}
	return mapVehicleToDTO(&model), nil
}

func (r *repository) ListVehicles(ctx context.Context, collectionID uuid.UUID) ([]*dto.VehicleRead, error) {
	var models []Vehicle
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.VehicleRead, 0, len(models))
	for i := range models {
		result = append(result, mapVehicleToDTO(&models[i]))
	}
	return result, nil
}

func mapCollectionToDTO(m *Collection) *dto.CollectionRead {
	return &dto.CollectionRead{
		ID:        m.ID,
		Name:      m.Name,
		Image:     m.Image,
		PackPrice: m.PackPrice,
	}
}

func mapVehicleToDTO(m *Vehicle) *dto.VehicleRead {
	return &dto.VehicleRead{
		ID:    m.ID,
		Year:  m.Year,
		Make:  m.Make,
		Model: m.Model,
		Stat1: m.Stat1,
		Stat2: m.Stat2,
		Stat3: m.Stat3,
		Value: m.Value,
		Image: m.Image,
	}
}
