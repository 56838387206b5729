// Package card implements the card repository on GORM.
package card

import (
	"context"
	"fmt"
	"time"

	domaincard "github.com/cardex/cardex/pkg/domain/card"
	"github.com/cardex/cardex/pkg/dto"
	cardrepo "github.com/cardex/cardex/pkg/repository/card"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed card repository.
func New(db *gorm.DB) cardrepo.Repository {
	return &repository{db: db}
}

// cardRow is the scan target for the vehicle-joined card query.
type cardRow struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	VehicleID    uuid.UUID
	CollectionID uuid.UUID
	Grade        int
	Value        int
	CreatedAt    time.Time
	Year         string
	Make         string
	Model        string
}

const cardSelect = "cards.id, cards.user_id, cards.vehicle_id, cards.collection_id, " +
	"cards.grade, cards.value, cards.created_at, vehicles.year, vehicles.make, vehicles.model"

func (r *repository) Create(ctx context.Context, create *dto.CardCreate) error {
	grade, err := domaincard.ParseGrade(create.Grade)
	if err != nil {
		return err
	}
	model := Card{
		ID:           create.ID,
		UserID:       create.UserID,
		VehicleID:    create.VehicleID,
		CollectionID: create.CollectionID,
		Grade:        int(grade),
		Value:        create.Value,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.CardRead, error) {
	var row cardRow
	err := r.db.WithContext(ctx).Model(&Card{}).
		Select(cardSelect).
		Joins("JOIN vehicles ON vehicles.id = cards.vehicle_id").
		Where("cards.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, domaincard.ErrCardNotFound
	}
	return mapRowToDTO(&row), nil
}

func (r *repository) List(ctx context.Context, filter dto.CardListFilter) ([]*dto.CardRead, int64, error) {
	query := r.db.WithContext(ctx).Model(&Card{})

	if filter.UserID != nil {
		query = query.Where("cards.user_id = ?", *filter.UserID)
	}
	if filter.CollectionID != nil {
		query = query.Where("cards.collection_id = ?", *filter.CollectionID)
	}
	if filter.VehicleID != nil {
		query = query.Where("cards.vehicle_id = ?", *filter.VehicleID)
	}
	if filter.Grade != nil {
		grade, err := domaincard.ParseGrade(*filter.Grade)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("cards.grade = ?", int(grade))
	}
	if filter.MinValue != nil {
		query = query.Where("cards.value >= ?", *filter.MinValue)
	}
	if filter.MaxValue != nil {
		query = query.Where("cards.value <= ?", *filter.MaxValue)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []cardRow
	err := query.
		Select(cardSelect).
		Joins("JOIN vehicles ON vehicles.id = cards.vehicle_id").
		Order(orderClause(filter.SortBy)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.CardRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapRowToDTO(&rows[i]))
	}
	return result, total, nil
}

func (r *repository) ListIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Card{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) UpdateOwner(ctx context.Context, id, newOwner uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Card{}).
		Where("id = ?", id).Update("user_id", newOwner)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domaincard.ErrCardNotFound
	}
	return nil
}

func (r *repository) UpdateValue(ctx context.Context, id uuid.UUID, value int) error {
	if value < 0 {
		return domaincard.ErrNegativeValue
	}
	return r.db.WithContext(ctx).Model(&Card{}).
		Where("id = ?", id).Update("value", value).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Card{}, "id = ?", id).Error
}

func orderClause(sortBy string) string {
	switch sortBy {
	case "value_asc":
		return "cards.value ASC"
	case "value_desc":
		return "cards.value DESC"
	case "grade_asc":
		return "cards.grade ASC"
	case "grade_desc":
		return "cards.grade DESC"
	case "date_asc":
		return "cards.created_at ASC"
	default: // date_desc
		return "cards.created_at DESC"
	}
}

func mapRowToDTO(row *cardRow) *dto.CardRead {
	return &dto.CardRead{
		ID:           row.ID,
		UserID:       row.UserID,
		VehicleID:    row.VehicleID,
		CollectionID: row.CollectionID,
		Name:         fmt.Sprintf("%s %s %s", row.Year, row.Make, row.Model),
		Grade:        domaincard.Grade(row.Grade).String(),
		Value:        row.Value,
		CreatedAt:    row.CreatedAt,
	}
}