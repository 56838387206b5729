// Package trade implements the trade repository on GORM.
package trade

import (
	"context"
	"errors"

	domaincard "github.com/cardex/cardex/pkg/domain/card"
	domaintrade "github.com/cardex/cardex/pkg/domain/trade"
	"github.com/cardex/cardex/pkg/dto"
	traderepo "github.com/cardex/cardex/pkg/repository/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed trade repository.
func New(db *gorm.DB) traderepo.Repository {
	return &repository{db: db}
}

func (r *repository) CreateOpen(ctx context.Context, create *dto.OpenTradeCreate) error {
	model := OpenTrade{
		ID:         create.ID,
		Type:       create.Type,
		UserID:     create.UserID,
		CardID:     create.CardID,
		Price:      create.Price,
		WantCardID: create.WantCardID,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *repository) GetOpen(ctx context.Context, id uuid.UUID) (*dto.OpenTradeRead, error) {
	var model OpenTrade
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domaintrade.ErrTradeNotFound
		}
		return nil, err
	}
	return mapOpenToDTO(&model), nil
}

func (r *repository) ListOpen(ctx context.Context, filter dto.OpenTradeListFilter) ([]*dto.OpenTradeRead, int64, error) {
	query := r.db.WithContext(ctx).Model(&OpenTrade{})

	if filter.Type != nil {
		query = query.Where("open_trades.type = ?", *filter.Type)
	}
	if filter.UserID != nil {
		query = query.Where("open_trades.user_id = ?", *filter.UserID)
	}
	if filter.MinPrice != nil {
		query = query.Where("open_trades.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("open_trades.price <= ?", *filter.MaxPrice)
	}
	if filter.WantCardID != nil {
		query = query.Where("open_trades.want_card_id = ?", *filter.WantCardID)
	}

	// Card attribute filters go through the offered card's row.
	if filter.CollectionID != nil || filter.Grade != nil || filter.VehicleID != nil {
		query = query.Joins("JOIN cards ON cards.id = open_trades.card_id")
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
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []OpenTrade
	err := query.
		Order(openOrderClause(filter.SortBy)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.OpenTradeRead, 0, len(models))
	for i := range models {
		result = append(result, mapOpenToDTO(&models[i]))
	}
	return result, total, nil
}

// DeleteOpen removes the listing row. RowsAffected == 0 means another
// transaction already consumed it.
func (r *repository) DeleteOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&OpenTrade{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreateCompleted(ctx context.Context, create *dto.CompletedTradeCreate) error {
	model := CompletedTrade{
		ID:           create.ID,
		Type:         create.Type,
		SellerUserID: create.SellerUserID,
		SellerCardID: create.SellerCardID,
		BuyerUserID:  create.BuyerUserID,
		BuyerCardID:  create.BuyerCardID,
		Price:        create.Price,
		ExecutedDate: create.ExecutedDate,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *repository) GetCompleted(ctx context.Context, id uuid.UUID) (*dto.CompletedTradeRead, error) {
	var model CompletedTrade
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domaintrade.ErrCompletedTradeNotFound
		}
		return nil, err
	}
	return mapCompletedToDTO(&model), nil
}

func (r *repository) ListCompleted(ctx context.Context, filter dto.CompletedTradeListFilter) ([]*dto.CompletedTradeRead, int64, error) {
	query := r.db.WithContext(ctx).Model(&CompletedTrade{})

	if filter.UserID != nil {
		switch filter.Role {
		case "seller":
			query = query.Where("seller_user_id = ?", *filter.UserID)
		case "buyer":
			query = query.Where("buyer_user_id = ?", *filter.UserID)
		default:
			query = query.Where("seller_user_id = ? OR buyer_user_id = ?", *filter.UserID, *filter.UserID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []CompletedTrade
	err := query.
		Order("executed_date DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.CompletedTradeRead, 0, len(models))
	for i := range models {
		result = append(result, mapCompletedToDTO(&models[i]))
	}
	return result, total, nil
}

func openOrderClause(sortBy string) string {
	switch sortBy {
	case "price_asc":
		return "open_trades.price ASC"
	case "price_desc":
		return "open_trades.price DESC"
	case "date_asc":
		return "open_trades.created_at ASC"
	default: // date_desc
		return "open_trades.created_at DESC"
	}
}

func mapOpenToDTO(m *OpenTrade) *dto.OpenTradeRead {
	return &dto.OpenTradeRead{
		ID:         m.ID,
		Type:       m.Type,
		UserID:     m.UserID,
		CardID:     m.CardID,
		Price:      m.Price,
		WantCardID: m.WantCardID,
		CreatedAt:  m.CreatedAt,
	}
}

func mapCompletedToDTO(m *CompletedTrade) *dto.CompletedTradeRead {
	return &dto.CompletedTradeRead{
		ID:           m.ID,
		Type:         m.Type,
		SellerUserID: m.SellerUserID,
		SellerCardID: m.SellerCardID,
		BuyerUserID:  m.BuyerUserID,
		BuyerCardID:  m.BuyerCardID,
		Price:        m.Price,
		ExecutedDate: m.ExecutedDate,
	}
}
