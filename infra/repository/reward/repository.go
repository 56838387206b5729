// Package reward implements the reward repository on GORM.
package reward

import (
	"context"
	"errors"
	"time"

	domainreward "github.com/cardex/cardex/pkg/domain/reward"
	"github.com/cardex/cardex/pkg/dto"
	rewardrepo "github.com/cardex/cardex/pkg/repository/reward"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed reward repository.
func New(db *gorm.DB) rewardrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.RewardCreate) error {
	model := Reward{
		ID:     create.ID,
		UserID: create.UserID,
		Type:   create.Type,
		ItemID: create.ItemID,
		Amount: create.Amount,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.RewardRead, error) {
	var model Reward
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainreward.ErrRewardNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, claimed *bool) ([]*dto.RewardRead, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if claimed != nil {
		if *claimed {
			query = query.Where("claimed_at IS NOT NULL")
		} else {
			query = query.Where("claimed_at IS NULL")
		}
	}
	var models []Reward
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.RewardRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

// MarkClaimed stamps the reward claimed. The IS NULL guard makes a double
// claim lose the race at the database, not just in the domain check.
func (r *repository) MarkClaimed(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&Reward{}).
		Where("id = ? AND claimed_at IS NULL", id).
		Update("claimed_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainreward.ErrAlreadyClaimed
	}
	return nil
}

func mapModelToDTO(m *Reward) *dto.RewardRead {
	return &dto.RewardRead{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		ItemID:    m.ItemID,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
		ClaimedAt: m.ClaimedAt,
	}
}
