// Package reward provides business logic for granting and claiming rewards.
//
// Trade rewards are granted out of band: the service subscribes to trade
// execution events and writes a reward row for each party, so the trade
// transaction itself never depends on reward bookkeeping.
package reward

import (
	"context"
	"log/slog"
	"time"

	domainpack "github.com/cardex/cardex/pkg/domain/pack"
	domainreward "github.com/cardex/cardex/pkg/domain/reward"
	domaintrade "github.com/cardex/cardex/pkg/domain/trade"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/eventbus"
	"github.com/cardex/cardex/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for reward operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a reward Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// RegisterHandlers subscribes the service to the events it reacts to.
func (s *Service) RegisterHandlers(bus eventbus.EventBus) {
	bus.Subscribe(domaintrade.ExecutedEvent{}.EventType(), s.handleTradeExecuted)
}

// ListUserRewards lists a user's rewards, optionally filtered by claim state.
func (s *Service) ListUserRewards(
	ctx context.Context,
	userID uuid.UUID,
	claimed *bool,
) (rewards []*dto.RewardRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RewardRepository()
		if err != nil {
			return err
		}
		rewards, err = repo.ListByUser(ctx, userID, claimed)
		return err
	})
	return
}

// ClaimReward applies a reward's effect to its owner and stamps it claimed.
// The claim stamp, written first, is what loses the double-claim race.
func (s *Service) ClaimReward(
	ctx context.Context,
	userID, rewardID uuid.UUID,
) (claimed *dto.RewardRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		rewards, err := uow.RewardRepository()
		if err != nil {
			return err
		}
		r, err := rewards.Get(ctx, rewardID)
		if err != nil {
			return err
		}
		if r.UserID != userID {
			return domainuser.ErrUserUnauthorized
		}
		if err := rewards.MarkClaimed(ctx, rewardID, time.Now().UTC()); err != nil {
			return err
		}
		if err := s.applyEffect(ctx, uow, r); err != nil {
			return err
		}
		claimed, err = rewards.Get(ctx, rewardID)
		return err
	})
	if err != nil {
		claimed = nil
		return
	}
	s.logger.Info("reward claimed", "reward_id", rewardID, "user_id", userID, "type", claimed.Type)
	return
}

func (s *Service) applyEffect(
	ctx context.Context,
	uow repository.UnitOfWork,
	r *dto.RewardRead,
) error {
	t, err := domainreward.ParseType(r.Type)
	if err != nil {
		return err
	}
	switch t {
	case domainreward.TypeCurrency, domainreward.TypeCurrencyFromTrade:
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		read, err := users.Get(ctx, r.UserID)
		if err != nil {
			return err
		}
		acct := domainuser.NewFromData(
			read.ID, read.Username, read.HashedPassword,
			read.Currency, read.CreatedAt, read.UpdatedAt,
		)
		if err := acct.AddCurrency(r.Amount); err != nil {
			return err
		}
		return users.Update(ctx, r.UserID, &dto.UserUpdate{Currency: &acct.Currency})
	case domainreward.TypePack:
		if r.ItemID == nil {
			return domainpack.ErrPackNotFound
		}
		// The pack row already exists with the reward's owner; claiming
		// just surfaces it, so nothing moves here.
		packs, err := uow.PackRepository()
		if err != nil {
			return err
		}
		_, err = packs.Get(ctx, *r.ItemID)
		return err
	case domainreward.TypeCardFromTrade:
		// Card ownership moved when the trade executed; the reward is
		// the notification, so claiming it is a pure acknowledgement.
		return nil
	}
	return nil
}

// handleTradeExecuted grants both parties their rewards for a completed
// trade. Failures are logged, not propagated; the trade itself already
// committed.
func (s *Service) handleTradeExecuted(ctx context.Context, e eventbus.Event) {
	ev, ok := e.(domaintrade.ExecutedEvent)
	if !ok {
		return
	}
	completed := ev.Completed
	log := s.logger.With("trade_id", completed.ID)

	grants := tradeGrants(completed)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RewardRepository()
		if err != nil {
			return err
		}
		for _, g := range grants {
			r := domainreward.New(g.userID, g.rewardType, g.amount, g.itemID)
			if err := repo.Create(ctx, &dto.RewardCreate{
				ID:     r.ID,
				UserID: r.UserID,
				Type:   r.Type.String(),
				ItemID: r.ItemID,
				Amount: r.Amount,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to grant trade rewards", "error", err)
		return
	}
	log.Info("trade rewards granted", "count", len(grants))
}

type grant struct {
	userID     uuid.UUID
	rewardType domainreward.Type
	amount     int
	itemID     *uuid.UUID
}

// tradeGrants derives each party's reward from the completed record: the
// buyer is notified of the card they received, the seller of the currency
// or card they got in return.
func tradeGrants(completed *domaintrade.CompletedTrade) []grant {
	sellerCardID := completed.SellerCardID
	grants := []grant{{
		userID:     completed.BuyerUserID,
		rewardType: domainreward.TypeCardFromTrade,
		itemID:     &sellerCardID,
	}}
	if completed.BuyerCardID != nil {
		grants = append(grants, grant{
			userID:     completed.SellerUserID,
			rewardType: domainreward.TypeCardFromTrade,
			itemID:     completed.BuyerCardID,
		})
	} else {
		grants = append(grants, grant{
			userID:     completed.SellerUserID,
			rewardType: domainreward.TypeCurrencyFromTrade,
			amount:     completed.Price,
		})
	}
	return grants
}
