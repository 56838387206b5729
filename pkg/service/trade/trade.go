// Package trade provides the marketplace business logic: creating and
// browsing listings, and executing trades through the domain engine under a
// per-listing lock and a single database transaction.
package trade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cardex/cardex/infra/lock"
	domaincard "github.com/cardex/cardex/pkg/domain/card"
	domaintrade "github.com/cardex/cardex/pkg/domain/trade"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/eventbus"
	"github.com/cardex/cardex/pkg/repository"
	cardrepo "github.com/cardex/cardex/pkg/repository/card"
	userrepo "github.com/cardex/cardex/pkg/repository/user"
	"github.com/google/uuid"
)

// ErrExecutionInProgress is returned when another execution already holds
// the listing's lock.
var ErrExecutionInProgress = errors.New("trade execution already in progress")

// Service provides business logic for trade operations.
type Service struct {
	uow    repository.UnitOfWork
	locks  lock.Manager
	bus    eventbus.EventBus
	logger *slog.Logger
}

// New creates a trade Service.
func New(
	uow repository.UnitOfWork,
	locks lock.Manager,
	bus eventbus.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, locks: locks, bus: bus, logger: logger}
}

// CreateTrade lists a card for sale. The card must exist and belong to the
// listing user; the domain constructor enforces the type-specific fields.
func (s *Service) CreateTrade(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	tradeType string,
	price int,
	wantCardID *uuid.UUID,
) (created *dto.OpenTradeRead, err error) {
	t, err := domaintrade.ParseType(tradeType)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cards, err := uow.CardRepository()
		if err != nil {
			return err
		}
		c, err := cards.Get(ctx, cardID)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return domaintrade.ErrNotTradeOwner
		}
		ot, err := domaintrade.NewOpen(t, userID, cardID, price, wantCardID)
		if err != nil {
			return err
		}
		trades, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		if err := trades.CreateOpen(ctx, &dto.OpenTradeCreate{
			ID:         ot.ID,
			Type:       ot.Type.String(),
			UserID:     ot.UserID,
			CardID:     ot.CardID,
			Price:      ot.Price,
			WantCardID: ot.WantCardID,
		}); err != nil {
			return err
		}
		created64, err := trades.GetOpen(ctx, ot.ID)
		if err != nil {
			return err
		}
		created = created64
		return nil
	})
	if err != nil {
		created = nil
	}
	return
}

// GetOpenTrades lists open trades matching the filter.
func (s *Service) GetOpenTrades(
	ctx context.Context,
	filter dto.OpenTradeListFilter,
) (trades []*dto.OpenTradeRead, total int64, err error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		trades, total, err = repo.ListOpen(ctx, filter)
		return err
	})
	return
}

// GetOpenTradeByID retrieves one open listing.
func (s *Service) GetOpenTradeByID(
	ctx context.Context,
	id uuid.UUID,
) (t *dto.OpenTradeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		t, err = repo.GetOpen(ctx, id)
		return err
	})
	if err != nil {
		t = nil
	}
	return
}

// CancelTrade removes an open listing. Only the listing user may cancel.
func (s *Service) CancelTrade(ctx context.Context, id, userID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		t, err := repo.GetOpen(ctx, id)
		if err != nil {
			return err
		}
		if t.UserID != userID {
			return domaintrade.ErrNotTradeOwner
		}
		deleted, err := repo.DeleteOpen(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return domaintrade.ErrTradeNotFound
		}
		return nil
	})
}

// ExecuteResult carries everything produced by a successful execution.
type ExecuteResult struct {
	CompletedTrade *dto.CompletedTradeRead `json:"completed_trade"`
	SellerReward   *dto.RewardRead         `json:"seller_reward,omitempty"`
	BuyerReward    *dto.RewardRead         `json:"buyer_reward,omitempty"`
}

// ExecuteTrade runs the domain engine over freshly loaded state and
// persists every mutation in one transaction. A Redis lock keyed on the
// listing id keeps concurrent attempts on the same listing serialized; the
// open row's deletion inside the transaction is the commit signal, so even
// a lock expiry cannot let two executions both succeed.
func (s *Service) ExecuteTrade(
	ctx context.Context,
	tradeID uuid.UUID,
	buyerID uuid.UUID,
	buyerCardID *uuid.UUID,
) (result *ExecuteResult, err error) {
	log := s.logger.With("trade_id", tradeID, "buyer_id", buyerID)

	key := "trade:exec:" + tradeID.String()
	token, ok, err := s.locks.Acquire(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("acquire execution lock: %w", err)
	}
	if !ok {
		return nil, ErrExecutionInProgress
	}
	defer func() {
		if rerr := s.locks.Release(ctx, key, token); rerr != nil {
			log.Warn("failed to release execution lock", "error", rerr)
		}
	}()

	var completed *domaintrade.CompletedTrade
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		trades, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		cards, err := uow.CardRepository()
		if err != nil {
			return err
		}

		open, err := trades.GetOpen(ctx, tradeID)
		if err != nil {
			return err
		}
		// Seller and buyer are hydrated as separate aggregates; the same
		// user on both sides would split one balance across two copies.
		if open.UserID == buyerID {
			return domaintrade.ErrSelfTrade
		}
		ot, err := hydrateOpenTrade(open)
		if err != nil {
			return err
		}

		seller, err := loadUserWithCards(ctx, users, cards, open.UserID)
		if err != nil {
			return err
		}
		buyer, err := loadUserWithCards(ctx, users, cards, buyerID)
		if err != nil {
			return err
		}

		sellerCard, err := loadCard(ctx, cards, open.CardID)
		if err != nil {
			return err
		}

		var buyerCard *domaincard.Card
		wantID := buyerCardID
		if wantID == nil {
			wantID = ot.WantCardID
		}
		if ot.Type == domaintrade.ForCard && wantID != nil {
			if buyerCard, err = loadCard(ctx, cards, *wantID); err != nil {
				return err
			}
		}

		completed, err = domaintrade.Execute(ot, seller, buyer, sellerCard, buyerCard)
		if err != nil {
			return err
		}

		// Persist the mutated aggregates. All writes share the
		// transaction session, so a failure rolls everything back.
		deleted, err := trades.DeleteOpen(ctx, tradeID)
		if err != nil {
			return err
		}
		if !deleted {
			return domaintrade.ErrTradeNotFound
		}
		if err := trades.CreateCompleted(ctx, &dto.CompletedTradeCreate{
			ID:           completed.ID,
			Type:         completed.Type.String(),
			SellerUserID: completed.SellerUserID,
			SellerCardID: completed.SellerCardID,
			BuyerUserID:  completed.BuyerUserID,
			BuyerCardID:  completed.BuyerCardID,
			Price:        completed.Price,
			ExecutedDate: completed.ExecutedDate,
		}); err != nil {
			return err
		}
		if err := users.Update(ctx, seller.ID, &dto.UserUpdate{Currency: &seller.Currency}); err != nil {
			return err
		}
		if err := users.Update(ctx, buyer.ID, &dto.UserUpdate{Currency: &buyer.Currency}); err != nil {
			return err
		}
		if err := cards.UpdateOwner(ctx, sellerCard.ID, sellerCard.UserID); err != nil {
			return err
		}
		if buyerCard != nil {
			if err := cards.UpdateOwner(ctx, buyerCard.ID, buyerCard.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Info("trade execution rejected", "error", err)
		return nil, err
	}

	log.Info("trade executed",
		"type", completed.Type.String(),
		"seller_id", completed.SellerUserID,
		"price", completed.Price,
	)
	s.bus.Publish(ctx, domaintrade.ExecutedEvent{Completed: completed})

	result = &ExecuteResult{CompletedTrade: mapCompleted(completed)}
	if rewards, err := s.loadTradeRewards(ctx, completed); err == nil {
		result.SellerReward = rewards[completed.SellerUserID]
		result.BuyerReward = rewards[completed.BuyerUserID]
	}
	return result, nil
}

// GetTradeHistory lists completed trades, optionally for one user.
func (s *Service) GetTradeHistory(
	ctx context.Context,
	filter dto.CompletedTradeListFilter,
) (trades []*dto.CompletedTradeRead, total int64, err error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		trades, total, err = repo.ListCompleted(ctx, filter)
		return err
	})
	return
}

// GetCompletedTradeByID retrieves one executed trade record.
func (s *Service) GetCompletedTradeByID(
	ctx context.Context,
	id uuid.UUID,
) (t *dto.CompletedTradeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		t, err = repo.GetCompleted(ctx, id)
		return err
	})
	if err != nil {
		t = nil
	}
	return
}

// CalculateFairness exposes the advisory fairness verdict for two card values.
func (s *Service) CalculateFairness(value1, value2 int, threshold ...float64) string {
	return domaintrade.CalculateFairness(value1, value2, threshold...)
}

func (s *Service) loadTradeRewards(
	ctx context.Context,
	completed *domaintrade.CompletedTrade,
) (map[uuid.UUID]*dto.RewardRead, error) {
	out := make(map[uuid.UUID]*dto.RewardRead, 2)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		rewards, err := uow.RewardRepository()
		if err != nil {
			return err
		}
		for _, userID := range []uuid.UUID{completed.SellerUserID, completed.BuyerUserID} {
			unclaimed := false
			rs, err := rewards.ListByUser(ctx, userID, &unclaimed)
			if err != nil {
				return err
			}
			for _, r := range rs {
				if relatesToTrade(r, completed) {
					out[userID] = r
					break
				}
			}
		}
		return nil
	})
	return out, err
}

// relatesToTrade matches a freshly created trade reward to the completed
// record it came from.
func relatesToTrade(r *dto.RewardRead, completed *domaintrade.CompletedTrade) bool {
	switch r.Type {
	case "CARD_FROM_TRADE":
		if r.ItemID == nil {
			return false
		}
		if r.UserID == completed.BuyerUserID {
			return *r.ItemID == completed.SellerCardID
		}
		return completed.BuyerCardID != nil && *r.ItemID == *completed.BuyerCardID
	case "CURRENCY_FROM_TRADE":
		return r.UserID == completed.SellerUserID && r.Amount == completed.Price
	default:
		return false
	}
}

func hydrateOpenTrade(read *dto.OpenTradeRead) (*domaintrade.OpenTrade, error) {
	t, err := domaintrade.ParseType(read.Type)
	if err != nil {
		return nil, err
	}
	return &domaintrade.OpenTrade{
		ID:         read.ID,
		Type:       t,
		UserID:     read.UserID,
		CardID:     read.CardID,
		Price:      read.Price,
		WantCardID: read.WantCardID,
		CreatedAt:  read.CreatedAt,
	}, nil
}

func loadUserWithCards(
	ctx context.Context,
	users userrepo.Repository,
	cards cardrepo.Repository,
	id uuid.UUID,
) (*domainuser.User, error) {
	read, err := users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u := domainuser.NewFromData(
		read.ID, read.Username, read.HashedPassword,
		read.Currency, read.CreatedAt, read.UpdatedAt,
	)
	owned, err := cards.ListIDsByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	u.OwnedCards = owned
	return u, nil
}

func loadCard(
	ctx context.Context,
	cards cardrepo.Repository,
	id uuid.UUID,
) (*domaincard.Card, error) {
	read, err := cards.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	grade, err := domaincard.ParseGrade(read.Grade)
	if err != nil {
		return nil, err
	}
	return &domaincard.Card{
		ID:           read.ID,
		UserID:       read.UserID,
		VehicleID:    read.VehicleID,
		CollectionID: read.CollectionID,
		Grade:        grade,
		Value:        read.Value,
		CreatedAt:    read.CreatedAt,
	}, nil
}

func mapCompleted(c *domaintrade.CompletedTrade) *dto.CompletedTradeRead {
	return &dto.CompletedTradeRead{
		ID:           c.ID,
		Type:         c.Type.String(),
		SellerUserID: c.SellerUserID,
		SellerCardID: c.SellerCardID,
		BuyerUserID:  c.BuyerUserID,
		BuyerCardID:  c.BuyerCardID,
		Price:        c.Price,
		ExecutedDate: c.ExecutedDate,
	}
}
