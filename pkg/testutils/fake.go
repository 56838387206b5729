// Package testutils provides an in-memory unit of work for service tests.
// It keeps every table as a map, so tests can seed and inspect state
// directly without a database.
package testutils

import (
	"context"
	"sort"
	"time"

	domaincard "github.com/cardex/cardex/pkg/domain/card"
	"github.com/cardex/cardex/pkg/domain/catalog"
	domainpack "github.com/cardex/cardex/pkg/domain/pack"
	domainreward "github.com/cardex/cardex/pkg/domain/reward"
	domaintrade "github.com/cardex/cardex/pkg/domain/trade"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/repository"
	cardrepo "github.com/cardex/cardex/pkg/repository/card"
	collectionrepo "github.com/cardex/cardex/pkg/repository/collection"
	packrepo "github.com/cardex/cardex/pkg/repository/pack"
	rewardrepo "github.com/cardex/cardex/pkg/repository/reward"
	traderepo "github.com/cardex/cardex/pkg/repository/trade"
	userrepo "github.com/cardex/cardex/pkg/repository/user"
	"github.com/google/uuid"
)

// FakeUoW implements repository.UnitOfWork over in-memory maps. Do runs the
// function directly; there is no rollback, which is fine for tests that
// assert on the happy path or fail before any write.
type FakeUoW struct {
	Users           map[uuid.UUID]*dto.UserRead
	Cards           map[uuid.UUID]*dto.CardRead
	OpenTrades      map[uuid.UUID]*dto.OpenTradeRead
	CompletedTrades map[uuid.UUID]*dto.CompletedTradeRead
	Packs           map[uuid.UUID]*dto.PackRead
	Rewards         map[uuid.UUID]*dto.RewardRead
	Collections     map[uuid.UUID]*dto.CollectionRead
}

// NewFakeUoW creates an empty fake.
func NewFakeUoW() *FakeUoW {
	return &FakeUoW{
		Users:           make(map[uuid.UUID]*dto.UserRead),
		Cards:           make(map[uuid.UUID]*dto.CardRead),
		OpenTrades:      make(map[uuid.UUID]*dto.OpenTradeRead),
		CompletedTrades: make(map[uuid.UUID]*dto.CompletedTradeRead),
		Packs:           make(map[uuid.UUID]*dto.PackRead),
		Rewards:         make(map[uuid.UUID]*dto.RewardRead),
		Collections:     make(map[uuid.UUID]*dto.CollectionRead),
	}
}

func (f *FakeUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(f)
}

func (f *FakeUoW) UserRepository() (userrepo.Repository, error) {
	return &fakeUserRepo{f}, nil
}

func (f *FakeUoW) CardRepository() (cardrepo.Repository, error) {
	return &fakeCardRepo{f}, nil
}

func (f *FakeUoW) TradeRepository() (traderepo.Repository, error) {
	return &fakeTradeRepo{f}, nil
}

func (f *FakeUoW) PackRepository() (packrepo.Repository, error) {
	return &fakePackRepo{f}, nil
}

func (f *FakeUoW) RewardRepository() (rewardrepo.Repository, error) {
	return &fakeRewardRepo{f}, nil
}

func (f *FakeUoW) CollectionRepository() (collectionrepo.Repository, error) {
	return &fakeCollectionRepo{f}, nil
}

// SeedUser inserts a user with the given balance and returns its id.
func (f *FakeUoW) SeedUser(username string, currency int) uuid.UUID {
	id := uuid.New()
	now := time.Now().UTC()
	f.Users[id] = &dto.UserRead{
		ID:             id,
		Username:       username,
		HashedPassword: "hashed",
		Currency:       currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return id
}

// SeedCard inserts a card owned by the given user and returns its id.
func (f *FakeUoW) SeedCard(owner uuid.UUID, grade string, value int) uuid.UUID {
	id := uuid.New()
	f.Cards[id] = &dto.CardRead{
		ID:           id,
		UserID:       owner,
		VehicleID:    uuid.New(),
		CollectionID: uuid.New(),
		Name:         "2023 Nissan Z",
		Grade:        grade,
		Value:        value,
		CreatedAt:    time.Now().UTC(),
	}
	return id
}

// SeedOpenTrade inserts an open listing and returns its id.
func (f *FakeUoW) SeedOpenTrade(tradeType string, seller, cardID uuid.UUID, price int, wantCardID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.OpenTrades[id] = &dto.OpenTradeRead{
		ID:         id,
		Type:       tradeType,
		UserID:     seller,
		CardID:     cardID,
		Price:      price,
		WantCardID: wantCardID,
		CreatedAt:  time.Now().UTC(),
	}
	return id
}

type fakeUserRepo struct{ f *FakeUoW }

func (r *fakeUserRepo) Create(ctx context.Context, create *dto.UserCreate) error {
	now := time.Now().UTC()
	r.f.Users[create.ID] = &dto.UserRead{
		ID:             create.ID,
		Username:       create.Username,
		HashedPassword: create.Password,
		Currency:       create.Currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	u, ok := r.f.Users[id]
	if !ok {
		return domainuser.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Password != nil {
		u.HashedPassword = *update.Password
	}
	if update.Currency != nil {
		u.Currency = *update.Currency
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	u, ok := r.f.Users[id]
	if !ok {
		return nil, domainuser.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	for _, u := range r.f.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainuser.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.f.Users[id]; !ok {
		return domainuser.ErrUserNotFound
	}
	delete(r.f.Users, id)
	return nil
}

type fakeCardRepo struct{ f *FakeUoW }

func (r *fakeCardRepo) Create(ctx context.Context, create *dto.CardCreate) error {
	r.f.Cards[create.ID] = &dto.CardRead{
		ID:           create.ID,
		UserID:       create.UserID,
		VehicleID:    create.VehicleID,
		CollectionID: create.CollectionID,
		Grade:        create.Grade,
		Value:        create.Value,
		CreatedAt:    time.Now().UTC(),
	}
	return nil
}

func (r *fakeCardRepo) Get(ctx context.Context, id uuid.UUID) (*dto.CardRead, error) {
	c, ok := r.f.Cards[id]
	if !ok {
		return nil, domaincard.ErrCardNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCardRepo) List(ctx context.Context, filter dto.CardListFilter) ([]*dto.CardRead, int64, error) {
	var out []*dto.CardRead
	for _, c := range r.f.Cards {
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		if filter.CollectionID != nil && c.CollectionID != *filter.CollectionID {
			continue
		}
		if filter.Grade != nil && c.Grade != *filter.Grade {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeCardRepo) ListIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, c := range r.f.Cards {
		if c.UserID == userID {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *fakeCardRepo) UpdateOwner(ctx context.Context, id, newOwner uuid.UUID) error {
	c, ok := r.f.Cards[id]
	if !ok {
		return domaincard.ErrCardNotFound
	}
	c.UserID = newOwner
	return nil
}

func (r *fakeCardRepo) UpdateValue(ctx context.Context, id uuid.UUID, value int) error {
	c, ok := r.f.Cards[id]
	if !ok {
		return domaincard.ErrCardNotFound
	}
	c.Value = value
	return nil
}

func (r *fakeCardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.f.Cards, id)
	return nil
}

type fakeTradeRepo struct{ f *FakeUoW }

func (r *fakeTradeRepo) CreateOpen(ctx context.Context, create *dto.OpenTradeCreate) error {
	r.f.OpenTrades[create.ID] = &dto.OpenTradeRead{
		ID:         create.ID,
		Type:       create.Type,
		UserID:     create.UserID,
		CardID:     create.CardID,
		Price:      create.Price,
		WantCardID: create.WantCardID,
		CreatedAt:  time.Now().UTC(),
	}
	return nil
}

func (r *fakeTradeRepo) GetOpen(ctx context.Context, id uuid.UUID) (*dto.OpenTradeRead, error) {
	t, ok := r.f.OpenTrades[id]
	if !ok {
		return nil, domaintrade.ErrTradeNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTradeRepo) ListOpen(ctx context.Context, filter dto.OpenTradeListFilter) ([]*dto.OpenTradeRead, int64, error) {
	var out []*dto.OpenTradeRead
	for _, t := range r.f.OpenTrades {
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeTradeRepo) DeleteOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.f.OpenTrades[id]; !ok {
		return false, nil
	}
	delete(r.f.OpenTrades, id)
	return true, nil
}

func (r *fakeTradeRepo) CreateCompleted(ctx context.Context, create *dto.CompletedTradeCreate) error {
	r.f.CompletedTrades[create.ID] = &dto.CompletedTradeRead{
		ID:           create.ID,
		Type:         create.Type,
		SellerUserID: create.SellerUserID,
		SellerCardID: create.SellerCardID,
		BuyerUserID:  create.BuyerUserID,
		BuyerCardID:  create.BuyerCardID,
		Price:        create.Price,
		ExecutedDate: create.ExecutedDate,
	}
	return nil
}

func (r *fakeTradeRepo) GetCompleted(ctx context.Context, id uuid.UUID) (*dto.CompletedTradeRead, error) {
	t, ok := r.f.CompletedTrades[id]
	if !ok {
		return nil, domaintrade.ErrCompletedTradeNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTradeRepo) ListCompleted(ctx context.Context, filter dto.CompletedTradeListFilter) ([]*dto.CompletedTradeRead, int64, error) {
	var out []*dto.CompletedTradeRead
	for _, t := range r.f.CompletedTrades {
		if filter.UserID != nil {
			switch filter.Role {
			case "seller":
				if t.SellerUserID != *filter.UserID {
					continue
				}
			case "buyer":
				if t.BuyerUserID != *filter.UserID {
					continue
				}
			default:
				if t.SellerUserID != *filter.UserID && t.BuyerUserID != *filter.UserID {
					continue
				}
			}
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExecutedDate.After(out[j].ExecutedDate) })
	return out, int64(len(out)), nil
}

type fakePackRepo struct{ f *FakeUoW }

func (r *fakePackRepo) Create(ctx context.Context, create *dto.PackCreate) error {
	r.f.Packs[create.ID] = &dto.PackRead{
		ID:           create.ID,
		UserID:       create.UserID,
		CollectionID: create.CollectionID,
		Value:        create.Value,
		CreatedAt:    time.Now().UTC(),
	}
	return nil
}

func (r *fakePackRepo) Get(ctx context.Context, id uuid.UUID) (*dto.PackRead, error) {
	p, ok := r.f.Packs[id]
	if !ok {
		return nil, domainpack.ErrPackNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePackRepo) ListByOwner(ctx context.Context, userID uuid.UUID, collectionID *uuid.UUID) ([]*dto.PackRead, error) {
	var out []*dto.PackRead
	for _, p := range r.f.Packs {
		if p.UserID != userID {
			continue
		}
		if collectionID != nil && p.CollectionID != *collectionID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.f.Packs[id]; !ok {
		return domainpack.ErrPackNotFound
	}
	delete(r.f.Packs, id)
	return nil
}

type fakeRewardRepo struct{ f *FakeUoW }

func (r *fakeRewardRepo) Create(ctx context.Context, create *dto.RewardCreate) error {
	r.f.Rewards[create.ID] = &dto.RewardRead{
		ID:        create.ID,
		UserID:    create.UserID,
		Type:      create.Type,
		ItemID:    create.ItemID,
		Amount:    create.Amount,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *fakeRewardRepo) Get(ctx context.Context, id uuid.UUID) (*dto.RewardRead, error) {
	rw, ok := r.f.Rewards[id]
	if !ok {
		return nil, domainreward.ErrRewardNotFound
	}
	cp := *rw
	return &cp, nil
}

func (r *fakeRewardRepo) ListByUser(ctx context.Context, userID uuid.UUID, claimed *bool) ([]*dto.RewardRead, error) {
	var out []*dto.RewardRead
	for _, rw := range r.f.Rewards {
		if rw.UserID != userID {
			continue
		}
		if claimed != nil && (rw.ClaimedAt != nil) != *claimed {
			continue
		}
		cp := *rw
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRewardRepo) MarkClaimed(ctx context.Context, id uuid.UUID, at time.Time) error {
	rw, ok := r.f.Rewards[id]
	if !ok {
		return domainreward.ErrRewardNotFound
	}
	if rw.ClaimedAt != nil {
		return domainreward.ErrAlreadyClaimed
	}
	rw.ClaimedAt = &at
	return nil
}

type fakeCollectionRepo struct{ f *FakeUoW }

func (r *fakeCollectionRepo) Get(ctx context.Context, id uuid.UUID) (*dto.CollectionRead, error) {
	c, ok := r.f.Collections[id]
	if !ok {
		return nil, catalog.ErrCollectionNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCollectionRepo) List(ctx context.Context) ([]*dto.CollectionRead, error) {
	var out []*dto.CollectionRead
	for _, c := range r.f.Collections {
		cp := *c
		cp.Vehicles = nil
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCollectionRepo) GetVehicle(ctx context.Context, id uuid.UUID) (*dto.VehicleRead, error) {
	for _, c := range r.f.Collections {
		for _, v := range c.Vehicles {
			if v.ID == id {
				cp := v
				return &cp, nil
			}
		}
	}
	return nil, catalog.ErrVehicleNotFound
}

func (r *fakeCollectionRepo) ListVehicles(ctx context.Context, collectionID uuid.UUID) ([]*dto.VehicleRead, error) {
	c, ok := r.f.Collections[collectionID]
	if !ok {
		return nil, catalog.ErrCollectionNotFound
	}
	out := make([]*dto.VehicleRead, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		cp := v
		out = append(out, &cp)
	}
	return out, nil
}
