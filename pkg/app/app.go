// Package app builds the service graph from its infrastructure dependencies.
package app

import (
	"log/slog"

	"github.com/cardex/cardex/infra/lock"
	"github.com/cardex/cardex/pkg/config"
	"github.com/cardex/cardex/pkg/eventbus"
	"github.com/cardex/cardex/pkg/repository"
	authsvc "github.com/cardex/cardex/pkg/service/auth"
	cardsvc "github.com/cardex/cardex/pkg/service/card"
	collectionsvc "github.com/cardex/cardex/pkg/service/collection"
	packsvc "github.com/cardex/cardex/pkg/service/pack"
	rewardsvc "github.com/cardex/cardex/pkg/service/reward"
	tradesvc "github.com/cardex/cardex/pkg/service/trade"
	usersvc "github.com/cardex/cardex/pkg/service/user"
)

// App holds the wired services behind the web API.
type App struct {
	Cfg    *config.AppConfig
	Logger *slog.Logger

	AuthSvc       *authsvc.Service
	UserSvc       *usersvc.Service
	CardSvc       *cardsvc.Service
	CollectionSvc *collectionsvc.Service
	PackSvc       *packsvc.Service
	TradeSvc      *tradesvc.Service
	RewardSvc     *rewardsvc.Service
}

// New wires every service and subscribes the reward handler to the bus.
func New(
	cfg *config.AppConfig,
	uow repository.UnitOfWork,
	locks lock.Manager,
	bus eventbus.EventBus,
	logger *slog.Logger,
) *App {
	rewardSvc := rewardsvc.New(uow, logger)
	rewardSvc.RegisterHandlers(bus)

	return &App{
		Cfg:           cfg,
		Logger:        logger,
		AuthSvc:       authsvc.New(uow, &cfg.Jwt, cfg.Game.StartingCurrency, logger),
		UserSvc:       usersvc.New(uow, logger),
		CardSvc:       cardsvc.New(uow, logger),
		CollectionSvc: collectionsvc.New(uow, logger),
		PackSvc:       packsvc.New(uow, logger),
		TradeSvc:      tradesvc.New(uow, locks, bus, logger),
		RewardSvc:     rewardSvc,
	}
}
