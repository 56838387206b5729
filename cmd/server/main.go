package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/cardex/cardex/infra"
	"github.com/cardex/cardex/infra/lock"
	infrarepo "github.com/cardex/cardex/infra/repository"
	"github.com/cardex/cardex/pkg/app"
	"github.com/cardex/cardex/pkg/config"
	"github.com/cardex/cardex/pkg/eventbus"
	"github.com/cardex/cardex/webapi"
)

// @title CarDex API
// @version 1.0.0
// @description Vehicle trading card marketplace API
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infrarepo.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient := infra.NewRedisClient(cfg.Redis)
	locks := lock.NewRedisLock(
		redisClient,
		cfg.Redis.LockTTL,
		cfg.Redis.LockRetries,
		cfg.Redis.LockBackoff,
	)
	bus := eventbus.NewMemoryEventBus(logger)

	a := app.New(cfg, infrarepo.NewUoW(db), locks, bus, logger)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return fiberApp.Listen(addr)
}
