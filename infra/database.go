// Package infra wires external resources: the Postgres connection and the
// Redis client used for execution locks.
package infra

import (
	"errors"
	"time"

	"github.com/cardex/cardex/pkg/config"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the Postgres connection described by the config.
func NewDBConnection(cnf config.DB, appEnv string) (*gorm.DB, error) {
	databaseUrl := cnf.Url
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(postgres.Open(databaseUrl), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// NewRedisClient creates the Redis client used by the execution lock.
func NewRedisClient(cnf config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cnf.Addr,
		Password: cnf.Password,
	})
}
