// Package auth provides registration, login and JWT issuance.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/cardex/cardex/pkg/config"
	"github.com/cardex/cardex/pkg/domain"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/repository"
	"github.com/cardex/cardex/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service provides business logic for authentication.
type Service struct {
	uow              repository.UnitOfWork
	cfg              *config.Jwt
	startingCurrency int
	logger           *slog.Logger
}

// New creates an auth Service. startingCurrency is credited to every new
// account.
func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	startingCurrency int,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:              uow,
		cfg:              cfg,
		startingCurrency: startingCurrency,
		logger:           logger,
	}
}

// Register creates a new account with the configured starting balance.
func (s *Service) Register(
	ctx context.Context,
	username, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Register", "username", username)
	acct, err := domainuser.New(username, password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyExists
		}
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:       acct.ID,
			Username: acct.Username,
			Password: acct.Password,
			Currency: s.startingCurrency,
		}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, acct.ID)
		return err
	})
	if err != nil {
		u = nil
		return
	}
	log.Info("user registered", "user_id", u.ID)
	return
}

// Login verifies credentials and returns the account. The dummy hash check
// on the not-found path keeps response timing uniform.
func (s *Service) Login(
	ctx context.Context,
	username, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login", "username", username)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		const dummyHash = "$2a$14$WEfYCZ8MbW1sT4BDMhLtUebyhb0JsDHiRnlZZWuzzRlbzYkWURB0u"
		u, err = repo.GetByUsername(ctx, username)
		if err != nil {
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Info("login failed", "error", err)
			return domainuser.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			log.Info("login failed", "error", domainuser.ErrUserUnauthorized)
			return domainuser.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
		return
	}
	log.Info("login successful", "user_id", u.ID)
	return
}

// GenerateToken signs a JWT for the account.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = u.Username
	claims["user_id"] = u.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "user_id", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// GetCurrentUserID extracts the account id from a verified token.
func GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domainuser.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domainuser.ErrUserUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainuser.ErrUserUnauthorized
	}
	return id, nil
}
