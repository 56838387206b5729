package user

import (
	"github.com/cardex/cardex/pkg/config"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/middleware"
	authsvc "github.com/cardex/cardex/pkg/service/auth"
	cardsvc "github.com/cardex/cardex/pkg/service/card"
	packsvc "github.com/cardex/cardex/pkg/service/pack"
	rewardsvc "github.com/cardex/cardex/pkg/service/reward"
	tradesvc "github.com/cardex/cardex/pkg/service/trade"
	usersvc "github.com/cardex/cardex/pkg/service/user"
	"github.com/cardex/cardex/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func UserRoutes(
	app *fiber.App,
	userSvc *usersvc.Service,
	cardSvc *cardsvc.Service,
	packSvc *packsvc.Service,
	tradeSvc *tradesvc.Service,
	rewardSvc *rewardsvc.Service,
	cfg *config.AppConfig,
) {
	app.Get("/users/:id", GetUser(userSvc))
	app.Patch("/users/:id", middleware.JwtProtected(cfg.Jwt), UpdateUser(userSvc))
	app.Get("/users/:id/cards", GetUserCards(cardSvc))
	app.Get("/users/:id/packs", middleware.JwtProtected(cfg.Jwt), GetUserPacks(packSvc))
	app.Get("/users/:id/trades", GetUserTrades(tradeSvc))
	app.Get("/users/:id/trade-history", GetUserTradeHistory(tradeSvc))
	app.Get("/users/:id/rewards", middleware.JwtProtected(cfg.Jwt), GetUserRewards(rewardSvc))
	app.Post("/users/:id/rewards/:rewardId/claim", middleware.JwtProtected(cfg.Jwt), ClaimReward(rewardSvc))
}

// currentUserID reads the verified token placed by the JWT middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, _ := c.Locals("user").(*jwt.Token)
	if token == nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authsvc.GetCurrentUserID(token)
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		log.Errorf("Invalid %s: %v", param, err)
	}
	return id, err
}

// GetUser returns a user's public profile.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{id} [get]
func GetUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		u, err := userSvc.GetUser(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// UpdateUser updates the caller's own profile.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserInput true "Profile changes"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{id} [patch]
// @Security Bearer
func UpdateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err // error response already written
		}
		id, err := parseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		callerID, err := currentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		if callerID != id {
			return common.ProblemDetailsJSON(c, "Forbidden", nil,
				"Users may only update their own profile", fiber.StatusForbidden)
		}
		u, err := userSvc.UpdateUser(c.Context(), id, &dto.UserUpdate{
			Username: input.Username,
			Password: input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated", u)
	}
}

// GetUserCards lists a user's cards.
// @Summary List a user's cards
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /users/{id}/cards [get]
func GetUserCards(cardSvc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		filter := dto.CardListFilter{
			UserID: &id,
			SortBy: c.Query("sort"),
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		cards, total, err := cardSvc.ListCards(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list cards", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cards found",
			fiber.Map{"cards": cards, "total": total})
	}
}

// GetUserPacks lists a user's unopened packs.
// @Summary List a user's packs
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /users/{id}/packs [get]
// @Security Bearer
func GetUserPacks(packSvc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		var collectionID *uuid.UUID
		if raw := c.Query("collection_id"); raw != "" {
			cid, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid collection ID", nil,
					"Collection ID must be a valid UUID", fiber.StatusBadRequest)
			}
			collectionID = &cid
		}
		packs, err := packSvc.ListUserPacks(c.Context(), id, collectionID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list packs", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Packs found", packs)
	}
}

// GetUserTrades lists a user's open listings.
// @Summary List a user's open trades
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /users/{id}/trades [get]
func GetUserTrades(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		filter := dto.OpenTradeListFilter{
			UserID: &id,
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		trades, total, err := tradeSvc.GetOpenTrades(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list trades", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trades found",
			fiber.Map{"trades": trades, "total": total})
	}
}

// GetUserTradeHistory lists a user's completed trades.
// @Summary List a user's trade history
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Param role query string false "seller, buyer or all"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /users/{id}/trade-history [get]
func GetUserTradeHistory(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		filter := dto.CompletedTradeListFilter{
			UserID: &id,
			Role:   c.Query("role", "all"),
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		trades, total, err := tradeSvc.GetTradeHistory(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list trade history", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade history found",
			fiber.Map{"trades": trades, "total": total})
	}
}

// GetUserRewards lists the caller's rewards.
// @Summary List a user's rewards
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Param claimed query bool false "Filter by claim state"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /users/{id}/rewards [get]
// @Security Bearer
func GetUserRewards(rewardSvc *rewardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", nil,
				"User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		callerID, err := currentUserID(c)
		if err != nil || callerID != id {
			return common.ProblemDetailsJSON(c, "Forbidden", nil,
				"Users may only view their own rewards", fiber.StatusForbidden)
		}
		var claimed *bool
		if raw := c.Query("claimed"); raw != "" {
			v := raw == "true"
			claimed = &v
		}
		rewards, err := rewardSvc.ListUserRewards(c.Context(), id, claimed)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list rewards", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rewards found", rewards)
	}
}

// ClaimReward applies one of the caller's rewards.
// @Summary Claim a reward
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Param rewardId path string true "Reward ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users/{id}/rewards/{rewardId}/claim [post]
// @Security Bearer
func ClaimReward(rewardSvc *rewardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rewardID, err := parseID(c, "rewardId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid reward ID", nil,
				"Reward ID must be a valid UUID", fiber.StatusBadRequest)
		}
		callerID, err := currentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		claimed, err := rewardSvc.ClaimReward(c.Context(), callerID, rewardID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't claim reward", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Reward claimed", claimed)
	}
}
