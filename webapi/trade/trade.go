package trade

import (
	"errors"

	"github.com/cardex/cardex/pkg/config"
	"github.com/cardex/cardex/pkg/dto"
	"github.com/cardex/cardex/pkg/middleware"
	authsvc "github.com/cardex/cardex/pkg/service/auth"
	tradesvc "github.com/cardex/cardex/pkg/service/trade"
	"github.com/cardex/cardex/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TradeRoutes(app *fiber.App, tradeSvc *tradesvc.Service, cfg *config.AppConfig) {
	// history routes register first so "history" never parses as a trade id
	app.Get("/trades/history", GetTradeHistory(tradeSvc))
	app.Get("/trades/history/:id", GetCompletedTrade(tradeSvc))
	app.Get("/trades/fairness", GetFairness(tradeSvc, cfg))
	app.Get("/trades", ListTrades(tradeSvc))
	app.Post("/trades", middleware.JwtProtected(cfg.Jwt), CreateTrade(tradeSvc))
	app.Get("/trades/:id", GetTrade(tradeSvc))
	app.Delete("/trades/:id", middleware.JwtProtected(cfg.Jwt), CancelTrade(tradeSvc))
	app.Post("/trades/:id/execute", middleware.JwtProtected(cfg.Jwt), ExecuteTrade(tradeSvc))
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, _ := c.Locals("user").(*jwt.Token)
	if token == nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authsvc.GetCurrentUserID(token)
}

// ListTrades lists open listings with optional filters.
// @Summary List open trades
// @Description Filter by type, owner, collection, grade, vehicle, wanted card and price range
// @Tags trades
// @Produce json
// @Param type query string false "FOR_PRICE or FOR_CARD"
// @Param user_id query string false "Seller ID"
// @Param collection_id query string false "Collection ID"
// @Param vehicle_id query string false "Vehicle ID"
// @Param want_card_id query string false "Wanted card ID"
// @Param grade query string false "FACTORY, LIMITED_RUN or NISMO"
// @Param min_price query int false "Minimum price"
// @Param max_price query int false "Maximum price"
// @Param sort query string false "price_asc price_desc date_asc date_desc"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /trades [get]
func ListTrades(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := dto.OpenTradeListFilter{
			SortBy: c.Query("sort"),
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		if raw := c.Query("type"); raw != "" {
			filter.Type = &raw
		}
		if raw := c.Query("grade"); raw != "" {
			filter.Grade = &raw
		}
		for param, dst := range map[string]**uuid.UUID{
			"user_id":       &filter.UserID,
			"collection_id": &filter.CollectionID,
			"vehicle_id":    &filter.VehicleID,
			"want_card_id":  &filter.WantCardID,
		} {
			if raw := c.Query(param); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					return common.ProblemDetailsJSON(c, "Invalid filter", nil,
						param+" must be a valid UUID", fiber.StatusBadRequest)
				}
				*dst = &id
			}
		}
		if v := c.QueryInt("min_price", -1); v >= 0 {
			filter.MinPrice = &v
		}
		if v := c.QueryInt("max_price", -1); v >= 0 {
			filter.MaxPrice = &v
		}
		trades, total, err := tradeSvc.GetOpenTrades(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list trades", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trades found",
			fiber.Map{"trades": trades, "total": total})
	}
}

// CreateTrade lists one of the caller's cards.
// @Summary Create a trade listing
// @Tags trades
// @Accept json
// @Produce json
// @Param request body CreateTradeInput true "Listing data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /trades [post]
// @Security Bearer
func CreateTrade(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTradeInput](c)
		if input == nil {
			return err // error response already written
		}
		userID, err := currentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		t, err := tradeSvc.CreateTrade(c.Context(), userID, input.CardID, input.Type, input.Price, input.WantCardID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Trade created", t)
	}
}

// GetTrade returns one open listing.
// @Summary Get open trade by ID
// @Tags trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /trades/{id} [get]
func GetTrade(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid trade ID", nil,
				"Trade ID must be a valid UUID", fiber.StatusBadRequest)
		}
		t, err := tradeSvc.GetOpenTradeByID(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Trade not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade found", t)
	}
}

// CancelTrade withdraws one of the caller's listings.
// @Summary Cancel a trade listing
// @Tags trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /trades/{id} [delete]
// @Security Bearer
func CancelTrade(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid trade ID", nil,
				"Trade ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := currentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		if err := tradeSvc.CancelTrade(c.Context(), id, userID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't cancel trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade cancelled", nil)
	}
}

// ExecuteTrade executes an open listing with the caller as buyer.
// @Summary Execute a trade
// @Description Runs the full validation chain and settles the trade atomically; both parties receive a reward
// @Tags trades
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body ExecuteTradeInput false "Buyer card for card-for-card listings"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /trades/{id}/execute [post]
// @Security Bearer
func ExecuteTrade(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid trade ID", nil,
				"Trade ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := currentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		var input ExecuteTradeInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid request body", nil,
					err.Error(), fiber.StatusBadRequest)
			}
		}
		result, err := tradeSvc.ExecuteTrade(c.Context(), id, userID, input.BuyerCardID)
		if err != nil {
			if errors.Is(err, tradesvc.ErrExecutionInProgress) {
				return common.ProblemDetailsJSON(c, "Trade execution already in progress", nil,
					fiber.StatusConflict)
			}
			return common.ProblemDetailsJSON(c, "Couldn't execute trade", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade executed", result)
	}
}

// GetTradeHistory lists completed trades.
// @Summary List trade history
// @Tags trades
// @Produce json
// @Param user_id query string false "Participant ID"
// @Param role query string false "seller, buyer or all"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /trades/history [get]
func GetTradeHistory(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := dto.CompletedTradeListFilter{
			Role:   c.Query("role", "all"),
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		if raw := c.Query("user_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid filter", nil,
					"user_id must be a valid UUID", fiber.StatusBadRequest)
			}
			filter.UserID = &id
		}
		trades, total, err := tradeSvc.GetTradeHistory(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list trade history", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade history found",
			fiber.Map{"trades": trades, "total": total})
	}
}

// GetCompletedTrade returns one executed trade record.
// @Summary Get completed trade by ID
// @Tags trades
// @Produce json
// @Param id path string true "Completed trade ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /trades/history/{id} [get]
func GetCompletedTrade(tradeSvc *tradesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid trade ID", nil,
				"Trade ID must be a valid UUID", fiber.StatusBadRequest)
		}
		t, err := tradeSvc.GetCompletedTradeByID(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Completed trade not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Completed trade found", t)
	}
}

// GetFairness reports the advisory fairness verdict for two card values.
// @Summary Check trade fairness
// @Description Advisory only; never blocks execution
// @Tags trades
// @Produce json
// @Param value1 query int true "First card value"
// @Param value2 query int true "Second card value"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /trades/fairness [get]
func GetFairness(tradeSvc *tradesvc.Service, cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v1 := c.QueryInt("value1", -1)
		v2 := c.QueryInt("value2", -1)
		if v1 < 0 || v2 < 0 {
			return common.ProblemDetailsJSON(c, "Invalid values", nil,
				"value1 and value2 must be non-negative integers", fiber.StatusBadRequest)
		}
		verdict := tradeSvc.CalculateFairness(v1, v2, cfg.Game.FairnessThreshold)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Fairness calculated",
			fiber.Map{"fairness": verdict})
	}
}
