package pack

import (
	"github.com/cardex/cardex/pkg/config"
	"github.com/cardex/cardex/pkg/middleware"
	authsvc "github.com/cardex/cardex/pkg/service/auth"
	packsvc "github.com/cardex/cardex/pkg/service/pack"
	"github.com/cardex/cardex/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func PackRoutes(app *fiber.App, packSvc *packsvc.Service, cfg *config.AppConfig) {
	app.Post("/packs/:id/buy", middleware.JwtProtected(cfg.Jwt), BuyPack(packSvc))
	app.Post("/packs/:id/open", middleware.JwtProtected(cfg.Jwt), OpenPack(packSvc))
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, _ := c.Locals("user").(*jwt.Token)
	if token == nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authsvc.GetCurrentUserID(token)
}

// BuyPack buys a pack from a collection for the caller. The path id is the
// collection to buy from.
// @Summary Buy a pack
// @Tags packs
// @Produce json
// @Param id path string true "Collection ID"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /packs/{id}/buy [post]
// @Security Bearer
func BuyPack(packSvc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collectionID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid collection ID", nil,
				"Collection ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := currentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		p, err := packSvc.BuyPack(c.Context(), userID, collectionID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't buy pack", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Pack bought", p)
	}
}

// OpenPack opens one of the caller's packs and returns the minted cards.
// @Summary Open a pack
// @Tags packs
// @Produce json
// @Param id path string true "Pack ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /packs/{id}/open [post]
// @Security Bearer
func OpenPack(packSvc *packsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid pack ID", nil,
				"Pack ID must be a valid UUID", fiber.StatusBadRequest)
		}
		userID, err := currentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		cards, err := packSvc.OpenPack(c.Context(), userID, packID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't open pack", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pack opened", fiber.Map{"cards": cards})
	}
}
