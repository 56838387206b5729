package card

import (
	"github.com/cardex/cardex/pkg/dto"
	cardsvc "github.com/cardex/cardex/pkg/service/card"
	"github.com/cardex/cardex/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func CardRoutes(app *fiber.App, cardSvc *cardsvc.Service) {
	app.Get("/cards", ListCards(cardSvc))
	app.Get("/cards/:id", GetCard(cardSvc))
}

// ListCards lists cards with optional filters.
// @Summary List cards
// @Description Filter by owner, collection, vehicle, grade and value range; sort and paginate
// @Tags cards
// @Produce json
// @Param user_id query string false "Owner ID"
// @Param collection_id query string false "Collection ID"
// @Param vehicle_id query string false "Vehicle ID"
// @Param grade query string false "FACTORY, LIMITED_RUN or NISMO"
// @Param min_value query int false "Minimum value"
// @Param max_value query int false "Maximum value"
// @Param sort query string false "value_asc value_desc grade_asc grade_desc date_asc date_desc"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /cards [get]
func ListCards(cardSvc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := dto.CardListFilter{
			SortBy: c.Query("sort"),
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		for param, dst := range map[string]**uuid.UUID{
			"user_id":       &filter.UserID,
			"collection_id": &filter.CollectionID,
			"vehicle_id":    &filter.VehicleID,
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
		if raw := c.Query("grade"); raw != "" {
			filter.Grade = &raw
		}
		if v := c.QueryInt("min_value", -1); v >= 0 {
			filter.MinValue = &v
		}
		if v := c.QueryInt("max_value", -1); v >= 0 {
			filter.MaxValue = &v
		}
		cards, total, err := cardSvc.ListCards(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list cards", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cards found",
			fiber.Map{"cards": cards, "total": total})
	}
}

// GetCard returns one card with its vehicle name.
// @Summary Get card by ID
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /cards/{id} [get]
func GetCard(cardSvc *cardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid card ID", nil,
				"Card ID must be a valid UUID", fiber.StatusBadRequest)
		}
		card, err := cardSvc.GetCard(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Card not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Card found", card)
	}
}
