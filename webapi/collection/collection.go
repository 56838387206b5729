package collection

import (
	collectionsvc "github.com/cardex/cardex/pkg/service/collection"
	"github.com/cardex/cardex/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func CollectionRoutes(app *fiber.App, collectionSvc *collectionsvc.Service) {
	app.Get("/collections", ListCollections(collectionSvc))
	app.Get("/collections/:id", GetCollection(collectionSvc))
}

// ListCollections lists the catalog without vehicle details.
// @Summary List collections
// @Tags collections
// @Produce json
// @Success 200 {object} common.Response
// @Router /collections [get]
func ListCollections(collectionSvc *collectionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cols, err := collectionSvc.ListCollections(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list collections", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Collections found", cols)
	}
}

// GetCollection returns one collection with its vehicles.
// @Summary Get collection by ID
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /collections/{id} [get]
func GetCollection(collectionSvc *collectionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid collection ID", nil,
				"Collection ID must be a valid UUID", fiber.StatusBadRequest)
		}
		col, err := collectionSvc.GetCollection(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Collection not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Collection found", col)
	}
}
