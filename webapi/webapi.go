// Package webapi assembles the Fiber application from the handler packages.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cardex/cardex/pkg/app"
	"github.com/cardex/cardex/webapi/auth"
	"github.com/cardex/cardex/webapi/card"
	"github.com/cardex/cardex/webapi/collection"
	"github.com/cardex/cardex/webapi/common"
	"github.com/cardex/cardex/webapi/pack"
	"github.com/cardex/cardex/webapi/trade"
	"github.com/cardex/cardex/webapi/user"
)

// SetupApp builds the Fiber app with middleware and every route registered.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "cardex",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", nil, err.Error(), status)
		},
	})

	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Cfg.RateLimit.MaxRequests,
		Expiration: a.Cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	auth.AuthRoutes(fiberApp, a.AuthSvc)
	user.UserRoutes(fiberApp, a.UserSvc, a.CardSvc, a.PackSvc, a.TradeSvc, a.RewardSvc, a.Cfg)
	card.CardRoutes(fiberApp, a.CardSvc)
	collection.CollectionRoutes(fiberApp, a.CollectionSvc)
	pack.PackRoutes(fiberApp, a.PackSvc, a.Cfg)
	trade.TradeRoutes(fiberApp, a.TradeSvc, a.Cfg)

	return fiberApp
}
