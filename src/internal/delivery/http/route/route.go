package route

import (
	"load-tracking-service/src/internal/delivery/http"
	"load-tracking-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type RouteConfig struct {
	App                *fiber.App
	OrderController    *http.OrderController
	QRCodeController   *http.QRCodeController
	LocationController *http.LocationController
	AccountController  *http.AccountController
	AuthMiddleware     fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupAuthRoute()
}

func (c *RouteConfig) SetupAuthRoute() {
	c.App.Use(c.AuthMiddleware)

	c.App.Post("/order_creation", c.OrderController.CreateOrder)
	c.App.Post("/activate-load", c.OrderController.ActivateLoad)

	c.App.Post("/create-qr-signature", c.QRCodeController.CreateSignature)
	c.App.Post("/validate-qr-code", c.QRCodeController.ValidateScan)

	c.App.Post("/update-location", c.LocationController.RecordLocation)
	c.App.Post("/start-tracking", c.LocationController.StartTracking)
	c.App.Post("/stop-tracking", c.LocationController.StopTracking)

	c.App.Post("/create-driver-account", c.AccountController.CreateDriverAccount)
	c.App.Post("/reset-driver-password", c.AccountController.ResetDriverPassword)
}
