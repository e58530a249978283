package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/realtime"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Hub            *realtime.Hub
	SendBuffer     int
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Helpdesk API is running...")
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	api.Get("/realtime", realtime.UpgradeRequired(), realtime.Handler(cfg.Hub, cfg.SendBuffer))

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", auth.RequireAdmin(), cfg.Tickets.ListAll)
	tickets.Get("/my-tickets", cfg.Tickets.ListMine)
	tickets.Delete("/my-tickets/:id", cfg.Tickets.DeleteMine)
	tickets.Patch("/:id/status", auth.RequireAdmin(), cfg.Tickets.UpdateStatus)
	tickets.Get("/:id", cfg.Tickets.Get)
}
