package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resource-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Metrics *handlers.MetricsHandler
	Users   *handlers.UsersHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Snapshot)
	}

	app.Post("/users", cfg.Users.CreateUser)
	app.Get("/users", cfg.Users.ListUsers)
	app.Get("/users/:id", cfg.Users.GetUser)
	app.Put("/users/:id", cfg.Users.UpdateUser)
	app.Delete("/users/:id", cfg.Users.DeleteUser)

	app.Post("/tickets", cfg.Tickets.CreateTicket)
	app.Get("/tickets", cfg.Tickets.ListTickets)
	app.Get("/tickets/:id", cfg.Tickets.GetTicket)
	app.Put("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	app.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)
}
