package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizops-service/internal/api/http/handlers"
	"github.com/spec-kit/bizops-service/internal/auth"
	"github.com/spec-kit/bizops-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Workers        *handlers.WorkersHandler
	Customers      *handlers.CustomersHandler
	Transactions   *handlers.TransactionsHandler
	Shifts         *handlers.ShiftsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/auth/change-password", cfg.Auth.ChangePassword)

	customers := protected.Group("/customers")
	customers.Post("", cfg.Customers.Create)
	customers.Get("", cfg.Customers.List)
	customers.Get("/:id", cfg.Customers.Get)
	customers.Put("/:id", cfg.Customers.Update)
	customers.Delete("/:id", cfg.Customers.Delete)

	transactions := protected.Group("/transactions")
	transactions.Post("", cfg.Transactions.Record)
	transactions.Get("/summary", cfg.Transactions.Summary)
	transactions.Get("", cfg.Transactions.List)
	transactions.Get("/:id", cfg.Transactions.Get)

	shifts := protected.Group("/shifts")
	shifts.Post("", cfg.Shifts.Open)
	shifts.Post("/:id/close", cfg.Shifts.Close)
	shifts.Get("", cfg.Shifts.List)
	shifts.Get("/:id", cfg.Shifts.Get)

	// Worker management is restricted to owners and admin workers.
	workers := protected.Group("/workers", auth.RequireRole(domain.WorkerRoleAdmin))
	workers.Post("", cfg.Workers.Create)
	workers.Get("", cfg.Workers.List)
	workers.Get("/:id", cfg.Workers.Get)
	workers.Put("/:id", cfg.Workers.Update)
	workers.Patch("/:id", cfg.Workers.Patch)
	workers.Delete("/:id", cfg.Workers.Deactivate)
}
