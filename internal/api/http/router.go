package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/finance-tracker/internal/api/http/handlers"
	"github.com/spec-kit/finance-tracker/internal/auth"
	"github.com/spec-kit/finance-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	Transactions   *handlers.TransactionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The authentication gate runs on every
// request and never rejects; the per-route guards enforce requirements.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	users := api.Group("/users")
	users.Post("", cfg.Users.Register)
	// Registered before /:id so the literal path wins.
	users.Get("/statistics", auth.RequireRole(domain.RoleAdmin), cfg.Users.Statistics)
	users.Get("", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:id", auth.RequireAuthenticated(), cfg.Users.Get)
	users.Put("/:id", auth.RequireAuthenticated(), cfg.Users.Update)
	users.Put("/:id/password", auth.RequireAuthenticated(), cfg.Users.UpdatePassword)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Deactivate)
	users.Put("/:id/plan", auth.RequireRole(domain.RoleAdmin), cfg.Users.UpdatePlan)
	users.Put("/:id/role", auth.RequireRole(domain.RoleAdmin), cfg.Users.UpdateRole)

	categories := api.Group("/categories", auth.RequireAuthenticated())
	categories.Post("", cfg.Categories.Create)
	categories.Get("", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Put("/:id", cfg.Categories.Update)
	categories.Delete("/:id", cfg.Categories.Deactivate)

	transactions := api.Group("/transactions", auth.RequireAuthenticated())
	transactions.Post("", cfg.Transactions.Create)
	transactions.Get("/user/:userId/history", cfg.Transactions.History)
	transactions.Get("/user/:userId/range", cfg.Transactions.ListByUserAndRange)
	transactions.Get("/user/:userId", cfg.Transactions.ListByUser)
	transactions.Get("/:id", cfg.Transactions.Get)
	transactions.Put("/:id", cfg.Transactions.Update)
	transactions.Delete("/:id", cfg.Transactions.Deactivate)
}
