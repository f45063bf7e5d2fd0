package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/redemption-service/internal/api/http/handlers"
	"github.com/spec-kit/redemption-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Redemptions    *handlers.RedemptionHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/staff/:staffPassId", cfg.Staff.Lookup)
	api.Get("/teams/:teamName", cfg.Staff.GetTeam)
	api.Get("/redemptions/eligibility/:teamName", cfg.Redemptions.CheckEligibility)
	api.Post("/redemptions", cfg.Redemptions.Redeem)

	app.Post("/auth/admin/login", cfg.Admin.Login)

	adminGroup := api.Group("/admin", cfg.AuthMiddleware.RequireAdmin)
	adminGroup.Get("/redemptions", cfg.Admin.ListRedemptions)
}
