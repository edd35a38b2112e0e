package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fmzb/hub-api/internal/config"
	"github.com/fmzb/hub-api/internal/handler"
	"github.com/fmzb/hub-api/internal/middleware"
	"github.com/fmzb/hub-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DashboardHandler    *handler.DashboardHandler
	AnalysisHandler     *handler.AnalysisHandler
	ActivityFeedHandler *handler.ActivityFeedHandler
	AdminUserHandler    *handler.AdminUserHandler
	SeedHandler         *handler.SeedHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard")
		deps.DashboardHandler.Register(dashboard)

		if deps.AnalysisHandler != nil {
			dashboard.Use("/chat-analyze", middleware.RateLimit("chat-analyze", cfg.AnalysisRateMax, cfg.AnalysisRateWin))
			deps.AnalysisHandler.Register(dashboard)
		}
	}

	if deps.ActivityFeedHandler != nil {
		deps.ActivityFeedHandler.Register(api.Group("/activities"))
	}

	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(api.Group("/admin/users"))
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}
}
