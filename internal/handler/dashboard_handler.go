package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

// DashboardHandler exposes the read-only aggregation endpoints consumed by
// the admin dashboard page.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard routes to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/metrics", h.metrics)
	router.Get("/charts/roles", h.roleDistribution)
	router.Get("/recent-users", h.recentUsers)
}

func (h *DashboardHandler) metrics(c *fiber.Ctx) error {
	metrics, err := h.service.Metrics(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute user metrics")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "user metrics", metrics)
}

func (h *DashboardHandler) roleDistribution(c *fiber.Ctx) error {
	distribution, err := h.service.RoleDistribution(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute role distribution")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "role distribution", distribution)
}

func (h *DashboardHandler) recentUsers(c *fiber.Ctx) error {
	users, err := h.service.RecentUsers(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list recent users")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "recent users", users)
}
