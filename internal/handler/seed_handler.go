package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/models"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

// SeedHandler exposes tooling endpoints for seeding data.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/users", h.users)
}

type seedUsersRequest struct {
	Items []models.UserProfile `json:"items"`
}

func (h *SeedHandler) users(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	var payload seedUsersRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, "invalid payload")
	}

	affected, err := h.service.SeedUsers(c.UserContext(), token, payload.Items)
	if err != nil {
		return h.seedError(c, err)
	}

	return utils.SendSuccess(c, "users seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) seedError(c *fiber.Ctx, err error) error {
	switch err {
	case service.ErrSeedDisabled:
		return utils.SendErrorKind(c, fiber.StatusForbidden, utils.KindForbidden, "seeding disabled")
	case service.ErrSeedUnauthorized:
		return utils.SendErrorKind(c, fiber.StatusForbidden, utils.KindForbidden, "invalid token")
	default:
		h.logger.Error().Err(err).Msg("seed operation failed")
		return sendServiceError(c, err)
	}
}
