package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

// AdminUserHandler exposes administrative user management endpoints.
type AdminUserHandler struct {
	service service.AdminUserService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(service service.AdminUserService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches the admin user routes to the router group.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:email", h.get)
	router.Patch("/:email/status", h.updateStatus)
	router.Delete("/:email", h.delete)
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, "invalid page_size")
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	req := dto.AdminUserListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		UserType: c.Query("user_type"),
		Status:   c.Query("status"),
	}

	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list users")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "users listed", result)
}

func (h *AdminUserHandler) get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), c.Params("email"))
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *AdminUserHandler) updateStatus(c *fiber.Ctx) error {
	var payload dto.AdminUserStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, "invalid payload")
	}

	user, err := h.service.UpdateStatus(c.UserContext(), c.Params("email"), payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to update user status")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "user status updated", user)
}

func (h *AdminUserHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("email")); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to delete user")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "user deleted", nil)
}
