package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

// ActivityFeedHandler exposes the recent-activity listing.
type ActivityFeedHandler struct {
	service service.ActivityFeedService
	logger  zerolog.Logger
}

// NewActivityFeedHandler constructs the handler.
func NewActivityFeedHandler(service service.ActivityFeedService, logger zerolog.Logger) *ActivityFeedHandler {
	return &ActivityFeedHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_feed_handler").Logger(),
	}
}

// Register attaches the feed route to the router group.
func (h *ActivityFeedHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityFeedHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, "invalid page_size")
	}

	req := dto.ActivityFeedRequest{
		Page:         page,
		PageSize:     pageSize,
		Email:        c.Query("email"),
		ActivityType: c.Query("activity_type"),
	}

	response, err := h.service.List(c.UserContext(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity feed")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "activity feed", response)
}
