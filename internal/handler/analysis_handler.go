package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

// AnalysisHandler exposes the chat-analyze endpoint.
type AnalysisHandler struct {
	service service.AnalysisService
	logger  zerolog.Logger
}

// NewAnalysisHandler constructs the handler.
func NewAnalysisHandler(service service.AnalysisService, logger zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  logger.With().Str("component", "analysis_handler").Logger(),
	}
}

// Register attaches analysis routes to the router group.
func (h *AnalysisHandler) Register(router fiber.Router) {
	router.Post("/chat-analyze", h.analyze)
}

func (h *AnalysisHandler) analyze(c *fiber.Ctx) error {
	var payload dto.AnalysisRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, "invalid payload")
	}

	response, err := h.service.Analyze(c.UserContext(), payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("chat analysis failed")
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "analysis complete", response)
}
