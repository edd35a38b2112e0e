package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/middleware"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// sendServiceError maps the service error taxonomy onto HTTP statuses and
// structured error kinds.
func sendServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyQuestion):
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, err.Error())
	case isValidationError(err):
		return utils.SendErrorKind(c, fiber.StatusBadRequest, utils.KindClientInputInvalid, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendErrorKind(c, fiber.StatusNotFound, utils.KindNotFound, err.Error())
	case errors.Is(err, service.ErrAnalysisTimeout):
		return utils.SendErrorKind(c, fiber.StatusGatewayTimeout, utils.KindAnalysisUnavailable, err.Error())
	case errors.Is(err, service.ErrAnalysisUnavailable):
		return utils.SendErrorKind(c, fiber.StatusBadGateway, utils.KindAnalysisUnavailable, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		return utils.SendErrorKind(c, fiber.StatusServiceUnavailable, utils.KindStoreUnavailable, err.Error())
	default:
		return utils.SendErrorKind(c, fiber.StatusInternalServerError, utils.KindInternal, "internal error")
	}
}
