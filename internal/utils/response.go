package utils

import "github.com/gofiber/fiber/v2"

// Error kinds surfaced to API clients.
const (
	KindStoreUnavailable    = "store_unavailable"
	KindClientInputInvalid  = "client_input_invalid"
	KindAnalysisUnavailable = "analysis_unavailable"
	KindNotFound            = "not_found"
	KindForbidden           = "forbidden"
	KindInternal            = "internal"
)

// APIResponse describes the common structure for API responses. Kind is set
// only on failures and identifies the error class independent of the message.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error JSON response with the given status code and no
// specific error kind.
func SendError(c *fiber.Ctx, status int, message string) error {
	return SendErrorKind(c, status, "", message)
}

// SendErrorKind sends an error JSON response carrying a structured error kind.
func SendErrorKind(c *fiber.Ctx, status int, kind, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Kind:    kind,
	})
}
