package server

import (
	"errors"

	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// userIDFromCtx returns the authenticated user's id hex set by the auth gate.
func userIDFromCtx(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

// respondAppError translates a service error into the default wire shape for
// its taxonomy code. Handlers that need an endpoint-specific status or body
// (profile reads return 400 for not-found, registration conflicts render as a
// validation list) check their sentinels before falling through to this.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", "error", err)
		return models.RespondServerError(c)
	}

	switch appErr.Code {
	case models.CodeValidation, models.CodeInvalidCredentials:
		return models.RespondErrors(c, fiber.StatusBadRequest, appErr.Message)
	case models.CodeConflict:
		return models.RespondMsg(c, fiber.StatusBadRequest, appErr.Message)
	case models.CodeNotFound, models.CodeUpstream:
		return models.RespondMsg(c, fiber.StatusNotFound, appErr.Message)
	case models.CodeForbidden, models.CodeUnauthenticated:
		return models.RespondMsg(c, fiber.StatusUnauthorized, appErr.Message)
	default:
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", "error", err)
		return models.RespondServerError(c)
	}
}

// bodyParser decodes the JSON body, rendering the standard validation shape
// on malformed input. Returns false when the response was already written.
func bodyParser(c *fiber.Ctx, out any) bool {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondErrors(c, fiber.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
