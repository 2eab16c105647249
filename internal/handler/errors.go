package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventos-backend/internal/i18n"
	"github.com/sefazor/eventos-backend/internal/models"
	"go.uber.org/zap"
)

// Responder writes localized envelopes and maps domain errors to HTTP responses.
type Responder struct {
	translator *i18n.Translator
	log        *zap.Logger
}

func NewResponder(translator *i18n.Translator, log *zap.Logger) *Responder {
	return &Responder{translator: translator, log: log}
}

func (r *Responder) message(c *fiber.Ctx, id string, data map[string]any) string {
	return r.translator.T(c.Get(fiber.HeaderAcceptLanguage), id, data)
}

func (r *Responder) Success(c *fiber.Ctx, status int, data interface{}, messageID string, msgData map[string]any) error {
	return c.Status(status).JSON(models.SuccessResponse(data, r.message(c, messageID, msgData)))
}

func (r *Responder) fail(c *fiber.Ctx, status int, messageID string) error {
	return c.Status(status).JSON(models.ErrorResponse(r.message(c, messageID, nil)))
}

// Error converts err into the matching response. Unknown errors are logged and hidden.
func (r *Responder) Error(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	var ferr *fiber.Error

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationResponse(
			r.message(c, "error.validation", nil),
			r.translator.Fields(c.Get(fiber.HeaderAcceptLanguage), verr.Fields),
		))
	case errors.Is(err, models.ErrInvalidCredentials):
		return r.fail(c, fiber.StatusUnauthorized, "auth.invalid_credentials")
	case errors.Is(err, models.ErrAuthenticationRequired):
		return r.fail(c, fiber.StatusUnauthorized, "auth.required")
	case errors.Is(err, models.ErrPermissionDenied):
		return r.permissionDenied(c)
	case errors.Is(err, models.ErrAlreadyEnrolled):
		return r.fail(c, fiber.StatusConflict, "event.already_enrolled")
	case errors.Is(err, models.ErrEventFull):
		return r.fail(c, fiber.StatusConflict, "event.full")
	case errors.Is(err, models.ErrNotEnrolled):
		return r.fail(c, fiber.StatusNotFound, "event.not_enrolled")
	case errors.Is(err, models.ErrNotFound):
		return r.fail(c, fiber.StatusNotFound, "error.not_found")
	case errors.Is(err, models.ErrStorageDisabled):
		return r.fail(c, fiber.StatusServiceUnavailable, "error.storage_disabled")
	case errors.As(err, &ferr):
		return c.Status(ferr.Code).JSON(models.ErrorResponse(ferr.Message))
	}

	r.log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return r.fail(c, fiber.StatusInternalServerError, "error.internal")
}

// permissionDenied sends the caller back to the event they tried to act on.
func (r *Responder) permissionDenied(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return r.fail(c, fiber.StatusForbidden, "error.permission_denied")
	}
	c.Location(fmt.Sprintf("/api/events/%s", id))
	return r.fail(c, fiber.StatusSeeOther, "error.permission_denied")
}

// ErrorHandler is the app-wide fiber error handler.
func (r *Responder) ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return r.Error(c, err)
	}
}

func (r *Responder) badRequest(c *fiber.Ctx) error {
	return r.fail(c, fiber.StatusBadRequest, "error.invalid_request")
}

// eventID reads the :id route parameter. Malformed ids are treated as missing events.
func eventID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.ErrNotFound
	}
	return uint(id), nil
}
