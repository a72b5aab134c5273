package utils

import (
	"errors"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

func ResponseValidation(ctx *fiber.Ctx, ve *domain.ValidationError) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"errors": ve.Fields,
	})
}

// ResponseServiceError maps a service error onto the HTTP taxonomy.
// Unexpected errors are logged and hidden behind a generic 500.
func ResponseServiceError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ResponseValidation(ctx, ve)
	}

	switch {
	case errors.Is(err, domain.ErrExpiredToken), errors.Is(err, domain.ErrInvalidToken):
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return ResponseError(ctx, fiber.StatusBadRequest, errorMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		return ResponseError(ctx, fiber.StatusUnauthorized, errorMessage(err))
	case errors.Is(err, domain.ErrForbidden):
		return ResponseError(ctx, fiber.StatusForbidden, errorMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		return ResponseError(ctx, fiber.StatusNotFound, errorMessage(err))
	case errors.Is(err, domain.ErrConflict):
		return ResponseError(ctx, fiber.StatusConflict, errorMessage(err))
	case errors.Is(err, domain.ErrDeliveryFailed):
		return ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	log.Error("unhandled service error",
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.Path()),
		zap.Error(err),
	)
	return ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
}

// errorMessage drops the trailing ": <kind>" that the domain errors wrap.
func errorMessage(err error) string {
	msg := err.Error()
	for _, kind := range []error{domain.ErrInvalidInput, domain.ErrUnauthorized, domain.ErrForbidden, domain.ErrNotFound, domain.ErrConflict} {
		suffix := ": " + kind.Error()
		if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
			return msg[:len(msg)-len(suffix)]
		}
	}
	return msg
}
