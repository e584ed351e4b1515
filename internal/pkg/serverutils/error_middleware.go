package serverutils

import (
	"errors"

	"ai-coursekb-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps application error kinds onto HTTP statuses so
// handlers can just return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		status := statusForKind(apperror.KindOf(err))
		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindContextTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case apperror.KindGenerationTimeout:
		return fiber.StatusGatewayTimeout
	case apperror.KindGenerationRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
