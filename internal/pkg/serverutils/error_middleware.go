package serverutils

import (
	"errors"

	"sales-crm-be/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps typed errors onto the response envelope:
// store.NotFoundError -> 404, ValidationError -> 400, everything else -> 500.
// Persistence failures never reach this point; the store swallows and logs them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var notFound *store.NotFoundError
		if errors.As(err, &notFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, notFound.Error()))
		}

		var invalid *ValidationError
		if errors.As(err, &invalid) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, invalid.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
