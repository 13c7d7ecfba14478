package serverutils

import (
	"errors"

	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns service errors into JSON responses:
// validation 400, not-found 404, conflict 409, everything else 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{Message: fiberErr.Message})
		}

		status := fiber.StatusInternalServerError
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			status = fiber.StatusBadRequest
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		case apperr.KindConflict:
			status = fiber.StatusConflict
		default:
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(status).JSON(ErrorBody{Message: "internal server error"})
		}

		return ctx.Status(status).JSON(ErrorBody{Message: err.Error()})
	}
}
