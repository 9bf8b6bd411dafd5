package serverutils

import (
	"errors"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/ai/pipeline"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the outermost pipeline boundary: it maps typed
// pipeline failures to their status and user message, and anything
// unclassified (including recovered panics) to a 500 with the fixed generic
// message. Technical detail only ever reaches the logs.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var pipeErr *pipeline.Error
		if errors.As(err, &pipeErr) {
			status := fiber.StatusInternalServerError
			if pipeErr.IsClientError() {
				status = fiber.StatusBadRequest
			}
			log.Warn("http", "pipeline failure", map[string]interface{}{
				"path":  ctx.Path(),
				"kind":  string(pipeErr.Kind),
				"error": pipeErr.Error(),
			})
			return ctx.Status(status).JSON(dto.ErrorResponse{Error: pipeErr.UserMessage})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: constant.MsgBackendDisconnected,
		})
	}
}
