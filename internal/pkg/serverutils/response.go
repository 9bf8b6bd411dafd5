package serverutils

import (
	"ai-tutor-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// Reply writes the success envelope: 200 with {reply}.
func Reply(ctx *fiber.Ctx, text string) error {
	return ctx.JSON(dto.ReplyResponse{Reply: text})
}

// BadRequest writes the client-error envelope: 400 with {error}.
func BadRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: message})
}
