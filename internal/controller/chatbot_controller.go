package controller

import (
	"fmt"
	"path/filepath"
	"time"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	YoutubeTranscribe(ctx *fiber.Ctx) error
	FileAnalyze(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	uploadDir      string
}

func NewChatbotController(chatbotService service.IChatbotService, uploadDir string) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
		uploadDir:      uploadDir,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Post("/youtube-transcribe", c.YoutubeTranscribe)
	r.Post("/file-analyze", c.FileAnalyze)
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest(ctx, constant.MsgMessagesRequired)
	}

	// Missing field and non-array both parse to nil; an empty array is valid.
	if req.Messages == nil {
		return serverutils.BadRequest(ctx, constant.MsgMessagesRequired)
	}

	history := make([]llm.Message, len(req.Messages))
	for i, turn := range req.Messages {
		history[i] = llm.Message{Role: turn.Role, Content: turn.Content}
	}

	reply, err := c.chatbotService.Chat(ctx.Context(), history)
	if err != nil {
		return err
	}

	return serverutils.Reply(ctx, reply)
}

func (c *chatbotController) YoutubeTranscribe(ctx *fiber.Ctx) error {
	var req dto.YoutubeTranscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest(ctx, constant.MsgURLRequired)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.BadRequest(ctx, constant.MsgURLRequired)
	}

	reply, err := c.chatbotService.SummarizeYouTube(ctx.Context(), req.Url, req.Question)
	if err != nil {
		return err
	}

	return serverutils.Reply(ctx, reply)
}

func (c *chatbotController) FileAnalyze(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.BadRequest(ctx, constant.MsgNoFileUploaded)
	}

	// Boundary cap: reject before any pipeline stage runs.
	if fileHeader.Size > constant.MaxUploadBytes {
		return serverutils.BadRequest(ctx, constant.MsgFileTooLarge)
	}

	question := ctx.FormValue("question")
	mimeType := fileHeader.Header.Get("Content-Type")

	// Unique name per request so concurrent uploads never collide.
	uploadPath := filepath.Join(c.uploadDir, fmt.Sprintf(
		"file-%d-%s%s",
		time.Now().UnixNano(),
		uuid.NewString()[:8],
		filepath.Ext(fileHeader.Filename),
	))

	if err := ctx.SaveFile(fileHeader, uploadPath); err != nil {
		return err
	}

	// The pipeline owns the saved file from here and deletes it on all paths.
	reply, err := c.chatbotService.AnalyzeFile(ctx.Context(), uploadPath, mimeType, question)
	if err != nil {
		return err
	}

	return serverutils.Reply(ctx, reply)
}
