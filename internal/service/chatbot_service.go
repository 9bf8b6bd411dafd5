package service

import (
	"context"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/ai/classifier"
	"ai-tutor-be/pkg/ai/pipeline"
	"ai-tutor-be/pkg/llm"
)

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	// Chat classifies the latest user turn and runs either the plain-chat or
	// the YouTube pipeline over the visible history.
	Chat(ctx context.Context, history []llm.Message) (string, error)

	// SummarizeYouTube runs the YouTube pipeline for an explicit link request.
	SummarizeYouTube(ctx context.Context, videoURL, question string) (string, error)

	// AnalyzeFile runs the file pipeline; it takes ownership of the uploaded
	// temp file and deletes it whatever happens.
	AnalyzeFile(ctx context.Context, filePath, mimeType, question string) (string, error)
}

// chatbotService wires the classifier to the three pipelines. It holds no
// per-request state; every call is classified and executed independently.
type chatbotService struct {
	chatPipeline    *pipeline.ChatPipeline
	youtubePipeline *pipeline.YouTubePipeline
	filePipeline    *pipeline.FilePipeline
	logger          logger.ILogger
}

func NewChatbotService(
	chatPipeline *pipeline.ChatPipeline,
	youtubePipeline *pipeline.YouTubePipeline,
	filePipeline *pipeline.FilePipeline,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		chatPipeline:    chatPipeline,
		youtubePipeline: youtubePipeline,
		filePipeline:    filePipeline,
		logger:          log,
	}
}

func (s *chatbotService) Chat(ctx context.Context, history []llm.Message) (string, error) {
	if turn, ok := lastUserTurn(history); ok {
		if result := classifier.ClassifyText(turn.Content); result.Kind == classifier.KindYouTube {
			s.logger.Info("chatbot_service", "routing chat turn to youtube pipeline", map[string]interface{}{
				"url": result.URL,
			})
			return s.youtubePipeline.Execute(ctx, result.URL, result.Question)
		}
	}
	return s.chatPipeline.Execute(ctx, history)
}

func (s *chatbotService) SummarizeYouTube(ctx context.Context, videoURL, question string) (string, error) {
	return s.youtubePipeline.Execute(ctx, videoURL, question)
}

func (s *chatbotService) AnalyzeFile(ctx context.Context, filePath, mimeType, question string) (string, error) {
	return s.filePipeline.Execute(ctx, filePath, mimeType, question)
}

func lastUserTurn(history []llm.Message) (llm.Message, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i], true
		}
	}
	return llm.Message{}, false
}
