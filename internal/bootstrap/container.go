package bootstrap

import (
	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/controller"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/ai/pipeline"
	"ai-tutor-be/pkg/llm/groq"
	"ai-tutor-be/pkg/mediafetch"
	"ai-tutor-be/pkg/pdftext"
	"ai-tutor-be/pkg/transcription/assemblyai"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController

	// Shared facades (exposed for shutdown handling)
	Logger logger.ILogger
}

// NewContainer wires every dependency explicitly at startup: adapters are
// constructed once here and injected down, never reached as ambient globals.
func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. External Service Adapters
	completionProvider := groq.NewGroqProvider(cfg.Keys.Groq, cfg.Ai.GroqBaseURL, cfg.Ai.ChatModel)
	transcriptionProvider := assemblyai.NewAssemblyAIProvider(cfg.Keys.AssemblyAI)
	mediaFetcher := mediafetch.NewYtDlpFetcher(cfg.Ai.YtDlpPath, cfg.App.UploadDir)

	// 3. Pipelines
	timeouts := pipeline.Timeouts{
		Completion:    cfg.Ai.CompletionTimeout,
		Transcription: cfg.Ai.TranscriptionTimeout,
		Download:      cfg.Ai.DownloadTimeout,
	}

	chatPipeline := pipeline.NewChatPipeline(completionProvider, sysLogger, timeouts)
	youtubePipeline := pipeline.NewYouTubePipeline(
		mediaFetcher,
		transcriptionProvider,
		completionProvider,
		sysLogger,
		timeouts,
	)
	filePipeline := pipeline.NewFilePipeline(completionProvider, pdftext.NewExtractor(), cfg.Ai.VisionModel, sysLogger, timeouts)

	// 4. Services
	chatbotService := service.NewChatbotService(chatPipeline, youtubePipeline, filePipeline, sysLogger)

	// 5. Controllers
	return &Container{
		ChatbotController: controller.NewChatbotController(chatbotService, cfg.App.UploadDir),
		Logger:            sysLogger,
	}
}
