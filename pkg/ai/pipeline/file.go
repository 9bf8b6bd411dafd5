package pipeline

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/ai/classifier"
	"ai-tutor-be/pkg/llm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// TextExtractor reduces a PDF document to plain text.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// FilePipeline analyzes an uploaded file, dispatching on the declared mime
// type: images go to the vision model inline, PDFs are reduced to text and
// summarized. The uploaded artifact is deleted on every exit path, including
// the unsupported-type rejection.
type FilePipeline struct {
	llmProvider llm.LLMProvider
	extractor   TextExtractor
	visionModel string
	logger      logger.ILogger
	timeouts    Timeouts
}

func NewFilePipeline(llmProvider llm.LLMProvider, extractor TextExtractor, visionModel string, log logger.ILogger, timeouts Timeouts) *FilePipeline {
	return &FilePipeline{
		llmProvider: llmProvider,
		extractor:   extractor,
		visionModel: visionModel,
		logger:      log,
		timeouts:    timeouts,
	}
}

func (p *FilePipeline) Execute(ctx context.Context, filePath, mimeType, question string) (string, error) {
	defer os.Remove(filePath)

	switch classifier.ClassifyFile(mimeType) {
	case classifier.FileKindImage:
		return p.analyzeImage(ctx, filePath, mimeType, question)
	case classifier.FileKindPDF:
		return p.analyzePdf(ctx, filePath, question)
	default:
		return "", newError(KindUnsupportedFile, constant.MsgUnsupportedFile, nil)
	}
}

func (p *FilePipeline) analyzeImage(ctx context.Context, filePath, mimeType, question string) (string, error) {
	imageData, err := os.ReadFile(filePath)
	if err != nil {
		p.logger.Error("file_pipeline", "read uploaded image failed", map[string]interface{}{"error": err.Error()})
		return "", newError(KindUpstream, constant.MsgFileAnalyzeFailed, err)
	}

	userQuestion := strings.TrimSpace(question)
	if userQuestion == "" {
		userQuestion = constant.DefaultImageQuestion
	}

	// No system prompt in vision mode; the plain-math instruction rides on
	// the user text instead.
	messages := []llm.Message{
		llm.ImageMessage(userQuestion+constant.PlainMathInstruction, mimeType, imageData),
	}

	callCtx, cancel := withTimeout(ctx, p.timeouts.Completion)
	defer cancel()

	reply, err := p.llmProvider.Chat(callCtx, messages, llm.WithModel(p.visionModel))
	if err != nil {
		p.logger.Error("file_pipeline", "vision call failed", map[string]interface{}{"error": err.Error()})
		return "", fromAdapterError(err, KindUpstream, constant.MsgFileAnalyzeFailed)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", newError(KindEmptyReply, constant.MsgEmptyImageReply, nil)
	}

	return reply, nil
}

func (p *FilePipeline) analyzePdf(ctx context.Context, filePath, question string) (string, error) {
	pdfData, err := os.ReadFile(filePath)
	if err != nil {
		p.logger.Error("file_pipeline", "read uploaded pdf failed", map[string]interface{}{"error": err.Error()})
		return "", newError(KindUpstream, constant.MsgFileAnalyzeFailed, err)
	}

	text, err := p.extractor.Extract(pdfData)
	if err != nil {
		p.logger.Error("file_pipeline", "pdf extraction failed", map[string]interface{}{"error": err.Error()})
		return "", newError(KindUpstream, constant.MsgFileAnalyzeFailed, err)
	}

	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text == "" {
		// No completion call for an empty document.
		return "", newError(KindNoText, constant.MsgNoPdfText, nil)
	}

	if n := utf8.RuneCountInString(text); n > constant.MaxPdfTextChars {
		p.logger.Info("file_pipeline", "truncating pdf text", map[string]interface{}{
			"length": n,
			"limit":  constant.MaxPdfTextChars,
		})
		text = truncate(text, constant.MaxPdfTextChars)
	}

	userQuestion := strings.TrimSpace(question)
	if userQuestion == "" {
		userQuestion = constant.DefaultPdfQuestion
	}

	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.PdfTutorSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(
			"Here is text extracted from a PDF:\n\n%s\n\nUser request about this PDF: %s",
			text, userQuestion,
		)},
	}

	callCtx, cancel := withTimeout(ctx, p.timeouts.Completion)
	defer cancel()

	reply, err := p.llmProvider.Chat(callCtx, messages, llm.WithTemperature(0.4))
	if err != nil {
		p.logger.Error("file_pipeline", "pdf summarization failed", map[string]interface{}{"error": err.Error()})
		return "", fromAdapterError(err, KindUpstream, constant.MsgFileAnalyzeFailed)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", newError(KindEmptyReply, constant.MsgEmptyPdfReply, nil)
	}

	return reply, nil
}
