package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/mediafetch"
	"ai-tutor-be/pkg/transcription"
)

// YouTubePipeline runs the fixed stage sequence for a video link:
// fetch audio -> transcribe -> truncate -> summarize. Stages run strictly in
// order and the first failure short-circuits the rest. The downloaded audio
// artifact is deleted on every exit path.
type YouTubePipeline struct {
	fetcher     mediafetch.Fetcher
	transcriber transcription.TranscriptionProvider
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	timeouts    Timeouts
}

func NewYouTubePipeline(
	fetcher mediafetch.Fetcher,
	transcriber transcription.TranscriptionProvider,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
	timeouts Timeouts,
) *YouTubePipeline {
	return &YouTubePipeline{
		fetcher:     fetcher,
		transcriber: transcriber,
		llmProvider: llmProvider,
		logger:      log,
		timeouts:    timeouts,
	}
}

func (p *YouTubePipeline) Execute(ctx context.Context, videoURL, question string) (string, error) {
	// Stage 1: download best audio to a temp artifact
	fetchCtx, cancelFetch := withTimeout(ctx, p.timeouts.Download)
	defer cancelFetch()

	audioPath, err := p.fetcher.FetchAudio(fetchCtx, videoURL)
	if err != nil {
		p.logger.Error("youtube_pipeline", "audio download failed", map[string]interface{}{
			"url":   videoURL,
			"error": err.Error(),
		})
		return "", fromAdapterError(err, KindDownloadFailed, constant.MsgYouTubeFailed)
	}
	// Artifact lifetime is scoped to this request; removal errors are
	// best-effort and swallowed.
	defer os.Remove(audioPath)

	p.logger.Info("youtube_pipeline", "audio downloaded", map[string]interface{}{"path": audioPath})

	// Stage 2: transcribe, speaker labels off
	transcribeCtx, cancelTranscribe := withTimeout(ctx, p.timeouts.Transcription)
	defer cancelTranscribe()

	result, err := p.transcriber.TranscribeFile(transcribeCtx, audioPath, false)
	if err != nil {
		p.logger.Error("youtube_pipeline", "transcription failed", map[string]interface{}{"error": err.Error()})
		return "", fromAdapterError(err, KindTranscriptFailed, constant.MsgTranscriptFailed)
	}

	transcriptText := strings.TrimSpace(result.Text)
	if transcriptText == "" {
		return "", newError(KindEmptyTranscript, constant.MsgEmptyTranscript, nil)
	}

	// Stage 3: silent truncation to keep the prompt inside the token budget
	if n := utf8.RuneCountInString(transcriptText); n > constant.MaxTranscriptChars {
		p.logger.Info("youtube_pipeline", "truncating transcript", map[string]interface{}{
			"length": n,
			"limit":  constant.MaxTranscriptChars,
		})
		transcriptText = truncate(transcriptText, constant.MaxTranscriptChars)
	}

	// Stage 4: summarize / answer
	userQuestion := strings.TrimSpace(question)
	if userQuestion == "" {
		userQuestion = constant.DefaultVideoQuestion
	}

	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.VideoTutorSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(
			"Here is the (possibly truncated) transcript of a YouTube video:\n\n%s\n\nUser request: %s",
			transcriptText, userQuestion,
		)},
	}

	completionCtx, cancelCompletion := withTimeout(ctx, p.timeouts.Completion)
	defer cancelCompletion()

	reply, err := p.llmProvider.Chat(completionCtx, messages, llm.WithTemperature(0.5))
	if err != nil {
		p.logger.Error("youtube_pipeline", "summarization failed", map[string]interface{}{"error": err.Error()})
		return "", fromAdapterError(err, KindUpstream, constant.MsgYouTubeFailed)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", newError(KindEmptyReply, constant.MsgEmptyVideoReply, nil)
	}

	return reply, nil
}
