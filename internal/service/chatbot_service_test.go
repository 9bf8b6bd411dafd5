package service

import (
	"context"
	"errors"
	"testing"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/ai/pipeline"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/pdftext"
	"ai-tutor-be/pkg/transcription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	reply string
	calls int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.reply, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, options...)
}

type stubFetcher struct {
	calls   int
	lastURL string
}

func (s *stubFetcher) FetchAudio(ctx context.Context, videoURL string) (string, error) {
	s.calls++
	s.lastURL = videoURL
	return "", errors.New("fetch not available in test")
}

type stubTranscriber struct{}

func (stubTranscriber) TranscribeFile(ctx context.Context, audioPath string, diarize bool) (*transcription.Result, error) {
	return &transcription.Result{}, nil
}

func newTestService(llmStub *stubLLM, fetcher *stubFetcher) IChatbotService {
	log := logger.NewNopLogger()
	timeouts := pipeline.DefaultTimeouts()
	return NewChatbotService(
		pipeline.NewChatPipeline(llmStub, log, timeouts),
		pipeline.NewYouTubePipeline(fetcher, stubTranscriber{}, llmStub, log, timeouts),
		pipeline.NewFilePipeline(llmStub, pdftext.NewExtractor(), "vision-model", log, timeouts),
		log,
	)
}

func TestChatRoutesYouTubeLinkToYouTubePipeline(t *testing.T) {
	llmStub := &stubLLM{reply: "ok"}
	fetcher := &stubFetcher{}
	svc := newTestService(llmStub, fetcher)

	_, err := svc.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi!"},
		{Role: "user", Content: "summarize https://youtu.be/ABCDEFGHIJK please"},
	})

	// The stub fetcher fails on purpose; what matters is the routing.
	require.Error(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "https://youtu.be/ABCDEFGHIJK", fetcher.lastURL)
	assert.Zero(t, llmStub.calls)
}

func TestChatWithoutLinkStaysPlainChat(t *testing.T) {
	llmStub := &stubLLM{reply: "an answer"}
	fetcher := &stubFetcher{}
	svc := newTestService(llmStub, fetcher)

	reply, err := svc.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "what is entropy?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "an answer", reply)
	assert.Equal(t, 1, llmStub.calls)
	assert.Zero(t, fetcher.calls)
}

func TestChatWithEmptyHistoryStaysPlainChat(t *testing.T) {
	llmStub := &stubLLM{reply: "hello!"}
	fetcher := &stubFetcher{}
	svc := newTestService(llmStub, fetcher)

	_, err := svc.Chat(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, llmStub.calls)
	assert.Zero(t, fetcher.calls)
}
