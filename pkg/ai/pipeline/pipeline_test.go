package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/pdftext"
	"ai-tutor-be/pkg/transcription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM records every call and replays scripted replies.
type fakeLLM struct {
	replies []string
	err     error
	calls   [][]llm.Message
	options []llm.Options
	callsN  int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Options{}
	for _, o := range options {
		o(&opts)
	}
	f.calls = append(f.calls, history)
	f.options = append(f.options, opts)
	f.callsN++
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// fakeFetcher writes a real temp file so cleanup can be asserted.
type fakeFetcher struct {
	err      error
	lastPath string
}

func (f *fakeFetcher) FetchAudio(ctx context.Context, videoURL string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	file, err := os.CreateTemp("", "pipeline-test-audio-*.webm")
	if err != nil {
		return "", err
	}
	file.Close()
	f.lastPath = file.Name()
	return file.Name(), nil
}

// fakeExtractor returns a scripted text regardless of the bytes handed in.
type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) TranscribeFile(ctx context.Context, audioPath string, diarize bool) (*transcription.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &transcription.Result{Text: f.text}, nil
}

func pipelineKind(t *testing.T, err error) Kind {
	t.Helper()
	var pipeErr *Error
	require.ErrorAs(t, err, &pipeErr)
	return pipeErr.Kind
}

func TestChatPipeline(t *testing.T) {
	t.Run("prepends system prompt and returns reply", func(t *testing.T) {
		llmFake := &fakeLLM{replies: []string{"Hi there!"}}
		p := NewChatPipeline(llmFake, logger.NewNopLogger(), DefaultTimeouts())

		reply, err := p.Execute(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})

		require.NoError(t, err)
		assert.Equal(t, "Hi there!", reply)
		require.Len(t, llmFake.calls, 1)
		require.Len(t, llmFake.calls[0], 2)
		assert.Equal(t, constant.ChatMessageRoleSystem, llmFake.calls[0][0].Role)
		assert.Equal(t, "hi", llmFake.calls[0][1].Content)
		assert.Equal(t, 0.7, llmFake.options[0].Temperature)
	})

	t.Run("passes the full history in chronological order", func(t *testing.T) {
		llmFake := &fakeLLM{replies: []string{"answer"}}
		p := NewChatPipeline(llmFake, logger.NewNopLogger(), DefaultTimeouts())
		history := []llm.Message{
			{Role: "user", Content: "first"},
			{Role: "assistant", Content: "second"},
			{Role: "user", Content: "third"},
		}

		_, err := p.Execute(context.Background(), history)

		require.NoError(t, err)
		require.Len(t, llmFake.calls[0], 4)
		assert.Equal(t, "first", llmFake.calls[0][1].Content)
		assert.Equal(t, "second", llmFake.calls[0][2].Content)
		assert.Equal(t, "third", llmFake.calls[0][3].Content)
	})

	t.Run("empty reply is a failure, not an empty success", func(t *testing.T) {
		llmFake := &fakeLLM{replies: []string{"  "}}
		p := NewChatPipeline(llmFake, logger.NewNopLogger(), DefaultTimeouts())

		_, err := p.Execute(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})

		assert.Equal(t, KindEmptyReply, pipelineKind(t, err))
	})

	t.Run("upstream failure maps to the generic message", func(t *testing.T) {
		llmFake := &fakeLLM{err: errors.New("connection refused")}
		p := NewChatPipeline(llmFake, logger.NewNopLogger(), DefaultTimeouts())

		_, err := p.Execute(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindUpstream, pipeErr.Kind)
		assert.Equal(t, constant.MsgBackendDisconnected, pipeErr.UserMessage)
	})

	t.Run("identical requests make independent adapter calls", func(t *testing.T) {
		llmFake := &fakeLLM{replies: []string{"a"}}
		p := NewChatPipeline(llmFake, logger.NewNopLogger(), DefaultTimeouts())
		history := []llm.Message{{Role: "user", Content: "same question"}}

		_, err := p.Execute(context.Background(), history)
		require.NoError(t, err)
		_, err = p.Execute(context.Background(), history)
		require.NoError(t, err)

		assert.Equal(t, 2, llmFake.callsN)
	})
}

func TestYouTubePipeline(t *testing.T) {
	newPipeline := func(fetcher *fakeFetcher, transcriber *fakeTranscriber, llmFake *fakeLLM) *YouTubePipeline {
		return NewYouTubePipeline(fetcher, transcriber, llmFake, logger.NewNopLogger(), DefaultTimeouts())
	}

	t.Run("happy path deletes the audio artifact", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		llmFake := &fakeLLM{replies: []string{"summary"}}
		p := newPipeline(fetcher, &fakeTranscriber{text: "some transcript"}, llmFake)

		reply, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "")

		require.NoError(t, err)
		assert.Equal(t, "summary", reply)
		assert.NoFileExists(t, fetcher.lastPath)
		assert.Equal(t, 0.5, llmFake.options[0].Temperature)
	})

	t.Run("download failure short-circuits without adapter calls", func(t *testing.T) {
		llmFake := &fakeLLM{}
		p := newPipeline(&fakeFetcher{err: errors.New("no formats found")}, &fakeTranscriber{}, llmFake)

		_, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindDownloadFailed, pipeErr.Kind)
		assert.Equal(t, constant.MsgYouTubeFailed, pipeErr.UserMessage)
		assert.Zero(t, llmFake.callsN)
	})

	t.Run("expired download deadline maps to the timeout kind", func(t *testing.T) {
		fetcher := &fakeFetcher{err: fmt.Errorf("yt-dlp aborted: %w", context.DeadlineExceeded)}
		p := newPipeline(fetcher, &fakeTranscriber{}, &fakeLLM{})

		_, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindTimeout, pipeErr.Kind)
		assert.Equal(t, constant.MsgServiceTimeout, pipeErr.UserMessage)
	})

	t.Run("transcription failure still deletes the artifact", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		p := newPipeline(fetcher, &fakeTranscriber{err: errors.New("engine error")}, &fakeLLM{})

		_, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "")

		assert.Equal(t, KindTranscriptFailed, pipelineKind(t, err))
		assert.NoFileExists(t, fetcher.lastPath)
	})

	t.Run("empty transcript is its own failure kind", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		p := newPipeline(fetcher, &fakeTranscriber{text: "   "}, &fakeLLM{})

		_, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindEmptyTranscript, pipeErr.Kind)
		assert.Equal(t, constant.MsgEmptyTranscript, pipeErr.UserMessage)
		assert.NoFileExists(t, fetcher.lastPath)
	})

	t.Run("long transcript is cut to exactly the ceiling", func(t *testing.T) {
		long := strings.Repeat("x", constant.MaxTranscriptChars+500)
		llmFake := &fakeLLM{replies: []string{"summary"}}
		p := newPipeline(&fakeFetcher{}, &fakeTranscriber{text: long}, llmFake)

		_, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "explain")

		require.NoError(t, err)
		require.Len(t, llmFake.calls, 1)
		prompt := llmFake.calls[0][1].Content
		assert.Contains(t, prompt, strings.Repeat("x", constant.MaxTranscriptChars))
		assert.NotContains(t, prompt, strings.Repeat("x", constant.MaxTranscriptChars+1))
		assert.Contains(t, prompt, "User request: explain")
	})

	t.Run("short transcript passes through unmodified", func(t *testing.T) {
		llmFake := &fakeLLM{replies: []string{"summary"}}
		p := newPipeline(&fakeFetcher{}, &fakeTranscriber{text: "short transcript"}, llmFake)

		_, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "")

		require.NoError(t, err)
		prompt := llmFake.calls[0][1].Content
		assert.Contains(t, prompt, "short transcript")
		assert.Contains(t, prompt, constant.DefaultVideoQuestion)
	})

	t.Run("empty summarizer reply fails", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		p := newPipeline(fetcher, &fakeTranscriber{text: "transcript"}, &fakeLLM{replies: []string{""}})

		_, err := p.Execute(context.Background(), "https://youtu.be/ABCDEFGHIJK", "")

		assert.Equal(t, KindEmptyReply, pipelineKind(t, err))
		assert.NoFileExists(t, fetcher.lastPath)
	})
}

func writeUpload(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fmt.Sprintf("upload-%d", os.Getpid()))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestFilePipeline(t *testing.T) {
	newPipeline := func(llmFake *fakeLLM, extractor TextExtractor) *FilePipeline {
		return NewFilePipeline(llmFake, extractor, "vision-model", logger.NewNopLogger(), DefaultTimeouts())
	}

	t.Run("unsupported mime rejects without adapter call and deletes upload", func(t *testing.T) {
		llmFake := &fakeLLM{}
		path := writeUpload(t, []byte("plain text"))
		p := newPipeline(llmFake, &fakeExtractor{})

		_, err := p.Execute(context.Background(), path, "text/plain", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindUnsupportedFile, pipeErr.Kind)
		assert.True(t, pipeErr.IsClientError())
		assert.Zero(t, llmFake.callsN)
		assert.NoFileExists(t, path)
	})

	t.Run("image goes to the vision model as one multi-part message", func(t *testing.T) {
		llmFake := &fakeLLM{replies: []string{"a red triangle"}}
		path := writeUpload(t, []byte{0x89, 0x50, 0x4e, 0x47})
		p := newPipeline(llmFake, &fakeExtractor{})

		reply, err := p.Execute(context.Background(), path, "image/png", "what shape is this?")

		require.NoError(t, err)
		assert.Equal(t, "a red triangle", reply)
		require.Len(t, llmFake.calls, 1)
		require.Len(t, llmFake.calls[0], 1)
		msg := llmFake.calls[0][0]
		assert.Equal(t, "user", msg.Role)
		require.Len(t, msg.Parts, 2)
		assert.Contains(t, msg.Parts[0].Text, "what shape is this?")
		assert.Contains(t, msg.Parts[0].Text, "Do NOT use LaTeX")
		assert.Contains(t, msg.Parts[1].ImageURL, "data:image/png;base64,")
		assert.Equal(t, "vision-model", llmFake.options[0].Model)
		assert.NoFileExists(t, path)
	})

	t.Run("empty vision reply is a failure", func(t *testing.T) {
		path := writeUpload(t, []byte{0xff, 0xd8})
		p := newPipeline(&fakeLLM{replies: []string{""}}, &fakeExtractor{})

		_, err := p.Execute(context.Background(), path, "image/jpeg", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindEmptyReply, pipeErr.Kind)
		assert.Equal(t, constant.MsgEmptyImageReply, pipeErr.UserMessage)
		assert.NoFileExists(t, path)
	})

	t.Run("unparseable pdf is an upstream failure with no adapter call", func(t *testing.T) {
		llmFake := &fakeLLM{}
		path := writeUpload(t, []byte("not a pdf at all"))
		p := newPipeline(llmFake, pdftext.NewExtractor())

		_, err := p.Execute(context.Background(), path, "application/pdf", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindUpstream, pipeErr.Kind)
		assert.Equal(t, constant.MsgFileAnalyzeFailed, pipeErr.UserMessage)
		assert.Zero(t, llmFake.callsN)
		assert.NoFileExists(t, path)
	})

	t.Run("pdf with only whitespace text fails with no-text and no adapter call", func(t *testing.T) {
		llmFake := &fakeLLM{}
		path := writeUpload(t, []byte("%PDF"))
		p := newPipeline(llmFake, &fakeExtractor{text: " \n\t  \n"})

		_, err := p.Execute(context.Background(), path, "application/pdf", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindNoText, pipeErr.Kind)
		assert.Equal(t, constant.MsgNoPdfText, pipeErr.UserMessage)
		assert.Zero(t, llmFake.callsN)
		assert.NoFileExists(t, path)
	})

	t.Run("long pdf text is cut to exactly the ceiling", func(t *testing.T) {
		long := strings.Repeat("y", constant.MaxPdfTextChars+500)
		llmFake := &fakeLLM{replies: []string{"summary"}}
		path := writeUpload(t, []byte("%PDF"))
		p := newPipeline(llmFake, &fakeExtractor{text: long})

		_, err := p.Execute(context.Background(), path, "application/pdf", "what is this about?")

		require.NoError(t, err)
		require.Len(t, llmFake.calls, 1)
		require.Len(t, llmFake.calls[0], 2)
		prompt := llmFake.calls[0][1].Content
		assert.Contains(t, prompt, strings.Repeat("y", constant.MaxPdfTextChars))
		assert.NotContains(t, prompt, strings.Repeat("y", constant.MaxPdfTextChars+1))
		assert.Contains(t, prompt, "what is this about?")
	})

	t.Run("extractor failure surfaces as an upstream failure", func(t *testing.T) {
		llmFake := &fakeLLM{}
		path := writeUpload(t, []byte("%PDF"))
		p := newPipeline(llmFake, &fakeExtractor{err: errors.New("parse pdf: bad xref")})

		_, err := p.Execute(context.Background(), path, "application/pdf", "")

		var pipeErr *Error
		require.ErrorAs(t, err, &pipeErr)
		assert.Equal(t, KindUpstream, pipeErr.Kind)
		assert.Equal(t, constant.MsgFileAnalyzeFailed, pipeErr.UserMessage)
		assert.Zero(t, llmFake.callsN)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("", 5))

	// Ceilings count characters, not bytes, so multibyte text keeps the full
	// character budget and never ends mid-rune.
	got := truncate(strings.Repeat("é", constant.MaxPdfTextChars), constant.MaxTranscriptChars)
	assert.Equal(t, constant.MaxTranscriptChars, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 5), truncate(strings.Repeat("é", 8), 5))
}

func TestWhitespaceCollapse(t *testing.T) {
	collapsed := whitespaceRun.ReplaceAllString("a  b\n\nc\t d", " ")
	assert.Equal(t, "a b c d", collapsed)
}
