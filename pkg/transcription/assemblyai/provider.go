package assemblyai

import (
	"ai-tutor-be/pkg/transcription"
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

type AssemblyAIProvider struct {
	client *aai.Client
}

// Ensure AssemblyAIProvider implements TranscriptionProvider
var _ transcription.TranscriptionProvider = &AssemblyAIProvider{}

func NewAssemblyAIProvider(apiKey string) *AssemblyAIProvider {
	return &AssemblyAIProvider{
		client: aai.NewClient(apiKey),
	}
}

// TranscribeFile uploads the local audio file and polls the job to completion.
// An engine-reported "error" status is returned as an error; a completed job
// with empty text is NOT an error here; callers decide what empty text means.
func (p *AssemblyAIProvider) TranscribeFile(ctx context.Context, audioPath string, diarize bool) (*transcription.Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(diarize),
	}

	transcript, err := p.client.Transcripts.TranscribeFromReader(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		detail := "unknown engine error"
		if transcript.Error != nil {
			detail = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai engine error: %s", detail)
	}

	text := ""
	if transcript.Text != nil {
		text = *transcript.Text
	}

	return &transcription.Result{Text: text}, nil
}
