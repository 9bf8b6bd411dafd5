package transcription

import (
	"context"
)

// Result is the outcome of one transcription call. Providers report an engine
// error status separately from transport errors so callers can tell a failed
// job apart from a job that completed with no speech.
type Result struct {
	Text string
}

// TranscriptionProvider defines the contract for any speech-to-text backend
type TranscriptionProvider interface {
	// TranscribeFile uploads a local audio file and returns its transcript.
	// diarize toggles speaker labels on the engine side.
	TranscribeFile(ctx context.Context, audioPath string, diarize bool) (*Result, error)
}
