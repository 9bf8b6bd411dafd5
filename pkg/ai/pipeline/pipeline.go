package pipeline

import (
	"context"
	"time"
	"unicode/utf8"
)

// Timeouts bounds each class of external adapter call. A zero value disables
// the bound for that class (the call then blocks on the request context).
type Timeouts struct {
	Completion    time.Duration
	Transcription time.Duration
	Download      time.Duration
}

// DefaultTimeouts mirror how long each collaborator is realistically allowed
// to take: completions are interactive, transcription jobs poll for minutes.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Completion:    60 * time.Second,
		Transcription: 10 * time.Minute,
		Download:      5 * time.Minute,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// truncate cuts s to at most max characters. Cuts on rune boundaries so
// multibyte text never ends in a partial encoding. Silent deterministic policy
// for keeping prompts inside the model's token budget, never an error.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
