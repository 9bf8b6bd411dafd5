package pipeline

import (
	"context"
	"errors"
	"fmt"

	"ai-tutor-be/internal/constant"
)

// Kind classifies a pipeline failure. Adapter-reported errors and
// success-with-empty-text are deliberately distinct kinds so monitoring can
// tell them apart, even though both surface to the user as failures.
type Kind string

const (
	KindBadInput         Kind = "bad_input"
	KindUnsupportedFile  Kind = "unsupported_file"
	KindDownloadFailed   Kind = "download_failed"
	KindTranscriptFailed Kind = "transcript_failed"
	KindEmptyTranscript  Kind = "empty_transcript"
	KindNoText           Kind = "no_text"
	KindEmptyReply       Kind = "empty_reply"
	KindTimeout          Kind = "timeout"
	KindUpstream         Kind = "upstream"
)

// Error is the failure outcome of one pipeline stage. UserMessage is the only
// part shown to the client; Err carries the technical detail for the logs.
type Error struct {
	Kind        Kind
	UserMessage string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the failure was caused by the request itself,
// so the controller can answer 400 instead of 500.
func (e *Error) IsClientError() bool {
	return e.Kind == KindBadInput || e.Kind == KindUnsupportedFile
}

func newError(kind Kind, userMessage string, err error) *Error {
	return &Error{Kind: kind, UserMessage: userMessage, Err: err}
}

// fromAdapterError wraps an adapter failure, promoting exceeded deadlines to
// the timeout kind with its own user message.
func fromAdapterError(err error, kind Kind, userMessage string) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, constant.MsgServiceTimeout, err)
	}
	return newError(kind, userMessage, err)
}
