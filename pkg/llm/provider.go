package llm

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
	Parts   []Part // optional multi-part content (vision); overrides Content when set
}

// Part is one segment of a multi-part message: plain text or an inline image
// referenced by a data URL.
type Part struct {
	Text     string
	ImageURL string
}

// ImageMessage builds a single user message pairing a text instruction with an
// inline base64 image, the shape vision-capable chat models expect.
func ImageMessage(text, mimeType string, imageData []byte) Message {
	return Message{
		Role: "user",
		Parts: []Part{
			{Text: text},
			{ImageURL: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))},
		},
	}
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
