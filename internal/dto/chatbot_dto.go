package dto

// ChatTurn is one visible turn of the conversation. The client transcript is
// the source of truth; turns are never mutated server-side.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the full visible history, oldest turn first.
type ChatRequest struct {
	Messages []ChatTurn `json:"messages"`
}

type YoutubeTranscribeRequest struct {
	Url      string `json:"url" validate:"required"`
	Question string `json:"question"`
}

// ReplyResponse and ErrorResponse form the single wire envelope: exactly one
// of reply/error is ever present in a response.
type ReplyResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
