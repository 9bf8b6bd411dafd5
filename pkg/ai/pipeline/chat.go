package pipeline

import (
	"context"
	"strings"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
)

// ChatPipeline answers a plain conversation turn: one completion call over the
// full visible history with the tutor system prompt prepended. The server
// keeps no session; the client-supplied history is the whole state.
type ChatPipeline struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	timeouts    Timeouts
}

func NewChatPipeline(llmProvider llm.LLMProvider, log logger.ILogger, timeouts Timeouts) *ChatPipeline {
	return &ChatPipeline{
		llmProvider: llmProvider,
		logger:      log,
		timeouts:    timeouts,
	}
}

func (p *ChatPipeline) Execute(ctx context.Context, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.ChatSystemPrompt,
	})
	messages = append(messages, history...)

	callCtx, cancel := withTimeout(ctx, p.timeouts.Completion)
	defer cancel()

	reply, err := p.llmProvider.Chat(callCtx, messages, llm.WithTemperature(0.7))
	if err != nil {
		p.logger.Error("chat_pipeline", "completion call failed", map[string]interface{}{"error": err.Error()})
		return "", fromAdapterError(err, KindUpstream, constant.MsgBackendDisconnected)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		// Never a 200 with an empty payload.
		return "", newError(KindEmptyReply, constant.MsgEmptyChatReply, nil)
	}

	return reply, nil
}
