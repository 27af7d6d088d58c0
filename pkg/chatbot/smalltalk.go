// Package chatbot answers greetings and chit-chat with a small LLM. It never
// sees the internal documents.
package chatbot

import (
	"context"
	"fmt"

	"ai-tutor-be/internal/constant"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/store"
)

type Smalltalk struct {
	provider     llm.LLMProvider
	systemPrompt string
	window       int
	logger       logger.ILogger
}

func NewSmalltalk(provider llm.LLMProvider, log logger.ILogger) *Smalltalk {
	return &Smalltalk{
		provider:     provider,
		systemPrompt: constant.SmalltalkSystemPrompt,
		window:       constant.SmalltalkHistoryWindow,
		logger:       log,
	}
}

// Chat sends the system prompt, the tail of the history and text.
func (s *Smalltalk) Chat(ctx context.Context, history []store.Message, text string) (string, error) {
	messages := s.buildMessages(history, text)

	reply, err := s.provider.Chat(ctx, messages,
		llm.WithTemperature(constant.SmalltalkTemperature),
		llm.WithMaxTokens(constant.SmalltalkMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("smalltalk: %w", err)
	}

	s.logger.Debug("CHATBOT", "Smalltalk reply", map[string]interface{}{
		"messages": len(messages),
		"chars":    len(reply),
	})
	return reply, nil
}

func (s *Smalltalk) buildMessages(history []store.Message, text string) []llm.Message {
	if len(history) > s.window {
		history = history[len(history)-s.window:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: s.systemPrompt})
	for _, m := range history {
		role := constant.ChatMessageRoleUser
		if m.Role == store.RoleAssistant {
			role = constant.ChatMessageRoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	return append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: text})
}
