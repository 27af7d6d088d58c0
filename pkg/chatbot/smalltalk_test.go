package chatbot

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/store"
)

type recordingProvider struct {
	got   []llm.Message
	opts  llm.Options
	reply string
	err   error
}

func (p *recordingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.got = history
	p.opts = llm.Apply(llm.Options{}, options...)
	return p.reply, p.err
}

func (p *recordingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func TestSmalltalk_Chat(t *testing.T) {
	provider := &recordingProvider{reply: "Salut ! Prêt à réviser ?"}
	bot := NewSmalltalk(provider, logger.NewNopLogger())

	var history []store.Message
	for i := 0; i < 10; i++ {
		role := store.RoleUser
		if i%2 == 1 {
			role = store.RoleAssistant
		}
		history = append(history, store.Message{Role: role, Content: fmt.Sprintf("m%d", i)})
	}

	reply, err := bot.Chat(context.Background(), history, "bonjour")
	require.NoError(t, err)
	assert.Equal(t, "Salut ! Prêt à réviser ?", reply)

	require.Len(t, provider.got, 8, "system + 6 history + user")
	assert.Equal(t, "system", provider.got[0].Role)
	assert.Equal(t, llm.Message{Role: "user", Content: "m4"}, provider.got[1])
	assert.Equal(t, llm.Message{Role: "assistant", Content: "m9"}, provider.got[6])
	assert.Equal(t, llm.Message{Role: "user", Content: "bonjour"}, provider.got[7])
	assert.Equal(t, 0.5, provider.opts.Temperature)
	assert.Equal(t, 256, provider.opts.MaxTokens)
}

func TestSmalltalk_ProviderError(t *testing.T) {
	provider := &recordingProvider{err: errors.New("connection refused")}
	bot := NewSmalltalk(provider, logger.NewNopLogger())

	_, err := bot.Chat(context.Background(), nil, "salut")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
