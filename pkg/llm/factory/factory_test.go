package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-tutor-be/pkg/llm/huggingface"
	"ai-tutor-be/pkg/llm/ollama"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{})
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	p, err = NewLLMProvider(Config{Provider: "huggingface", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &huggingface.HuggingFaceProvider{}, p)

	_, err = NewLLMProvider(Config{Provider: "huggingface"})
	assert.Error(t, err)

	_, err = NewLLMProvider(Config{Provider: "gpt"})
	assert.EqualError(t, err, "unsupported LLM provider: gpt")
}
