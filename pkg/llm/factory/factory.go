package factory

import (
	"fmt"
	"time"

	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/llm/huggingface"
	"ai-tutor-be/pkg/llm/ollama"
)

type Config struct {
	Provider string // "ollama" | "huggingface"
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "huggingface":
		if cfg.Model == "" {
			return nil, fmt.Errorf("huggingface provider needs a model name")
		}
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
