package factory

import (
	"context"
	"fmt"

	"notes-reviewer/pkg/llm"
	"notes-reviewer/pkg/llm/gemini"
	"notes-reviewer/pkg/llm/huggingface"
	"notes-reviewer/pkg/llm/ollama"
)

// ProviderConfig carries what any of the supported backends may need.
type ProviderConfig struct {
	Provider string // "gemini", "ollama" or "huggingface"
	Model    string
	APIKey   string
	BaseURL  string
}

func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "huggingface":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("huggingface provider requires an API key")
		}
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
