package factory

import (
	"context"
	"testing"

	"notes-reviewer/pkg/llm/huggingface"
	"notes-reviewer/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewLLMProvider(ctx, ProviderConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	p, err = NewLLMProvider(ctx, ProviderConfig{Provider: "huggingface", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &huggingface.HuggingFaceProvider{}, p)

	_, err = NewLLMProvider(ctx, ProviderConfig{Provider: "huggingface"})
	assert.Error(t, err)

	_, err = NewLLMProvider(ctx, ProviderConfig{Provider: "gemini"})
	assert.Error(t, err, "gemini needs an API key")

	_, err = NewLLMProvider(ctx, ProviderConfig{Provider: "openai"})
	assert.Error(t, err)
}
