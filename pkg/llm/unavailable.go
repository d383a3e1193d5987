package llm

import (
	"context"
	"fmt"
)

// Unavailable stands in for a provider that could not be configured. Every call fails with
// the configuration error, so callers degrade the same way they would for an outage.
type Unavailable struct {
	Err error
}

var _ LLMProvider = Unavailable{}

func (u Unavailable) Chat(context.Context, []Message, ...Option) (string, error) {
	return "", fmt.Errorf("llm provider unavailable: %w", u.Err)
}

func (u Unavailable) Generate(context.Context, string, ...Option) (string, error) {
	return "", fmt.Errorf("llm provider unavailable: %w", u.Err)
}
