package service

import (
	"context"
	"errors"
	"sync"

	"notes-reviewer/pkg/llm"
)

type llmCall struct {
	prompt string
	opts   llm.Options
}

// fakeLLM answers prompts from a queue; an empty queue repeats the last reply.
type fakeLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	panics  bool
	calls   []llmCall
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty history")
	}
	return f.Generate(ctx, history[len(history)-1].Content, options...)
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, options ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, llmCall{prompt: prompt, opts: llm.Apply(llm.Options{}, options...)})
	if f.panics {
		panic("provider exploded")
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
