package rag

import (
	"context"
	"errors"

	"ai-ragchat-be/pkg/llm"
)

// Completer adapts an llm.LLMProvider into a TextCompleter with fixed options.
type Completer struct {
	provider llm.LLMProvider
	name     string
	options  []llm.Option
}

var _ TextCompleter = (*Completer)(nil)

// NewCompleter binds a provider to a set of call options. The name is only
// used in error messages.
func NewCompleter(provider llm.LLMProvider, name string, options ...llm.Option) *Completer {
	return &Completer{
		provider: provider,
		name:     name,
		options:  options,
	}
}

func (c *Completer) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	out, err := c.provider.Chat(ctx, messages, c.options...)
	if err != nil {
		// Cancellation is the caller's doing, not a model failure.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &CompletionError{Provider: c.name, Err: err}
	}
	return out, nil
}
