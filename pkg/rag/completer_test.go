package rag_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-ragchat-be/pkg/llm"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/rephrase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply    string
	err      error
	messages []llm.Message
	options  *llm.Options
}

func (f *fakeProvider) Chat(_ context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.messages = history
	f.options = llm.Apply(options...)
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{llm.UserMessage(prompt)}, options...)
}

func TestCompleterPassesMessagesAndReply(t *testing.T) {
	provider := &fakeProvider{reply: "Aglio e Olio"}
	c := rag.NewCompleter(provider, "ollama")

	msgs := []llm.Message{llm.SystemMessage("sys"), llm.UserMessage("pasta?")}
	out, err := c.Complete(context.Background(), msgs)

	require.NoError(t, err)
	assert.Equal(t, "Aglio e Olio", out)
	assert.Equal(t, msgs, provider.messages)
}

func TestAnswerCompleterUsesProviderDefaultTemperature(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}

	_, err := rag.NewCompleter(provider, "ollama").Complete(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, provider.options.Temperature)
}

func TestRephraseCompleterIsLowVariance(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}

	_, err := rephrase.NewCompleter(provider, "ollama", rephrase.Temperature).Complete(context.Background(), nil)

	require.NoError(t, err)
	require.NotNil(t, provider.options.Temperature)
	assert.InDelta(t, 0.1, *provider.options.Temperature, 1e-9)
}

func TestCompleterClassifiesProviderFailures(t *testing.T) {
	cause := errors.New("connection refused")
	provider := &fakeProvider{err: cause}

	_, err := rag.NewCompleter(provider, "openai").Complete(context.Background(), nil)

	var completionErr *rag.CompletionError
	require.ErrorAs(t, err, &completionErr)
	assert.Equal(t, "openai", completionErr.Provider)
	assert.ErrorIs(t, err, rag.ErrCompletion)
	assert.ErrorIs(t, err, cause)
}

func TestCompleterPassesCancellationThrough(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"canceled", context.Canceled},
		{"deadline", context.DeadlineExceeded},
		{"wrapped", fmt.Errorf("ollama request failed: %w", context.Canceled)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{err: tt.err}

			_, err := rephrase.NewCompleter(provider, "ollama", rephrase.Temperature).Complete(context.Background(), nil)

			assert.Equal(t, tt.err, err)
			assert.False(t, errors.Is(err, rag.ErrCompletion))
		})
	}
}
