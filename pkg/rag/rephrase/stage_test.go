package rephrase

import (
	"context"
	"errors"
	"testing"

	"ai-ragchat-be/pkg/llm"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCompleter struct {
	out      string
	err      error
	messages []llm.Message
}

func (c *recordingCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	c.messages = messages
	return c.out, c.err
}

func TestRephraseBuildsPrompt(t *testing.T) {
	completer := &recordingCompleter{out: "  \"Spicy Aglio e Olio pasta recipe\"\n"}
	stage := NewStage(completer, prompt.NewDefaultRegistry())
	history := []rag.Message{
		rag.UserMessage("Find me a pasta recipe"),
		rag.AssistantMessage("Here is a pasta recipe: Aglio e Olio"),
	}

	query, err := stage.Rephrase(context.Background(), history, "Make it spicier")

	require.NoError(t, err)
	assert.Equal(t, "Spicy Aglio e Olio pasta recipe", query)

	require.Len(t, completer.messages, 4)
	assert.Equal(t, llm.RoleSystem, completer.messages[0].Role)
	assert.Contains(t, completer.messages[0].Content, "chat_history:")
	assert.Equal(t, llm.Message{Role: "user", Content: "Find me a pasta recipe"}, completer.messages[1])
	assert.Equal(t, llm.Message{Role: "assistant", Content: "Here is a pasta recipe: Aglio e Olio"}, completer.messages[2])
	assert.Equal(t, llm.Message{Role: "user", Content: "Follow-Up Question: Make it spicier"}, completer.messages[3])
}

func TestRephraseEmptyHistory(t *testing.T) {
	completer := &recordingCompleter{out: "Find me a pasta recipe"}
	stage := NewStage(completer, prompt.NewDefaultRegistry())

	query, err := stage.Rephrase(context.Background(), nil, "Find me a pasta recipe")

	require.NoError(t, err)
	assert.Equal(t, "Find me a pasta recipe", query)
	assert.Len(t, completer.messages, 2)
}

func TestRephrasePropagatesCompletionError(t *testing.T) {
	cause := &rag.CompletionError{Provider: "rephrase", Err: errors.New("rate limited")}
	stage := NewStage(&recordingCompleter{err: cause}, prompt.NewDefaultRegistry())

	_, err := stage.Rephrase(context.Background(), nil, "hi")

	assert.Same(t, cause, err)
}

func TestRephraseMissingTemplate(t *testing.T) {
	empty, err := prompt.NewRegistry()
	require.NoError(t, err)
	completer := &recordingCompleter{}

	_, err = NewStage(completer, empty).Rephrase(context.Background(), nil, "hi")

	assert.ErrorIs(t, err, rag.ErrTemplateNotFound)
	assert.Nil(t, completer.messages)
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain query", want: "plain query"},
		{in: "  padded \n", want: "padded"},
		{in: `"quoted"`, want: "quoted"},
		{in: "'single'", want: "single"},
		{in: "“curly”", want: "curly"},
		{in: `AI: "Low-carb egg breakfast recipes"`, want: "Low-carb egg breakfast recipes"},
		{in: `say "this" please`, want: `say "this" please`},
		{in: `"`, want: `"`},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}
