// Package response synthesizes the final answer from the standalone question,
// the retrieved context and the conversation history.
package response

import (
	"context"

	"ai-ragchat-be/pkg/llm"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/prompt"
)

type Stage struct {
	completer rag.TextCompleter
	templates prompt.Provider
}

// NewStage expects a completer left at the provider's default sampling.
func NewStage(completer rag.TextCompleter, templates prompt.Provider) *Stage {
	return &Stage{
		completer: completer,
		templates: templates,
	}
}

// Synthesize asks the model to answer question from context. The model output
// is returned untouched.
func (s *Stage) Synthesize(ctx context.Context, history []rag.Message, question, docs string) (string, error) {
	tmpl, err := s.templates.Resolve(ctx, prompt.NameAnswer)
	if err != nil {
		return "", err
	}

	system, human, err := tmpl.Render(map[string]string{
		prompt.VarContext:  docs,
		prompt.VarQuestion: question,
	})
	if err != nil {
		return "", err
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.SystemMessage(system))
	messages = append(messages, rag.ToLLMMessages(history)...)
	messages = append(messages, llm.UserMessage(human))

	return s.completer.Complete(ctx, messages)
}
