// Package rephrase rewrites a follow-up utterance into a standalone search
// query using the conversation so far.
package rephrase

import (
	"context"
	"strings"

	"ai-ragchat-be/pkg/llm"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/prompt"
)

// Temperature keeps rewrites literal and repeatable.
const Temperature = 0.1

type Stage struct {
	completer rag.TextCompleter
	templates prompt.Provider
}

// NewStage expects a completer configured for low-variance sampling, see NewCompleter.
func NewStage(completer rag.TextCompleter, templates prompt.Provider) *Stage {
	return &Stage{
		completer: completer,
		templates: templates,
	}
}

// NewCompleter binds provider at the rephrase temperature.
func NewCompleter(provider llm.LLMProvider, name string, temperature float64) rag.TextCompleter {
	return rag.NewCompleter(provider, name, llm.WithTemperature(temperature))
}

// Rephrase returns the standalone query for input. With an empty history the
// model usually hands back input more or less unchanged.
func (s *Stage) Rephrase(ctx context.Context, history []rag.Message, input string) (string, error) {
	tmpl, err := s.templates.Resolve(ctx, prompt.NameRephrase)
	if err != nil {
		return "", err
	}

	system, human, err := tmpl.Render(map[string]string{prompt.VarInput: input})
	if err != nil {
		return "", err
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.SystemMessage(system))
	messages = append(messages, rag.ToLLMMessages(history)...)
	messages = append(messages, llm.UserMessage(human))

	out, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return Clean(out), nil
}

// Clean strips the wrapping a model tends to put around a bare query: outer
// whitespace, an "AI:" label copied from the few-shot examples, and one pair
// of surrounding quotes.
func Clean(out string) string {
	q := strings.TrimSpace(out)
	if len(q) >= 3 && strings.EqualFold(q[:3], "ai:") {
		q = strings.TrimSpace(q[3:])
	}
	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}, {"`", "`"}} {
		if len(q) >= len(pair[0])+len(pair[1]) && strings.HasPrefix(q, pair[0]) && strings.HasSuffix(q, pair[1]) {
			q = strings.TrimSpace(q[len(pair[0]) : len(q)-len(pair[1])])
			break
		}
	}
	return q
}
