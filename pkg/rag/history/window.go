package history

import "ai-ragchat-be/pkg/rag"

// Window selects the part of a log that is rendered into prompts. It never
// changes what is stored.
type Window interface {
	Apply(messages []rag.Message) []rag.Message
}

// WindowFunc adapts a function to Window.
type WindowFunc func(messages []rag.Message) []rag.Message

func (f WindowFunc) Apply(messages []rag.Message) []rag.Message { return f(messages) }

// Unbounded passes the whole log through.
var Unbounded Window = WindowFunc(func(messages []rag.Message) []rag.Message {
	return messages
})

// LastTurns keeps the trailing n user/assistant pairs. n <= 0 is Unbounded.
func LastTurns(n int) Window {
	if n <= 0 {
		return Unbounded
	}
	return WindowFunc(func(messages []rag.Message) []rag.Message {
		limit := 2 * n
		if len(messages) <= limit {
			return messages
		}
		return messages[len(messages)-limit:]
	})
}
