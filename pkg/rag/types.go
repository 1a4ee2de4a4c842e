// Package rag holds the shared shapes of the conversational retrieval pipeline:
// history messages, retrieved passages, per-turn state and the collaborator
// contracts the stages depend on.
package rag

import (
	"context"

	"ai-ragchat-be/pkg/llm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a session history log.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Passage is a reference text returned by a Retriever. Only Text is used by
// the pipeline; the rest is carried for callers that want citations.
type Passage struct {
	ID       string                 `json:"id,omitempty"`
	Text     string                 `json:"text"`
	Score    float64                `json:"score,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// State accumulates through the stages of a single turn.
type State struct {
	Input    string
	Question string
	Context  string
}

// Retriever returns passages relevant to a query, most relevant first.
type Retriever interface {
	Search(ctx context.Context, query string) ([]Passage, error)
}

// TextCompleter turns an ordered prompt into model output.
type TextCompleter interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// ToLLMMessages converts history entries into provider messages, preserving order.
func ToLLMMessages(history []Message) []llm.Message {
	out := make([]llm.Message, len(history))
	for i, m := range history {
		out[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
