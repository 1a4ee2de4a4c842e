// Package retrieval turns a standalone query into formatted prompt context.
package retrieval

import (
	"context"

	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/format"
)

type Stage struct {
	retriever rag.Retriever
}

func NewStage(retriever rag.Retriever) *Stage {
	return &Stage{retriever: retriever}
}

// Retrieve searches for query and returns the passages as a <doc> block.
// Retriever errors are returned as they are.
func (s *Stage) Retrieve(ctx context.Context, query string) (string, error) {
	passages, err := s.retriever.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return format.Documents(passages), nil
}
