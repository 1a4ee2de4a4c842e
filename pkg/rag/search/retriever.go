// Package search implements rag.Retriever over an embedding model and a
// vector index.
package search

import (
	"context"
	"errors"

	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/pkg/embedding"
	"ai-ragchat-be/pkg/rag"
)

const module = "RETRIEVER"

// DefaultTopK matches the retriever default the chat prompts were tuned for.
const DefaultTopK = 4

// PassageSearcher is the vector index.
type PassageSearcher interface {
	SearchSimilar(ctx context.Context, vector []float32, topK int, minScore float64) ([]rag.Passage, error)
}

// Config encapsulates search parameters
type Config struct {
	TopK int
	// MinScore drops passages whose cosine similarity is below it.
	MinScore float64
}

func DefaultConfig() Config {
	return Config{TopK: DefaultTopK}
}

// VectorRetriever embeds the query and asks the index for the nearest passages.
type VectorRetriever struct {
	embedder embedding.EmbeddingProvider
	index    PassageSearcher
	config   Config
	logger   logger.ILogger
}

var _ rag.Retriever = (*VectorRetriever)(nil)

func NewVectorRetriever(embedder embedding.EmbeddingProvider, index PassageSearcher, config Config, log logger.ILogger) *VectorRetriever {
	if config.TopK <= 0 {
		config.TopK = DefaultTopK
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &VectorRetriever{embedder: embedder, index: index, config: config, logger: log}
}

func (r *VectorRetriever) Search(ctx context.Context, query string) ([]rag.Passage, error) {
	res, err := r.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, wrap("embed", err)
	}

	results, err := r.index.SearchSimilar(ctx, res.Embedding.Values, r.config.TopK, r.config.MinScore)
	if err != nil {
		return nil, wrap("search", err)
	}

	passages := dedupe(results)
	r.logger.Debug(module, "Vector search finished", map[string]interface{}{
		"raw":      len(results),
		"returned": len(passages),
		"top_k":    r.config.TopK,
	})
	return passages, nil
}

// dedupe keeps the first, highest ranked, occurrence of each passage id.
func dedupe(results []rag.Passage) []rag.Passage {
	out := make([]rag.Passage, 0, len(results))
	seen := make(map[string]bool, len(results))
	for _, p := range results {
		if p.ID != "" {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
		}
		out = append(out, p)
	}
	return out
}

func wrap(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var re *rag.RetrievalError
	if errors.As(err, &re) {
		return err
	}
	return &rag.RetrievalError{Op: op, Err: err}
}
