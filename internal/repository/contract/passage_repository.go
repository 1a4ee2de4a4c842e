package contract

import (
	"context"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/repository/specification"
)

// ScoredPassage wraps Passage with its similarity score
type ScoredPassage struct {
	Passage    *entity.Passage
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type PassageRepository interface {
	CreateBulk(ctx context.Context, passages []*entity.Passage) error
	// DeleteBySource hard deletes a source's chunks so it can be re-indexed.
	DeleteBySource(ctx context.Context, source string) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredPassage, error)
}
