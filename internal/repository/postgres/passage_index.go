package postgres

import (
	"context"

	"ai-ragchat-be/internal/mapper"
	"ai-ragchat-be/internal/repository/unitofwork"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/search"
)

// PassageIndex runs pgvector cosine search over the passages table.
type PassageIndex struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.PassageMapper
}

var _ search.PassageSearcher = (*PassageIndex)(nil)

func NewPassageIndex(uowFactory unitofwork.RepositoryFactory) *PassageIndex {
	return &PassageIndex{
		uowFactory: uowFactory,
		mapper:     mapper.NewPassageMapper(),
	}
}

func (i *PassageIndex) SearchSimilar(ctx context.Context, vector []float32, topK int, minScore float64) ([]rag.Passage, error) {
	uow := i.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.PassageRepository().SearchSimilarWithScore(ctx, vector, topK, minScore)
	if err != nil {
		return nil, err
	}

	out := make([]rag.Passage, len(scored))
	for n, s := range scored {
		out[n] = i.mapper.ToRetrieved(s.Passage, s.Similarity)
	}
	return out, nil
}
