package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/internal/repository/unitofwork"
	"ai-ragchat-be/pkg/embedding"
	"ai-ragchat-be/pkg/events"
	"ai-ragchat-be/pkg/utils"

	"github.com/google/uuid"
)

const indexingModule = "INDEXER"

type IIndexingService interface {
	// IndexDocument replaces every passage of source and returns the chunk count.
	IndexDocument(ctx context.Context, source, content string, metadata map[string]interface{}) (int, error)
}

type ChunkConfig struct {
	Size    int
	Overlap int
}

type indexingService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	chunks            ChunkConfig
	publisher         events.Publisher
	logger            logger.ILogger
}

// NewIndexingService accepts a nil publisher.
func NewIndexingService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	chunks ChunkConfig,
	publisher events.Publisher,
	log logger.ILogger,
) IIndexingService {
	if chunks.Size <= 0 {
		chunks.Size = 1500
	}
	return &indexingService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		chunks:            chunks,
		publisher:         publisher,
		logger:            log,
	}
}

func (s *indexingService) IndexDocument(ctx context.Context, source, content string, metadata map[string]interface{}) (n int, err error) {
	if strings.TrimSpace(source) == "" {
		return 0, fmt.Errorf("document source is required")
	}

	chunks := utils.SplitText(withHeader(source, content, metadata), s.chunks.Size, s.chunks.Overlap)
	s.logger.Info(indexingModule, "Indexing document", map[string]interface{}{
		"source": source,
		"chunks": len(chunks),
	})

	passages := make([]*entity.Passage, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := s.embeddingProvider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %s: %w", i, source, err)
		}

		passages = append(passages, &entity.Passage{
			Id:         uuid.New(),
			Source:     source,
			ChunkIndex: i,
			Content:    chunk,
			Metadata:   metadata,
			Embedding:  res.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	if err = uow.PassageRepository().DeleteBySource(ctx, source); err != nil {
		return 0, fmt.Errorf("delete old passages: %w", err)
	}
	if err = uow.PassageRepository().CreateBulk(ctx, passages); err != nil {
		return 0, fmt.Errorf("create passages: %w", err)
	}
	if err = uow.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info(indexingModule, "Document indexed", map[string]interface{}{
		"source": source,
		"chunks": len(passages),
	})
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.DocumentIndexed(source, len(passages))); err != nil {
			s.logger.Warn(indexingModule, "Failed to publish event", map[string]interface{}{
				"source": source,
				"error":  err.Error(),
			})
		}
	}
	return len(passages), nil
}

// withHeader prepends the title and scalar metadata as "key: value" front
// matter so they are searchable alongside the body.
func withHeader(source, content string, metadata map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", source)

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := metadata[k].(type) {
		case string, float64, int, bool:
			fmt.Fprintf(&b, "%s: %v\n", k, v)
		}
	}

	b.WriteString("\n")
	b.WriteString(content)
	return b.String()
}
