package service

import (
	"context"
	"strings"

	"ai-ragchat-be/internal/dto"
)

type IDocumentService interface {
	Queue(ctx context.Context, userID string, request *dto.IndexDocumentRequest) (*dto.IndexDocumentResponse, error)
}

type documentService struct {
	publisher IPublisherService
}

func NewDocumentService(publisher IPublisherService) IDocumentService {
	return &documentService{publisher: publisher}
}

// Queue hands the document to the indexer. Re-submitting the same title
// replaces the earlier passages.
func (s *documentService) Queue(ctx context.Context, userID string, request *dto.IndexDocumentRequest) (*dto.IndexDocumentResponse, error) {
	source := strings.TrimSpace(request.Title)

	metadata := make(map[string]interface{}, len(request.Metadata)+1)
	for k, v := range request.Metadata {
		metadata[k] = v
	}
	if userID != "" {
		metadata["submitted_by"] = userID
	}

	err := s.publisher.PublishIndexDocument(ctx, &dto.PublishIndexDocumentMessage{
		Source:   source,
		Content:  request.Content,
		Metadata: metadata,
	})
	if err != nil {
		return nil, err
	}

	return &dto.IndexDocumentResponse{Source: source, Queued: true}, nil
}
