package service

import (
	"context"
	"encoding/json"

	"ai-ragchat-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishIndexDocument(ctx context.Context, payload *dto.PublishIndexDocumentMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) PublishIndexDocument(ctx context.Context, payload *dto.PublishIndexDocumentMessage) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topicName, msg)
}
