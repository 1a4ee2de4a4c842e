package service

import (
	"context"
	"encoding/json"

	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// maxAttempts bounds redelivery of a failing document.
const maxAttempts = 3

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	indexer    IIndexingService
	logger     logger.ILogger

	// attempts is only touched by the consuming goroutine.
	attempts map[string]int
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	indexer IIndexingService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		indexer:    indexer,
		logger:     log,
		attempts:   make(map[string]int),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(indexingModule, "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if _, err := cs.indexer.IndexDocument(ctx, payload.Source, payload.Content, payload.Metadata); err != nil {
		cs.attempts[msg.UUID]++
		attempt := cs.attempts[msg.UUID]
		cs.logger.Error(indexingModule, "Failed to index document", map[string]interface{}{
			"message_id": msg.UUID,
			"source":     payload.Source,
			"attempt":    attempt,
			"error":      err,
		})
		if attempt < maxAttempts && ctx.Err() == nil {
			msg.Nack()
			return
		}
		delete(cs.attempts, msg.UUID)
		msg.Ack()
		return
	}

	delete(cs.attempts, msg.UUID)
	msg.Ack()
}
