package mapper

import (
	"time"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/model"
	"ai-ragchat-be/pkg/rag"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:         s.Id,
		SessionKey: s.SessionKey,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:         s.Id,
		SessionKey: s.SessionKey,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		Seq:           c.Seq,
		Role:          c.Role,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		Seq:           c.Seq,
		Role:          c.Role,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, c := range messages {
		entities[i] = m.ChatMessageToEntity(c)
	}
	return entities
}

// ChatMessagesToHistory turns stored rows, already ordered by seq, into a history log.
func (m *ChatMapper) ChatMessagesToHistory(messages []*entity.ChatMessage) []rag.Message {
	out := make([]rag.Message, len(messages))
	for i, c := range messages {
		out[i] = rag.Message{Role: c.Role, Content: c.Content}
	}
	return out
}

// HistoryToChatMessages numbers new messages from firstSeq onwards.
func (m *ChatMapper) HistoryToChatMessages(sessionId uuid.UUID, firstSeq int, messages []rag.Message) []*entity.ChatMessage {
	out := make([]*entity.ChatMessage, len(messages))
	for i, msg := range messages {
		out[i] = &entity.ChatMessage{
			ChatSessionId: sessionId,
			Seq:           firstSeq + i,
			Role:          msg.Role,
			Content:       msg.Content,
		}
	}
	return out
}
