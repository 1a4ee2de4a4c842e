package entity

import (
	"time"

	"github.com/google/uuid"
)

type Passage struct {
	Id         uuid.UUID
	Source     string
	ChunkIndex int
	Content    string
	Metadata   map[string]interface{}
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
