package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Passage struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source     string            `gorm:"type:varchar(500);not null;index"` // File path or document title
	ChunkIndex int               `gorm:"default:0"`                        // 0-based index for ordering
	Content    string            `gorm:"type:text;not null"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	Embedding  pgvector.Vector   `gorm:"type:vector(768)"` // nomic-embed-text and text-embedding-004 both use 768 dimensions
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt    `gorm:"index"`
}

func (Passage) TableName() string {
	return "passages"
}
