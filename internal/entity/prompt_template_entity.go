package entity

import (
	"time"

	"github.com/google/uuid"
)

type PromptTemplate struct {
	Id          uuid.UUID
	Name        string
	Description string
	System      string
	Human       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
