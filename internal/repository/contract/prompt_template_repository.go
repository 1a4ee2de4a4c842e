package contract

import (
	"context"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/repository/specification"
)

type PromptTemplateRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PromptTemplate, error)
	Upsert(ctx context.Context, template *entity.PromptTemplate) error
}
