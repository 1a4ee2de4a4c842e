package mapper

import (
	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/model"
	"ai-ragchat-be/pkg/rag/prompt"
)

type PromptTemplateMapper struct{}

func NewPromptTemplateMapper() *PromptTemplateMapper {
	return &PromptTemplateMapper{}
}

func (m *PromptTemplateMapper) ToEntity(t *model.PromptTemplate) *entity.PromptTemplate {
	if t == nil {
		return nil
	}

	var updatedAt = t.UpdatedAt
	return &entity.PromptTemplate{
		Id:          t.Id,
		Name:        t.Name,
		Description: t.Description,
		System:      t.System,
		Human:       t.Human,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   &updatedAt,
	}
}

func (m *PromptTemplateMapper) ToModel(t *entity.PromptTemplate) *model.PromptTemplate {
	if t == nil {
		return nil
	}
	out := &model.PromptTemplate{
		Id:          t.Id,
		Name:        t.Name,
		Description: t.Description,
		System:      t.System,
		Human:       t.Human,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
	if t.UpdatedAt != nil {
		out.UpdatedAt = *t.UpdatedAt
	}
	return out
}

func (m *PromptTemplateMapper) ToTemplate(t *entity.PromptTemplate) *prompt.Template {
	if t == nil {
		return nil
	}
	return &prompt.Template{Name: t.Name, System: t.System, Human: t.Human}
}
