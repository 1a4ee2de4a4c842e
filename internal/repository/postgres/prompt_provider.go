package postgres

import (
	"context"

	"ai-ragchat-be/internal/mapper"
	"ai-ragchat-be/internal/repository/specification"
	"ai-ragchat-be/internal/repository/unitofwork"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/prompt"
)

// PromptProvider resolves active prompt_templates rows by name.
type PromptProvider struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.PromptTemplateMapper
}

var _ prompt.Provider = (*PromptProvider)(nil)

func NewPromptProvider(uowFactory unitofwork.RepositoryFactory) *PromptProvider {
	return &PromptProvider{
		uowFactory: uowFactory,
		mapper:     mapper.NewPromptTemplateMapper(),
	}
}

func (p *PromptProvider) Resolve(ctx context.Context, name string) (*prompt.Template, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)

	row, err := uow.PromptTemplateRepository().FindOne(ctx,
		specification.ByTemplateName{Name: name},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &rag.TemplateNotFoundError{Name: name}
	}

	t := p.mapper.ToTemplate(row)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
