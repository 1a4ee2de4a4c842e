package implementation

import (
	"context"
	"errors"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/mapper"
	"ai-ragchat-be/internal/model"
	"ai-ragchat-be/internal/repository/contract"
	"ai-ragchat-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromptTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromptTemplateMapper
}

func NewPromptTemplateRepository(db *gorm.DB) contract.PromptTemplateRepository {
	return &PromptTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromptTemplateMapper(),
	}
}

func (r *PromptTemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PromptTemplate, error) {
	var m model.PromptTemplate
	query := specification.And(specs).Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PromptTemplateRepositoryImpl) Upsert(ctx context.Context, template *entity.PromptTemplate) error {
	m := r.mapper.ToModel(template)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "system", "human", "is_active", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*template = *r.mapper.ToEntity(m)
	return nil
}
