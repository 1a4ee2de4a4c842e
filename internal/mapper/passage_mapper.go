package mapper

import (
	"time"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/model"
	"ai-ragchat-be/pkg/rag"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PassageMapper struct{}

func NewPassageMapper() *PassageMapper {
	return &PassageMapper{}
}

func (m *PassageMapper) ToEntity(p *model.Passage) *entity.Passage {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Passage{
		Id:         p.Id,
		Source:     p.Source,
		ChunkIndex: p.ChunkIndex,
		Content:    p.Content,
		Metadata:   map[string]interface{}(p.Metadata),
		Embedding:  p.Embedding.Slice(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  p.DeletedAt.Valid,
	}
}

func (m *PassageMapper) ToModel(p *entity.Passage) *model.Passage {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Passage{
		Id:         p.Id,
		Source:     p.Source,
		ChunkIndex: p.ChunkIndex,
		Content:    p.Content,
		Metadata:   datatypes.JSONMap(p.Metadata),
		Embedding:  pgvector.NewVector(p.Embedding),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *PassageMapper) ToModels(passages []*entity.Passage) []*model.Passage {
	models := make([]*model.Passage, len(passages))
	for i, p := range passages {
		models[i] = m.ToModel(p)
	}
	return models
}

// ToRetrieved exposes a stored passage to the pipeline. Source and chunk
// index travel in the metadata so callers can cite them.
func (m *PassageMapper) ToRetrieved(p *entity.Passage, similarity float64) rag.Passage {
	meta := make(map[string]interface{}, len(p.Metadata)+2)
	for k, v := range p.Metadata {
		meta[k] = v
	}
	meta["source"] = p.Source
	meta["chunk_index"] = p.ChunkIndex

	return rag.Passage{
		ID:       p.Id.String(),
		Text:     p.Content,
		Score:    similarity,
		Metadata: meta,
	}
}
