package mapper

import (
	"time"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/model"
	"place-journal-be/pkg/ranking"
)

type VisitMapper struct{}

func NewVisitMapper() *VisitMapper {
	return &VisitMapper{}
}

func (m *VisitMapper) ToEntity(v *model.Visit) *entity.Visit {
	if v == nil {
		return nil
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		updatedAt = &t
	}

	return &entity.Visit{
		Id:             v.Id,
		UserId:         v.UserId,
		VisitType:      entity.VisitType(v.VisitType),
		NeighborhoodId: v.NeighborhoodId,
		CountryId:      v.CountryId,
		Visited:        v.Visited,
		Notes:          v.Notes,
		VisitDate:      v.VisitDate,
		Score:          v.Score,
		Category:       ranking.Category(v.Category),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *VisitMapper) ToModel(v *entity.Visit) *model.Visit {
	if v == nil {
		return nil
	}

	var updatedAt time.Time
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	return &model.Visit{
		Id:             v.Id,
		UserId:         v.UserId,
		VisitType:      string(v.VisitType),
		NeighborhoodId: v.NeighborhoodId,
		CountryId:      v.CountryId,
		Visited:        v.Visited,
		Notes:          v.Notes,
		VisitDate:      v.VisitDate,
		Score:          v.Score,
		Category:       string(v.Category),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *VisitMapper) ToEntities(visits []*model.Visit) []*entity.Visit {
	entities := make([]*entity.Visit, len(visits))
	for i, v := range visits {
		entities[i] = m.ToEntity(v)
	}
	return entities
}
