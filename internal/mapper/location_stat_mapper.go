package mapper

import (
	"encoding/json"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/model"

	"gorm.io/datatypes"
)

type LocationStatMapper struct{}

func NewLocationStatMapper() *LocationStatMapper {
	return &LocationStatMapper{}
}

func (m *LocationStatMapper) ToEntity(s *model.LocationStat) *entity.LocationStat {
	if s == nil {
		return nil
	}

	counts := make(map[string]int)
	if len(s.CategoryCounts) > 0 {
		// A malformed column yields empty counts rather than a failed read.
		_ = json.Unmarshal(s.CategoryCounts, &counts)
	}

	return &entity.LocationStat{
		Id:             s.Id,
		VisitType:      entity.VisitType(s.VisitType),
		LocationId:     s.LocationId,
		VisitCount:     s.VisitCount,
		RatedCount:     s.RatedCount,
		AverageScore:   s.AverageScore,
		CategoryCounts: counts,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *LocationStatMapper) ToModel(s *entity.LocationStat) *model.LocationStat {
	if s == nil {
		return nil
	}

	counts := s.CategoryCounts
	if counts == nil {
		counts = make(map[string]int)
	}
	raw, _ := json.Marshal(counts)

	return &model.LocationStat{
		Id:             s.Id,
		VisitType:      string(s.VisitType),
		LocationId:     s.LocationId,
		VisitCount:     s.VisitCount,
		RatedCount:     s.RatedCount,
		AverageScore:   s.AverageScore,
		CategoryCounts: datatypes.JSON(raw),
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *LocationStatMapper) ToEntities(stats []*model.LocationStat) []*entity.LocationStat {
	entities := make([]*entity.LocationStat, len(stats))
	for i, s := range stats {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
