package mapper

import (
	"place-journal-be/internal/entity"
	"place-journal-be/internal/model"
)

type GeographyMapper struct{}

func NewGeographyMapper() *GeographyMapper {
	return &GeographyMapper{}
}

func (m *GeographyMapper) CountryToEntity(c *model.Country) *entity.Country {
	if c == nil {
		return nil
	}
	return &entity.Country{
		Id:        c.Id,
		Name:      c.Name,
		Continent: c.Continent,
		CreatedAt: c.CreatedAt,
	}
}

func (m *GeographyMapper) CountriesToEntities(countries []*model.Country) []*entity.Country {
	entities := make([]*entity.Country, len(countries))
	for i, c := range countries {
		entities[i] = m.CountryToEntity(c)
	}
	return entities
}

func (m *GeographyMapper) CityToEntity(c *model.City) *entity.City {
	if c == nil {
		return nil
	}
	return &entity.City{
		Id:           c.Id,
		Name:         c.Name,
		MetroAreaKey: c.MetroAreaKey,
		CountryId:    c.CountryId,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *GeographyMapper) CitiesToEntities(cities []*model.City) []*entity.City {
	entities := make([]*entity.City, len(cities))
	for i, c := range cities {
		entities[i] = m.CityToEntity(c)
	}
	return entities
}

func (m *GeographyMapper) BoroughToEntity(b *model.Borough) *entity.Borough {
	if b == nil {
		return nil
	}
	return &entity.Borough{
		Id:        b.Id,
		Name:      b.Name,
		CityId:    b.CityId,
		CreatedAt: b.CreatedAt,
	}
}

func (m *GeographyMapper) BoroughsToEntities(boroughs []*model.Borough) []*entity.Borough {
	entities := make([]*entity.Borough, len(boroughs))
	for i, b := range boroughs {
		entities[i] = m.BoroughToEntity(b)
	}
	return entities
}

func (m *GeographyMapper) NeighborhoodToEntity(n *model.Neighborhood) *entity.Neighborhood {
	if n == nil {
		return nil
	}
	return &entity.Neighborhood{
		Id:        n.Id,
		Name:      n.Name,
		BoroughId: n.BoroughId,
		CreatedAt: n.CreatedAt,
	}
}

func (m *GeographyMapper) NeighborhoodsToEntities(neighborhoods []*model.Neighborhood) []*entity.Neighborhood {
	entities := make([]*entity.Neighborhood, len(neighborhoods))
	for i, n := range neighborhoods {
		entities[i] = m.NeighborhoodToEntity(n)
	}
	return entities
}
