package contract

import (
	"context"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/repository/specification"
)

// Reference geography is read-only at runtime; writes happen through
// migrate/seed tooling only.

type CountryRepository interface {
	Create(ctx context.Context, country *entity.Country) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Country, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Country, error)
}

type CityRepository interface {
	Create(ctx context.Context, city *entity.City) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.City, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.City, error)
}

type BoroughRepository interface {
	Create(ctx context.Context, borough *entity.Borough) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Borough, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Borough, error)
}

type NeighborhoodRepository interface {
	Create(ctx context.Context, neighborhood *entity.Neighborhood) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Neighborhood, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Neighborhood, error)
}
