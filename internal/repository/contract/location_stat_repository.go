package contract

import (
	"context"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LocationStatRepository interface {
	// Upsert writes a stat row keyed by (visit type, location id).
	Upsert(ctx context.Context, stat *entity.LocationStat) error
	FindByLocation(ctx context.Context, visitType entity.VisitType, locationId uuid.UUID) (*entity.LocationStat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LocationStat, error)
}
