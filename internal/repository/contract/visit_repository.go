package contract

import (
	"context"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoreUpdate is one row of a rebalance batch.
type ScoreUpdate struct {
	VisitId uuid.UUID
	Score   float64
}

type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	Update(ctx context.Context, visit *entity.Visit) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visit, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Visit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// BulkUpdateScores applies a rebalance batch in a single transaction.
	BulkUpdateScores(ctx context.Context, updates []ScoreUpdate) error
}
