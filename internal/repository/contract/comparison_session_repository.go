package contract

import (
	"context"

	"place-journal-be/internal/entity"

	"github.com/google/uuid"
)

// ComparisonSessionRepository persists binary-search sessions in a store
// with native key expiry; Get must report missing-or-expired identically.
type ComparisonSessionRepository interface {
	Save(ctx context.Context, session *entity.ComparisonSession) error
	Get(ctx context.Context, id uuid.UUID) (*entity.ComparisonSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired is a safety-net sweep on top of the store's own TTL
	// expiry. Returns the number of sessions removed.
	DeleteExpired(ctx context.Context) (int, error)
}
