package redis

import (
	"context"
	"encoding/json"
	"time"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/repository/contract"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "ranking:session:"

// SessionRepository keeps comparison sessions in Redis. Every write carries
// the remaining time-to-expiry so the store evicts stale sessions on its
// own; a missing key and an expired key are indistinguishable, as required.
type SessionRepository struct {
	client *goredis.Client
}

func NewSessionRepository(client *goredis.Client) contract.ComparisonSessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.ComparisonSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Already past its window; writing it back would resurrect it.
		return r.Delete(ctx, session.Id)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(session.Id), payload, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.ComparisonSession, error) {
	payload, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session entity.ComparisonSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

// DeleteExpired scans for session keys whose document outlived its window.
// Redis normally evicts them first, so this usually removes nothing.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	deleted := 0
	now := time.Now()

	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		payload, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == goredis.Nil {
				continue
			}
			return deleted, err
		}

		var session entity.ComparisonSession
		if err := json.Unmarshal(payload, &session); err != nil {
			// Unreadable session documents are dropped rather than kept forever.
			if delErr := r.client.Del(ctx, key).Err(); delErr != nil {
				return deleted, delErr
			}
			deleted++
			continue
		}

		if session.ExpiresAt.Before(now) {
			if err := r.client.Del(ctx, key).Err(); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	return deleted, nil
}
