package main

import (
	"context"
	"log"

	"place-journal-be/internal/config"
	redisrepo "place-journal-be/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
)

// One-shot sweep of expired comparison sessions, for cron or manual runs.
func main() {
	cfg := config.Load()

	opts, err := goredis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Fatalf("Error: Invalid REDIS_URL: %v", err)
	}

	sessions := redisrepo.NewSessionRepository(goredis.NewClient(opts))

	removed, err := sessions.DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("Error: sweep failed: %v", err)
	}

	log.Printf("✅ Removed %d expired sessions", removed)
}
