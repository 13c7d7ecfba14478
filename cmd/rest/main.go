package main

import (
	"context"
	"log"
	"time"

	"place-journal-be/internal/bootstrap"
	"place-journal-be/internal/config"
	"place-journal-be/internal/server"
	"place-journal-be/internal/tracer"
	"place-journal-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Stats Consumer...")
		if err := container.StatsService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	go runSessionSweeper(container, cfg.Ranking.SweepInterval)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}

// runSessionSweeper periodically removes expired comparison sessions. The
// store expires them on its own; this catches anything it missed.
func runSessionSweeper(container *bootstrap.Container, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := container.RankingService.CleanupExpiredSessions(context.Background()); err != nil {
			log.Printf("Background Sweeper Error: %v", err)
		}
	}
}
