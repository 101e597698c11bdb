package main

import (
	"flag"
	"log"

	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
)

func main() {
	// Parse command line flags
	source := flag.String("source", "file://migrations", "Migration source URL")
	down := flag.Bool("down", false, "Roll back the most recent migration instead of applying pending ones")
	flag.Parse()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	if *down {
		if err := postgres.Rollback(cfg, logger, *source); err != nil {
			logger.Fatalw("Failed to roll back migration", "error", err)
		}
		return
	}

	logger.Info("Running database migrations...")
	if err := postgres.Migrate(cfg, logger, *source); err != nil {
		logger.Fatalw("Failed to run migrations", "error", err)
	}
	logger.Info("Migration completed successfully")
}
