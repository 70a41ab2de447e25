package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/michaello/backoffice/internal/config"
	"github.com/michaello/backoffice/internal/logger"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "Path to the migrations directory")
	down := flag.Bool("down", false, "Roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	dsn := cfg.Postgres.GetDSN()
	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	// Retry the initial connection; in container environments the database
	// often comes up after this process.
	var db *sql.DB
	connect := func() error {
		var err error
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		return db.Ping()
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 10)
	if err := backoff.RetryNotify(connect, policy, func(err error, next time.Duration) {
		logger.Warnw("database not ready, retrying", "error", err, "next_attempt_in", next)
	}); err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		logger.Fatalw("Failed to create migration driver", "error", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", *migrationsDir),
		"postgres",
		driver,
	)
	if err != nil {
		logger.Fatalw("Failed to create migrate instance", "error", err)
	}

	if *down {
		logger.Info("Rolling back one migration...")
		if err := m.Steps(-1); err != nil {
			logger.Fatalw("Rollback failed", "error", err)
		}
		logger.Info("Rollback completed")
		return
	}

	logger.Info("Running database migrations...")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatalw("Migration failed", "error", err)
	}
	logger.Info("Migration completed successfully")
}
