package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	connectAttempts = 10
	retryInterval   = 2 * time.Second
)

// Connect opens a PostgreSQL pool, retrying while the database comes up.
// It gives up early when ctx is cancelled.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		var conn *sqlx.DB
		conn, err = sqlx.ConnectContext(ctx, "postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return conn, nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("could not connect to database: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
}

// RunMigrations applies every "*.up.sql" file in migrationsPath in name
// order, skipping files already recorded in schema_migrations. "*.down.sql"
// files are ignored. A missing or empty directory is not an error.
func RunMigrations(ctx context.Context, conn *sqlx.DB, migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list up migrations")
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	if _, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	for _, file := range files {
		name := filepath.Base(file)

		var applied bool
		if err := conn.GetContext(ctx, &applied,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1);`, name); err != nil {
			return fmt.Errorf("checking migration %q: %w", name, err)
		}
		if applied {
			continue
		}

		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			log.Error().Err(err).Str("migration", name).Msg("failed to read migration file")
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		stmt := strings.TrimSpace(string(sqlBytes))
		if stmt == "" {
			continue
		}

		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("starting migration %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1);`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %q: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %q: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied migration")
	}
	return nil
}
