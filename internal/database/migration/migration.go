package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Dialects understood by EnsureMigrated.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

type migrationStep struct {
	Name string
	SQL  string
}

type schema struct {
	sentinel string
	steps    []migrationStep
}

var schemas = map[string]schema{
	DialectPostgres: {
		sentinel: `SELECT to_regclass('public.contacts') IS NOT NULL`,
		steps: []migrationStep{
			{
				Name: "create_table_contacts",
				SQL: `CREATE TABLE IF NOT EXISTS contacts (
  id         BIGSERIAL   PRIMARY KEY,
  name       TEXT        NOT NULL,
  number     TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT uniq_contacts_name UNIQUE (name)
);`,
			},
			{
				Name: "create_index_contacts_lower_name",
				SQL:  `CREATE INDEX IF NOT EXISTS idx_contacts_lower_name ON contacts (lower(name));`,
			},
		},
	},
	// utf8mb4_bin keeps name uniqueness case-sensitive like the other stores.
	DialectMySQL: {
		sentinel: `SELECT COUNT(*) > 0 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'contacts'`,
		steps: []migrationStep{
			{
				Name: "create_table_contacts",
				SQL: `CREATE TABLE IF NOT EXISTS contacts (
  id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name       VARCHAR(255)    NOT NULL,
  number     VARCHAR(64)     NOT NULL,
  created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE KEY uniq_contacts_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin;`,
			},
		},
	},
}

// EnsureMigrated checks if the 'contacts' table exists and creates the schema if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect string, log *zap.Logger, dbHost string) error {
	sc, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect: %s", dialect)
	}

	start := time.Now()
	log = log.With(
		zap.String("component", "database"),
		zap.String("dialect", dialect),
		zap.String("db_host", dbHost),
	)
	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sc.sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range sc.steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
