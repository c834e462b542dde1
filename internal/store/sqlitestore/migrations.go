package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"fjacquet/ledger/internal/logging"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Create subcategories",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS subcategories (
					id TEXT PRIMARY KEY,
					category_type TEXT NOT NULL
						CHECK (category_type IN ('income','expense','transfer','repayment','investment')),
					name TEXT NOT NULL,
					parent_id TEXT,
					display_order INTEGER NOT NULL DEFAULT 0,
					icon TEXT,
					color TEXT,
					is_default INTEGER NOT NULL DEFAULT 0,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_subcategories_type ON subcategories(category_type, is_active)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Create merchants",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS merchants (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					aliases TEXT NOT NULL DEFAULT '[]',
					default_subcategory_id TEXT NOT NULL,
					confidence REAL NOT NULL CHECK (confidence >= 0 AND confidence <= 1),
					priority INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Index merchant match order and default subcategories",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE INDEX IF NOT EXISTS idx_merchants_priority ON merchants(priority DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_subcategories_default ON subcategories(category_type) WHERE is_default = 1`,
			)
		},
	},
	{
		Version:     4,
		Description: "Track merchant save position",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE merchants ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,
				`UPDATE merchants SET position = rowid`,
				`DROP INDEX IF EXISTS idx_merchants_priority`,
				`CREATE INDEX IF NOT EXISTS idx_merchants_match_order ON merchants(priority DESC, position)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies every migration newer than the recorded schema version,
// each in its own transaction.
func (s *Store) Migrate(ctx context.Context) error {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		s.logger.Info("Applied migration",
			logging.Field{Key: "version", Value: migration.Version},
			logging.Field{Key: "description", Value: migration.Description})
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}
	return nil
}
