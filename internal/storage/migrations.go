package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version this build reads and writes.
// Opening a database that cannot reach it is fatal.
const ExpectedSchemaVersion = 2

// Migration moves the schema from Version-1 to Version. Statements run in
// order inside one transaction.
type Migration struct {
	Description string
	Statements  []string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Key-value table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS kv (
				key TEXT PRIMARY KEY,
				value BLOB NOT NULL
			)`,
		},
	},
	{
		Version:     2,
		Description: "Track when each key was last written",
		Statements: []string{
			// SQLite only accepts constant defaults in ALTER TABLE ADD COLUMN.
			`ALTER TABLE kv ADD COLUMN updated_at DATETIME`,
			`UPDATE kv SET updated_at = CURRENT_TIMESTAMP`,
			`CREATE TRIGGER IF NOT EXISTS kv_insert_updated_at
			AFTER INSERT ON kv
			FOR EACH ROW
			BEGIN
				UPDATE kv SET updated_at = CURRENT_TIMESTAMP WHERE key = NEW.key;
			END`,
			`CREATE TRIGGER IF NOT EXISTS kv_update_updated_at
			AFTER UPDATE OF value ON kv
			FOR EACH ROW
			BEGIN
				UPDATE kv SET updated_at = CURRENT_TIMESTAMP WHERE key = NEW.key;
			END`,
		},
	},
}

// SchemaVersion reports the version recorded in the database file.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies every migration newer than the database's version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return err
		}
		slog.Debug("Applied migration",
			"version", m.Version,
			"description", m.Description)
	}

	final, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, final)
	}
	return nil
}

func (s *SQLiteStorage) apply(ctx context.Context, m Migration) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range m.Statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
	}

	// PRAGMA does not take bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

