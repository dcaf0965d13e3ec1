package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS calls (
					id TEXT PRIMARY KEY,
					start_time DATETIME NOT NULL,
					direction TEXT NOT NULL,
					duration INTEGER NOT NULL DEFAULT 0,
					answered BOOLEAN NOT NULL DEFAULT 0,
					voicemail BOOLEAN NOT NULL DEFAULT 0,
					has_recording BOOLEAN NOT NULL DEFAULT 0,
					customer_phone TEXT,
					customer_name TEXT,
					customer_city TEXT,
					customer_state TEXT,
					source TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_calls_start_time ON calls(start_time)`,
				`CREATE INDEX idx_calls_direction ON calls(direction)`,

				`CREATE TABLE IF NOT EXISTS transcripts (
					call_id TEXT PRIMARY KEY,
					text TEXT NOT NULL DEFAULT '',
					utterances TEXT,
					confidence REAL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (call_id) REFERENCES calls(id)
				)`,

				`CREATE TABLE IF NOT EXISTS classifications (
					call_id TEXT PRIMARY KEY,
					run_id TEXT NOT NULL,
					category TEXT NOT NULL,
					sub_category TEXT,
					confidence REAL DEFAULT 0,
					reasoning TEXT,
					key_topics TEXT,
					entity_name TEXT,
					entity_address TEXT,
					entity_amount TEXT,
					summary TEXT,
					classified_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (call_id) REFERENCES calls(id)
				)`,
				`CREATE INDEX idx_classifications_category ON classifications(category)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add pattern rules table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS pattern_rules (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					category TEXT NOT NULL,
					sub_category TEXT,
					keywords TEXT,
					pattern TEXT,
					is_regex BOOLEAN NOT NULL DEFAULT 0,
					tier TEXT NOT NULL,
					confidence REAL DEFAULT 0,
					is_active BOOLEAN NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_pattern_rules_category ON pattern_rules(category)`,
				`CREATE INDEX idx_pattern_rules_active ON pattern_rules(is_active)`,
				`CREATE TRIGGER update_pattern_rules_timestamp
				AFTER UPDATE ON pattern_rules
				FOR EACH ROW
				WHEN NEW.updated_at = OLD.updated_at
				BEGIN
					UPDATE pattern_rules SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
				END`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add run and source indexes for reporting",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_classifications_run_id ON classifications(run_id)`,
				`CREATE INDEX IF NOT EXISTS idx_calls_source ON calls(source)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
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

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
