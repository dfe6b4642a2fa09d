package persist

import (
	"database/sql"
)

const currentSchemaVersion = 3

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1,
			repeat_mode INTEGER NOT NULL DEFAULT 0,
			shuffle INTEGER NOT NULL DEFAULT 0,
			volume REAL NOT NULL DEFAULT 1.0,
			muted INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS queue_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL DEFAULT 'queue',
			position INTEGER NOT NULL,
			instance_id TEXT NOT NULL,
			track_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			duration_ms INTEGER,
			cover_ref TEXT,
			source_ref TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT 'user',
			added_at INTEGER NOT NULL DEFAULT 0,
			UNIQUE(slot, position)
		);

		CREATE INDEX IF NOT EXISTS idx_queue_entries_slot ON queue_entries(slot, position);

		CREATE TABLE IF NOT EXISTS track_positions (
			track_id TEXT PRIMARY KEY,
			position_ms INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migrations: add columns missing from older databases
	_, _ = db.Exec(`ALTER TABLE queue_entries ADD COLUMN cover_ref TEXT`)
	_, _ = db.Exec(`ALTER TABLE queue_entries ADD COLUMN added_at INTEGER NOT NULL DEFAULT 0`)

	return nil
}
