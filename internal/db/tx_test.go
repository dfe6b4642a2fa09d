package db

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return db
}

func countItems(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return count
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO items (name) VALUES (?)`, "kept")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}
	if got := countItems(t, db); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	boom := errors.New("boom")

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO items (name) VALUES (?)`, "dropped"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}
	if got := countItems(t, db); got != 0 {
		t.Errorf("count = %d after rollback, want 0", got)
	}
}

func TestNullValueHelpers(t *testing.T) {
	if got := NullInt64Value(sql.NullInt64{Int64: 7, Valid: true}); got != 7 {
		t.Errorf("NullInt64Value(valid 7) = %d", got)
	}
	if got := NullInt64Value(sql.NullInt64{}); got != 0 {
		t.Errorf("NullInt64Value(null) = %d, want 0", got)
	}
	if got := NullStringValue(sql.NullString{String: "x", Valid: true}); got != "x" {
		t.Errorf("NullStringValue(valid) = %q", got)
	}
	if got := NullStringValue(sql.NullString{}); got != "" {
		t.Errorf("NullStringValue(null) = %q, want empty", got)
	}
}
