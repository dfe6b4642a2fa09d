package persist

import (
	"database/sql"
	"errors"
	"time"
)

// Position returns the saved resume position for a track, or 0 when
// none was saved.
func (m *Manager) Position(trackID string) (time.Duration, error) {
	var ms int64
	row := m.db.QueryRow(`SELECT position_ms FROM track_positions WHERE track_id = ?`, trackID)
	err := row.Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func savePosition(db *sql.DB, trackID string, pos time.Duration) error {
	_, err := db.Exec(`
		INSERT INTO track_positions (track_id, position_ms, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(track_id) DO UPDATE SET
			position_ms = excluded.position_ms,
			updated_at = excluded.updated_at
	`, trackID, pos.Milliseconds(), time.Now().Unix())
	return err
}
