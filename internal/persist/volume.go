package persist

import (
	"database/sql"
	"errors"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

// VolumeState is the saved output state.
type VolumeState struct {
	Level float64
	Muted bool
}

// Volume returns the saved volume state, or full volume unmuted when
// nothing has been saved yet.
func (m *Manager) Volume() (VolumeState, error) {
	var level float64
	var muted bool

	row := m.db.QueryRow(`SELECT volume, muted FROM player_state WHERE id = 1`)
	err := row.Scan(&level, &muted)
	if errors.Is(err, sql.ErrNoRows) {
		return VolumeState{Level: 1.0}, nil
	}
	if err != nil {
		return VolumeState{}, err
	}
	return VolumeState{Level: level, Muted: muted}, nil
}

// Modes returns the saved repeat and shuffle policy.
func (m *Manager) Modes() (queue.RepeatMode, bool, error) {
	var repeat int
	var shuffle bool

	row := m.db.QueryRow(`SELECT repeat_mode, shuffle FROM player_state WHERE id = 1`)
	err := row.Scan(&repeat, &shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return queue.RepeatOff, false, nil
	}
	if err != nil {
		return queue.RepeatOff, false, err
	}
	return queue.RepeatMode(repeat), shuffle, nil
}

func saveVolume(db *sql.DB, level float64, muted bool) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, volume, muted)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted
	`, level, muted)
	return err
}

func saveModes(db *sql.DB, repeat queue.RepeatMode, shuffle bool) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, repeat_mode, shuffle)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			repeat_mode = excluded.repeat_mode,
			shuffle = excluded.shuffle
	`, int(repeat), shuffle)
	return err
}
