package persist

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/coder-innovator/indie-pulse-player-sub000/internal/db"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

const (
	slotQueue  = "queue"
	slotUpNext = "upnext"
)

// QueueState is the saved queue: the main entries, the up-next override
// list, and the current pointer.
type QueueState struct {
	Entries      []queue.Entry
	UpNext       []queue.Entry
	CurrentIndex int
}

// Queue returns the saved queue state.
func (m *Manager) Queue() (QueueState, error) {
	state := QueueState{CurrentIndex: -1}

	row := m.db.QueryRow(`SELECT current_index FROM player_state WHERE id = 1`)
	err := row.Scan(&state.CurrentIndex)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return state, err
	}

	rows, err := m.db.Query(`
		SELECT slot, instance_id, track_id, title, artist, duration_ms, cover_ref, source_ref, origin, added_at
		FROM queue_entries
		ORDER BY slot, position
	`)
	if err != nil {
		return state, err
	}
	defer rows.Close()

	for rows.Next() {
		var slot, instanceID, trackID, title, sourceRef, origin string
		var artist, coverRef sql.NullString
		var durationMs sql.NullInt64
		var addedAt int64

		if err := rows.Scan(&slot, &instanceID, &trackID, &title, &artist, &durationMs, &coverRef, &sourceRef, &origin, &addedAt); err != nil {
			return state, err
		}

		entry := queue.Entry{
			InstanceID: instanceID,
			Origin:     queue.Origin(origin),
			AddedAt:    time.Unix(addedAt, 0),
			Track: catalog.Track{
				ID:       trackID,
				Title:    title,
				Artist:   dbutil.NullStringValue(artist),
				Duration: time.Duration(dbutil.NullInt64Value(durationMs)) * time.Millisecond,
				CoverRef: dbutil.NullStringValue(coverRef),
				Source:   catalog.SourceRef(sourceRef),
			},
		}
		if slot == slotUpNext {
			state.UpNext = append(state.UpNext, entry)
		} else {
			state.Entries = append(state.Entries, entry)
		}
	}
	return state, rows.Err()
}

func saveQueue(sqlDB *sql.DB, entries, upNext []queue.Entry, index int) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_entries`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO player_state (id, current_index)
			VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index
		`, index)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_entries (slot, position, instance_id, track_id, title, artist, duration_ms, cover_ref, source_ref, origin, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		insert := func(slot string, list []queue.Entry) error {
			for i, e := range list {
				_, err := stmt.Exec(slot, i, e.InstanceID, e.Track.ID, e.Track.Title,
					e.Track.Artist, e.Track.Duration.Milliseconds(), e.Track.CoverRef,
					string(e.Track.Source), string(e.Origin), e.AddedAt.Unix())
				if err != nil {
					return err
				}
			}
			return nil
		}
		if err := insert(slotQueue, entries); err != nil {
			return err
		}
		return insert(slotUpNext, upNext)
	})
}
