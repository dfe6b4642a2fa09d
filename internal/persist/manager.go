// Package persist stores player state in SQLite: the queue, the volume,
// per-track resume positions, and repeat/shuffle policy.
//
// Writes are optimistic and debounced: the engine updates its in-memory
// state first and hands the write here, and a burst of updates (seek
// scrubbing, volume dragging) collapses into a single write. A failed
// write is logged and surfaced nowhere else; playback is never rolled
// back to match the disk.
package persist

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

const (
	appName      = "indie-pulse"
	dbFileName   = "player.db"
	saveDebounce = 500 * time.Millisecond
)

type pendingVolume struct {
	level float64
	muted bool
}

type pendingModes struct {
	repeat  queue.RepeatMode
	shuffle bool
}

type pendingPosition struct {
	trackID string
	pos     time.Duration
}

type pendingQueue struct {
	entries []queue.Entry
	upNext  []queue.Entry
	index   int
}

type Manager struct {
	db  *sql.DB
	log *slog.Logger

	saveMu      sync.Mutex
	volumeTimer *time.Timer
	volume      *pendingVolume
	modesTimer  *time.Timer
	modes       *pendingModes
	posTimer    *time.Timer
	position    *pendingPosition
	queueTimer  *time.Timer
	queue       *pendingQueue
}

// Open opens (or creates) the state database under the XDG data dir.
func Open(log *slog.Logger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return NewManager(db, log), nil
}

// NewManager wraps an already-opened database. The schema must be
// initialized; Open does both.
func NewManager(db *sql.DB, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{db: db, log: log}
}

// Close flushes pending writes and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	for _, t := range []*time.Timer{m.volumeTimer, m.modesTimer, m.posTimer, m.queueTimer} {
		if t != nil {
			t.Stop()
		}
	}
	m.saveMu.Unlock()

	m.flushVolume()
	m.flushModes()
	m.flushPosition()
	m.flushQueue()

	return m.db.Close()
}

// DB exposes the underlying handle for schema-aware callers.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveVolume schedules a debounced write of the volume state.
func (m *Manager) SaveVolume(level float64, muted bool) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.volume = &pendingVolume{level: level, muted: muted}

	if m.volumeTimer != nil {
		m.volumeTimer.Stop()
	}
	m.volumeTimer = time.AfterFunc(saveDebounce, m.flushVolume)
}

// SaveModes schedules a debounced write of repeat and shuffle policy.
func (m *Manager) SaveModes(repeat queue.RepeatMode, shuffle bool) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.modes = &pendingModes{repeat: repeat, shuffle: shuffle}

	if m.modesTimer != nil {
		m.modesTimer.Stop()
	}
	m.modesTimer = time.AfterFunc(saveDebounce, m.flushModes)
}

// SavePosition schedules a debounced write of the resume position.
func (m *Manager) SavePosition(trackID string, pos time.Duration) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.position = &pendingPosition{trackID: trackID, pos: pos}

	if m.posTimer != nil {
		m.posTimer.Stop()
	}
	m.posTimer = time.AfterFunc(saveDebounce, m.flushPosition)
}

// SaveQueue schedules a debounced write of the queue contents.
func (m *Manager) SaveQueue(entries, upNext []queue.Entry, index int) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.queue = &pendingQueue{entries: entries, upNext: upNext, index: index}

	if m.queueTimer != nil {
		m.queueTimer.Stop()
	}
	m.queueTimer = time.AfterFunc(saveDebounce, m.flushQueue)
}

func (m *Manager) flushVolume() {
	m.saveMu.Lock()
	pending := m.volume
	m.volume = nil
	m.saveMu.Unlock()

	if pending == nil {
		return
	}
	if err := saveVolume(m.db, pending.level, pending.muted); err != nil {
		m.log.Warn("save volume failed", "error", err)
	}
}

func (m *Manager) flushModes() {
	m.saveMu.Lock()
	pending := m.modes
	m.modes = nil
	m.saveMu.Unlock()

	if pending == nil {
		return
	}
	if err := saveModes(m.db, pending.repeat, pending.shuffle); err != nil {
		m.log.Warn("save modes failed", "error", err)
	}
}

func (m *Manager) flushPosition() {
	m.saveMu.Lock()
	pending := m.position
	m.position = nil
	m.saveMu.Unlock()

	if pending == nil {
		return
	}
	if err := savePosition(m.db, pending.trackID, pending.pos); err != nil {
		m.log.Warn("save position failed", "error", err)
	}
}

func (m *Manager) flushQueue() {
	m.saveMu.Lock()
	pending := m.queue
	m.queue = nil
	m.saveMu.Unlock()

	if pending == nil {
		return
	}
	if err := saveQueue(m.db, pending.entries, pending.upNext, pending.index); err != nil {
		m.log.Warn("save queue failed", "error", err)
	}
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
