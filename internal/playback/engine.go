package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/audio"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/resolver"
)

const (
	// DefaultPreviousThreshold is how far into a track Previous restarts
	// it instead of going back in history.
	DefaultPreviousThreshold = 3 * time.Second
	// DefaultTransportAttempts bounds in-place stream reloads before a
	// track is declared failed.
	DefaultTransportAttempts = 3
	// DefaultTransportDelay is the fixed delay between reload attempts.
	DefaultTransportDelay = 2 * time.Second
	// defaultFailureLimit bounds consecutive track failures before the
	// engine stops auto-advancing. Without it a fully dead catalog under
	// repeat-all would fail tracks forever.
	defaultFailureLimit = 5
)

// StreamResolver turns a queue entry's track into a playable URL.
type StreamResolver interface {
	Resolve(ctx context.Context, instanceID string, track catalog.Track) (resolver.Resolution, error)
}

// Persistor receives durable state writes. Calls never block and never
// fail from the engine's point of view: persistence is optimistic,
// debounced downstream, and playback is never rolled back on a failed
// write.
type Persistor interface {
	SaveVolume(level float64, muted bool)
	SavePosition(trackID string, pos time.Duration)
	SaveQueue(entries, upNext []queue.Entry, index int)
	SaveModes(repeat queue.RepeatMode, shuffle bool)
}

// PlayRecorder reports play events for analytics. Best effort.
type PlayRecorder interface {
	RecordPlayEvent(ctx context.Context, trackID, sessionID string, played time.Duration) error
}

// Options configures an Engine. Zero values fall back to defaults;
// Persist and Recorder may be nil.
type Options struct {
	PreviousThreshold time.Duration
	TransportAttempts int
	TransportDelay    time.Duration

	InitialVolume float64 // <0 means 1.0
	InitialMuted  bool

	Persist  Persistor
	Recorder PlayRecorder
	Logger   *slog.Logger
}

// Engine drives the audio sink from queue decisions. All intents are
// serialized under one mutex; everything asynchronous (resolution, sink
// events, retry timers) re-enters through the same lock and is checked
// against the current entry before it is applied, so a late result for
// a track the user already skipped is discarded.
type Engine struct {
	mu sync.Mutex

	store    *queue.Store
	res      StreamResolver
	sink     audio.Sink
	persist  Persistor
	recorder PlayRecorder
	log      *slog.Logger

	state    State
	position time.Duration
	duration time.Duration
	buffered time.Duration
	stalled  bool

	volume float64
	muted  bool

	lastErr    error
	retryCount int
	failStreak int

	// playIntent records whether playback should start as soon as the
	// in-flight load is ready.
	playIntent bool
	// loadingID is the instance id the current resolution was issued
	// for; a finished resolution with a different id is stale.
	loadingID string
	// currentURL tags sink events; an event with a different URL is
	// stale.
	currentURL    string
	resolveCancel context.CancelFunc
	retryTimer    *time.Timer

	// resumeID and resumePos hold a restored play position, applied
	// once when that exact entry becomes ready.
	resumeID  string
	resumePos time.Duration

	sessionID string

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool

	prevThreshold     time.Duration
	transportAttempts int
	transportDelay    time.Duration
	failureLimit      int
}

// New creates an engine and starts consuming sink events.
func New(store *queue.Store, res StreamResolver, sink audio.Sink, opts Options) *Engine {
	if opts.PreviousThreshold <= 0 {
		opts.PreviousThreshold = DefaultPreviousThreshold
	}
	if opts.TransportAttempts <= 0 {
		opts.TransportAttempts = DefaultTransportAttempts
	}
	if opts.TransportDelay <= 0 {
		opts.TransportDelay = DefaultTransportDelay
	}
	if opts.InitialVolume < 0 {
		opts.InitialVolume = 1.0
	}
	if opts.InitialVolume > 1 {
		opts.InitialVolume = 1.0
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	e := &Engine{
		store:             store,
		res:               res,
		sink:              sink,
		persist:           opts.Persist,
		recorder:          opts.Recorder,
		log:               opts.Logger,
		state:             StateIdle,
		volume:            opts.InitialVolume,
		muted:             opts.InitialMuted,
		sessionID:         uuid.NewString(),
		done:              make(chan struct{}),
		prevThreshold:     opts.PreviousThreshold,
		transportAttempts: opts.TransportAttempts,
		transportDelay:    opts.TransportDelay,
		failureLimit:      defaultFailureLimit,
	}
	sink.SetVolume(e.volume)
	sink.SetMuted(e.muted)

	go e.consumeEvents()
	return e
}

// Subscribe creates a new event subscription. The subscription lives
// until the engine closes.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	e.subs = append(e.subs, sub)
	return sub
}

// Snapshot returns a consistent copy of the player state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		State:        e.state,
		Current:      e.store.Current(),
		CurrentIndex: e.store.CurrentIndex(),
		Entries:      e.store.Entries(),
		UpNext:       e.store.UpNext(),
		History:      e.store.History(),
		ShuffleOrder: e.store.ShuffleOrder(),
		Position:     e.position,
		Duration:     e.duration,
		Buffered:     e.buffered,
		Stalled:      e.stalled,
		Volume:       e.volume,
		Muted:        e.muted,
		Repeat:       e.store.Repeat(),
		Shuffle:      e.store.Shuffle(),
		Err:          e.lastErr,
		RetryCount:   e.retryCount,
	}
}

// Close stops the engine, the sink, and all subscriptions.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.cancelPendingLocked()
	close(e.done)
	e.mu.Unlock()

	err := e.sink.Close()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()
	return err
}

// --- broadcast helpers (caller holds e.mu) ---

func (e *Engine) setStateLocked(next State) {
	if e.state == next {
		return
	}
	prev := e.state
	e.state = next
	e.forEachSub(func(s *Subscription) { s.sendState(StateChange{Previous: prev, Current: next}) })
}

func (e *Engine) trackChangedLocked(prev *queue.Entry) {
	cur := e.store.Current()
	idx := e.store.CurrentIndex()
	e.forEachSub(func(s *Subscription) { s.sendTrack(TrackChange{Previous: prev, Current: cur, Index: idx}) })
}

func (e *Engine) queueChangedLocked() {
	ev := QueueChange{
		Entries: e.store.Entries(),
		UpNext:  e.store.UpNext(),
		Index:   e.store.CurrentIndex(),
	}
	e.forEachSub(func(s *Subscription) { s.sendQueue(ev) })
	if e.persist != nil {
		e.persist.SaveQueue(ev.Entries, ev.UpNext, ev.Index)
	}
}

func (e *Engine) modeChangedLocked() {
	ev := ModeChange{Repeat: e.store.Repeat(), Shuffle: e.store.Shuffle()}
	e.forEachSub(func(s *Subscription) { s.sendMode(ev) })
	if e.persist != nil {
		e.persist.SaveModes(ev.Repeat, ev.Shuffle)
	}
}

func (e *Engine) positionChangedLocked() {
	ev := PositionChange{
		Position: e.position,
		Duration: e.duration,
		Buffered: e.buffered,
		Stalled:  e.stalled,
	}
	e.forEachSub(func(s *Subscription) { s.sendPosition(ev) })
}

func (e *Engine) volumeChangedLocked() {
	ev := VolumeChange{Level: e.volume, Muted: e.muted}
	e.forEachSub(func(s *Subscription) { s.sendVolume(ev) })
	if e.persist != nil {
		e.persist.SaveVolume(ev.Level, ev.Muted)
	}
}

func (e *Engine) errorLocked(err error, track *queue.Entry) {
	e.lastErr = err
	e.forEachSub(func(s *Subscription) { s.sendError(ErrorEvent{Err: err, Track: track}) })
}

func (e *Engine) forEachSub(fn func(*Subscription)) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		fn(sub)
	}
}
