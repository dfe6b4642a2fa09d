package audio

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for Sink.
type Mock struct {
	mu          sync.Mutex
	events      chan Event
	loadCalls   []string
	playCalls   int
	pauseCalls  int
	stopCalls   int
	seekCalls   []time.Duration
	volumeCalls []float64
	mutedCalls  []bool
	playErr     error
	closed      bool
}

// NewMock creates a new mock sink for testing.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, eventBufferSize),
	}
}

func (m *Mock) Load(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, url)
}

func (m *Mock) Play(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	return m.playErr
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeCalls = append(m.volumeCalls, level)
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutedCalls = append(m.mutedCalls, muted)
}

func (m *Mock) Events() <-chan Event {
	return m.events
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) LastLoad() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.loadCalls) == 0 {
		return ""
	}
	return m.loadCalls[len(m.loadCalls)-1]
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) VolumeCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.volumeCalls...)
}

func (m *Mock) MutedCalls() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.mutedCalls...)
}

// EmitReady simulates the stream becoming ready.
func (m *Mock) EmitReady(url string, duration time.Duration) {
	m.events <- Event{Kind: EventReady, URL: url, Duration: duration}
}

// EmitProgress simulates a progress report.
func (m *Mock) EmitProgress(url string, pos, buffered time.Duration) {
	m.events <- Event{Kind: EventProgress, URL: url, Position: pos, Buffered: buffered}
}

// EmitEnded simulates natural end-of-media.
func (m *Mock) EmitEnded(url string) {
	m.events <- Event{Kind: EventEnded, URL: url}
}

// EmitError simulates a decode or transport failure.
func (m *Mock) EmitError(url string, err error) {
	m.events <- Event{Kind: EventError, URL: url, Err: err}
}

// EmitStalled simulates playback stalling on the network.
func (m *Mock) EmitStalled(url string) {
	m.events <- Event{Kind: EventStalled, URL: url}
}

// EmitResumed simulates recovery from a stall.
func (m *Mock) EmitResumed(url string) {
	m.events <- Event{Kind: EventResumed, URL: url}
}

// Verify Mock implements Sink at compile time.
var _ Sink = (*Mock)(nil)
