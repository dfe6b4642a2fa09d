package audio

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	progressInterval   = 500 * time.Millisecond
	volumeRampSteps    = 8
	volumeRampInterval = 12 * time.Millisecond
	streamTimeout      = 15 * time.Second
)

var (
	speakerReady bool
	speakerRate  beep.SampleRate
)

// BeepSink renders catalog streams through the beep speaker. It
// downloads the stream progressively, decodes mp3, and reports
// ready/progress/ended/error/stalled events tagged with the stream URL.
type BeepSink struct {
	mu         sync.Mutex
	httpClient *http.Client
	events     chan Event
	closed     atomic.Bool

	url          string
	cancelLoad   context.CancelFunc
	buf          *progressiveBuffer
	streamer     beep.StreamSeekCloser
	format       beep.Format
	ctrl         *beep.Ctrl
	volume       *effects.Volume
	level        float64
	muted        bool
	progressQuit chan struct{}
	rampGen      int
}

// NewBeepSink creates a sink with no stream loaded.
func NewBeepSink() *BeepSink {
	return &BeepSink{
		httpClient: &http.Client{Timeout: streamTimeout},
		events:     make(chan Event, eventBufferSize),
		level:      1.0,
	}
}

// Load tears down the previous stream and starts fetching and decoding
// the new one. The outcome arrives as an EventReady or EventError.
func (s *BeepSink) Load(url string) {
	s.mu.Lock()
	s.teardownLocked()
	s.url = url
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelLoad = cancel
	s.mu.Unlock()

	go s.load(ctx, url)
}

func (s *BeepSink) load(ctx context.Context, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.emit(Event{Kind: EventError, URL: url, Err: fmt.Errorf("build stream request: %w", err)})
		return
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.emit(Event{Kind: EventError, URL: url, Err: fmt.Errorf("fetch stream: %w", err)})
		return
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		s.emit(Event{Kind: EventError, URL: url, Err: fmt.Errorf("fetch stream: status %d", resp.StatusCode)})
		return
	}

	buf := newProgressiveBuffer(resp.ContentLength)
	go buf.fill(ctx, resp.Body)

	streamer, format, err := decodeMP3(buf)
	if err != nil {
		buf.Close()
		s.emit(Event{Kind: EventError, URL: url, Err: fmt.Errorf("decode stream: %w", err)})
		return
	}

	s.mu.Lock()
	if s.url != url || s.closed.Load() {
		// Superseded while downloading; drop the result.
		s.mu.Unlock()
		streamer.Close()
		return
	}

	if !speakerReady || speakerRate != format.SampleRate {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			s.mu.Unlock()
			streamer.Close()
			s.emit(Event{Kind: EventError, URL: url, Err: fmt.Errorf("init speaker: %w", err)})
			return
		}
		speakerReady = true
		speakerRate = format.SampleRate
	}

	s.buf = buf
	s.streamer = streamer
	s.format = format
	s.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.muted,
	}

	var duration time.Duration
	if streamer.Len() > 0 {
		duration = format.SampleRate.D(streamer.Len())
	}

	quit := make(chan struct{})
	s.progressQuit = quit

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		s.emit(Event{Kind: EventEnded, URL: url})
	})))
	s.mu.Unlock()

	go s.progressLoop(url, quit)
	s.emit(Event{Kind: EventReady, URL: url, Duration: duration})
}

// Play starts or resumes output. The stream must be loaded.
func (s *BeepSink) Play(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return fmt.Errorf("play: no stream loaded")
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause suspends output, keeping the stream loaded.
func (s *BeepSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Stop tears down the loaded stream. The sink stays usable; a later
// Load starts fresh.
func (s *BeepSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
}

// Seek moves the play position, clamped to the stream bounds.
func (s *BeepSink) Seek(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return
	}
	n := s.format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if length := s.streamer.Len(); length > 0 && n > length {
		n = length
	}
	speaker.Lock()
	_ = s.streamer.Seek(n)
	speaker.Unlock()
}

// SetVolume ramps the output level to the target over a few steps to
// avoid an abrupt jump. Muting state is untouched.
func (s *BeepSink) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	s.mu.Lock()
	s.level = level
	vol := s.volume
	if vol == nil {
		s.mu.Unlock()
		return
	}
	s.rampGen++
	gen := s.rampGen
	s.mu.Unlock()

	speaker.Lock()
	start := vol.Volume
	speaker.Unlock()
	target := levelToVolume(level)

	go func() {
		for i := 1; i <= volumeRampSteps; i++ {
			s.mu.Lock()
			stale := gen != s.rampGen || s.volume != vol
			s.mu.Unlock()
			if stale {
				return
			}
			step := start + (target-start)*float64(i)/volumeRampSteps
			speaker.Lock()
			vol.Volume = step
			speaker.Unlock()
			time.Sleep(volumeRampInterval)
		}
	}()
}

// SetMuted silences or restores output. The stored level is not
// altered, so unmuting restores the pre-mute volume exactly.
func (s *BeepSink) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Silent = muted
	speaker.Unlock()
}

// Events returns the sink's event channel.
func (s *BeepSink) Events() <-chan Event {
	return s.events
}

// Close tears down the current stream and stops emitting events.
func (s *BeepSink) Close() error {
	s.closed.Store(true)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	return nil
}

func (s *BeepSink) progressLoop(url string, quit chan struct{}) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	var lastPos time.Duration
	stalled := false
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.streamer == nil || s.url != url {
			s.mu.Unlock()
			return
		}
		pos := s.format.SampleRate.D(s.streamer.Position())
		var total time.Duration
		if s.streamer.Len() > 0 {
			total = s.format.SampleRate.D(s.streamer.Len())
		}
		buffered := pos
		if bytes := s.buf.Total(); bytes > 0 && total > 0 {
			buffered = time.Duration(float64(total) * float64(s.buf.Downloaded()) / float64(bytes))
		}
		paused := s.ctrl.Paused
		s.mu.Unlock()

		s.emit(Event{Kind: EventProgress, URL: url, Position: pos, Buffered: buffered})

		if !paused {
			switch {
			case !stalled && pos == lastPos && buffered <= pos:
				stalled = true
				s.emit(Event{Kind: EventStalled, URL: url})
			case stalled && pos != lastPos:
				stalled = false
				s.emit(Event{Kind: EventResumed, URL: url})
			}
		}
		lastPos = pos
	}
}

// teardownLocked cancels the in-flight download, detaches from the
// speaker, and releases the stream. Caller holds s.mu.
func (s *BeepSink) teardownLocked() {
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	if s.progressQuit != nil {
		close(s.progressQuit)
		s.progressQuit = nil
	}
	if s.ctrl != nil {
		speaker.Clear()
	}
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	s.buf = nil
	s.ctrl = nil
	s.volume = nil
	s.url = ""
}

// emit sends an event without blocking; events are dropped when the
// buffer is full. The channel is never closed so late goroutines can
// emit safely.
func (s *BeepSink) emit(e Event) {
	if s.closed.Load() {
		return
	}
	select {
	case s.events <- e:
	default:
	}
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic volume.
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2; 0 maps to -10, essentially silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// Verify BeepSink implements Sink at compile time.
var _ Sink = (*BeepSink)(nil)
