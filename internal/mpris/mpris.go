//go:build linux

// Package mpris exposes the player on the desktop's media-control bus.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

// Adapter connects the playback engine to MPRIS over D-Bus.
type Adapter struct {
	engine *playback.Engine
	server *server.Server
}

// New creates and starts an MPRIS adapter. coverURL resolves a track's
// cover reference to a fetchable URL; it may be nil.
func New(engine *playback.Engine, coverURL func(string) string) (*Adapter, error) {
	a := &Adapter{engine: engine}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{engine: engine, coverURL: coverURL}

	a.server = server.NewServer("indie-pulse", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Indie Pulse", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// optional LoopStatus and Shuffle interfaces.
type playerAdapter struct {
	engine   *playback.Engine
	coverURL func(string) string
}

func (p *playerAdapter) Next() error {
	p.engine.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.engine.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.engine.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.engine.Toggle()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.engine.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	p.engine.Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.engine.SeekBy(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.engine.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.engine.Snapshot().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused, playback.StateReady:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.engine.Snapshot()
	if s.Current == nil {
		return types.Metadata{}, nil
	}
	track := s.Current.Track

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Current.InstanceID)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Title,
		Artist:  []string{track.Artist},
	}
	if p.coverURL != nil {
		if art := p.coverURL(track.CoverRef); art != "" {
			meta.ArtUrl = art
		}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.engine.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.engine.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.engine.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	s := p.engine.Snapshot()
	if len(s.UpNext) > 0 {
		return true, nil
	}
	if s.Repeat == queue.RepeatAll && len(s.Entries) > 0 {
		return true, nil
	}
	return s.CurrentIndex+1 < len(s.Entries), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	s := p.engine.Snapshot()
	return len(s.History) > 0 || s.Current != nil, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	s := p.engine.Snapshot()
	return len(s.Entries) > 0 || len(s.UpNext) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.engine.Snapshot().State.CanSeek(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.engine.Snapshot().Repeat {
	case queue.RepeatOne:
		return types.LoopStatusTrack, nil
	case queue.RepeatAll:
		return types.LoopStatusPlaylist, nil
	default:
		return types.LoopStatusNone, nil
	}
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.engine.SetRepeat(queue.RepeatOff)
	case types.LoopStatusTrack:
		p.engine.SetRepeat(queue.RepeatOne)
	case types.LoopStatusPlaylist:
		p.engine.SetRepeat(queue.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.engine.Snapshot().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.engine.SetShuffle(shuffle)
	return nil
}

func formatTrackID(instanceID string) string {
	h := fnv.New64a()
	h.Write([]byte(instanceID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
