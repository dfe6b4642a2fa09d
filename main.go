package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/app"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/audio"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/config"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/errmsg"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/icons"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/mpris"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/notify"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/persist"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/resolver"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/scrobble"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	if !cfg.HasCatalogConfig() {
		return fmt.Errorf("no catalog configured: set catalog.url in config.toml")
	}
	icons.Init(cfg.UI.Icons)

	log, closeLog := openLogger()
	defer closeLog()

	// Capture ALSA noise before the audio stack initializes.
	if err := stderr.Capture(log); err != nil {
		log.Warn("stderr capture unavailable", "error", err)
	}
	defer stderr.Restore()

	mgr, err := persist.Open(log)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateOpen, err))
	}
	defer mgr.Close()

	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.APIKey)
	res := resolver.New(client, cfg.Playback.ResolveAttempts, cfg.ResolveRetryDelay())
	sink := audio.NewBeepSink()

	vol, err := mgr.Volume()
	if err != nil {
		log.Warn("reading saved volume", "error", err)
		vol = persist.VolumeState{Level: 1.0}
	}

	eng := playback.New(
		queue.NewStore(cfg.Playback.QueueMax, cfg.Playback.HistoryMax),
		res, sink,
		playback.Options{
			PreviousThreshold: cfg.PreviousThreshold(),
			TransportAttempts: cfg.Playback.TransportAttempts,
			TransportDelay:    cfg.TransportRetryDelay(),
			InitialVolume:     vol.Level,
			InitialMuted:      vol.Muted,
			Persist:           mgr,
			Recorder:          client,
			Logger:            log,
		})
	defer eng.Close()

	restoreSession(eng, mgr, log)

	if cfg.HasLastfmConfig() {
		scr := scrobble.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret, cfg.Lastfm.SessionKey, log)
		go scr.Run(eng.Subscribe())
	}

	if notifier, err := notify.New(); err == nil {
		go notify.NewAnnouncer(notifier, log).Run(eng.Subscribe())
	}

	if adapter, err := mpris.New(eng, client.CoverURL); err != nil {
		log.Warn("media key integration unavailable", "error", err)
	} else {
		defer adapter.Close()
	}

	p := tea.NewProgram(app.New(eng), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running player: %w", err)
	}
	return nil
}

// restoreSession reinstates the previous queue, modes, and the play
// position within the track that was current. Failures only cost the
// restored state, never startup.
func restoreSession(eng *playback.Engine, mgr *persist.Manager, log *slog.Logger) {
	if repeat, shuffle, err := mgr.Modes(); err == nil {
		eng.RestoreModes(repeat, shuffle)
	} else {
		log.Warn("restoring playback modes", "error", err)
	}

	qs, err := mgr.Queue()
	if err != nil {
		log.Warn("restoring queue", "error", err)
		return
	}
	if len(qs.Entries) == 0 && len(qs.UpNext) == 0 {
		return
	}
	if err := eng.Restore(qs.Entries, qs.UpNext, qs.CurrentIndex); err != nil {
		log.Warn("restoring queue", "error", err)
		return
	}

	if qs.CurrentIndex >= 0 && qs.CurrentIndex < len(qs.Entries) {
		cur := qs.Entries[qs.CurrentIndex]
		if pos, err := mgr.Position(cur.Track.ID); err == nil && pos > 0 {
			eng.ResumeAt(cur.InstanceID, pos)
		}
	}
}

// openLogger logs to a file in the state directory so log lines never
// tear the alternate-screen UI. Falls back to a discard logger.
func openLogger() (*slog.Logger, func()) {
	path, err := xdg.StateFile("indie-pulse/indie-pulse.log")
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }
}
