package notify

import (
	"log/slog"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
)

// notificationTimeout is how long a track-change notification stays up.
const notificationTimeout = 4000 // ms

// Announcer turns track changes into desktop notifications. Each new
// track replaces the previous notification instead of stacking.
type Announcer struct {
	notifier Notifier
	log      *slog.Logger
	lastID   uint32
}

// NewAnnouncer creates an announcer over a notifier.
func NewAnnouncer(notifier Notifier, log *slog.Logger) *Announcer {
	if log == nil {
		log = slog.Default()
	}
	return &Announcer{notifier: notifier, log: log}
}

// Run consumes the subscription until the engine closes. Call it on its
// own goroutine.
func (a *Announcer) Run(sub *playback.Subscription) {
	for {
		select {
		case <-sub.Done:
			if a.lastID != 0 {
				_ = a.notifier.Close(a.lastID)
			}
			return
		case change := <-sub.TrackChanged:
			a.announce(change)
		}
	}
}

func (a *Announcer) announce(change playback.TrackChange) {
	if change.Current == nil {
		if a.lastID != 0 {
			_ = a.notifier.Close(a.lastID)
			a.lastID = 0
		}
		return
	}

	track := change.Current.Track
	id, err := a.notifier.Notify(Notification{
		Title:      track.Title,
		Body:       track.Artist,
		Timeout:    notificationTimeout,
		ReplacesID: a.lastID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		a.log.Warn("desktop notification failed", "track", track.Title, "error", err)
		return
	}
	a.lastID = id
}
