// Package resolver turns a track's opaque source reference into a
// playable stream URL, with fallback and bounded retry.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
)

const (
	// DefaultAttempts bounds how often a resolution is retried.
	DefaultAttempts = 3
	// DefaultRetryDelay is the fixed delay between attempts. Retries
	// here are deliberately not exponential; a track either resolves
	// within a few tries or playback moves on.
	DefaultRetryDelay = 2 * time.Second
)

// Source provides the two resolution strategies, in priority order.
type Source interface {
	// SignedStreamURL returns a time-limited signed URL (primary).
	SignedStreamURL(ctx context.Context, ref catalog.SourceRef) (string, error)
	// PublicStreamURL returns a stable public URL (fallback).
	PublicStreamURL(ctx context.Context, ref catalog.SourceRef) (string, error)
}

// Resolution is a resolved stream URL, tagged with the queue entry it
// was issued for. Resolution is asynchronous and the user may skip
// tracks while one is in flight; the tag lets the playback engine
// discard results that no longer match the current entry.
type Resolution struct {
	InstanceID string
	TrackID    string
	URL        string
}

// Resolver resolves tracks against a Source.
type Resolver struct {
	source   Source
	attempts int
	delay    time.Duration
}

// New creates a resolver. Non-positive attempts or delay fall back to
// the defaults.
func New(source Source, attempts int, delay time.Duration) *Resolver {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	return &Resolver{source: source, attempts: attempts, delay: delay}
}

// Resolve resolves the track to a playable URL. Each attempt tries the
// signed URL first and falls back to the public URL; attempts repeat up
// to the retry bound with a fixed delay in between. Cancelling ctx
// aborts between attempts.
func (r *Resolver) Resolve(ctx context.Context, instanceID string, track catalog.Track) (Resolution, error) {
	var lastErr error
	for attempt := range r.attempts {
		if attempt > 0 {
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
				return Resolution{}, ctx.Err()
			}
		}

		url, err := r.source.SignedStreamURL(ctx, track.Source)
		if err == nil {
			return Resolution{InstanceID: instanceID, TrackID: track.ID, URL: url}, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return Resolution{}, ctx.Err()
		}

		url, err = r.source.PublicStreamURL(ctx, track.Source)
		if err == nil {
			return Resolution{InstanceID: instanceID, TrackID: track.ID, URL: url}, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return Resolution{}, ctx.Err()
		}
	}
	return Resolution{}, fmt.Errorf("resolve stream for track %s: %w", track.ID, lastErr)
}
