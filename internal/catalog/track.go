// Package catalog defines the track model and the client for the hosted
// catalog/storage backend.
package catalog

import "time"

// Track is an immutable descriptor for a catalog track.
// The engine only holds references; the catalog owns the data.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Duration time.Duration // 0 until known (reported by the audio sink on load)
	CoverRef string        // opaque cover art reference
	Source   SourceRef     // resolved to a playable URL by the stream resolver

	// Optional metadata
	Genre string
	Mood  string
	Tags  []string
}

// SourceRef is an opaque handle to a track's stored audio.
// It is not a ready-to-use URL; resolution may require a signed grant.
type SourceRef string
