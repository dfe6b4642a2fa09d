// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart   Op = "start playback"
	OpPlaybackResolve Op = "resolve stream"
	OpPlaybackSeek    Op = "seek"

	// Queue operations
	OpQueueSet     Op = "replace queue"
	OpQueueAdd     Op = "add to queue"
	OpQueueRemove  Op = "remove from queue"
	OpQueueReorder Op = "reorder queue"
	OpQueueJump    Op = "jump to track"
	OpQueueLoad    Op = "restore queue"
	OpQueueSave    Op = "save queue"

	// Catalog operations
	OpCatalogPlayEvent Op = "report play"

	// State operations
	OpStateOpen Op = "open state database"

	// Last.fm operations
	OpLastfmAuth     Op = "authenticate with Last.fm"
	OpLastfmScrobble Op = "scrobble track"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
