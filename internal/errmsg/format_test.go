package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "queue operation",
			op:       OpQueueAdd,
			err:      errors.New("queue is full"),
			expected: "Failed to add to queue: queue is full",
		},
		{
			name:     "resolve operation",
			op:       OpPlaybackResolve,
			err:      errors.New("status 503"),
			expected: "Failed to resolve stream: status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackResolve,
			context:  "Midnight Drive",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with track context",
			op:       OpPlaybackResolve,
			context:  "Midnight Drive",
			err:      errors.New("signed url expired"),
			expected: "Failed to resolve stream 'Midnight Drive': signed url expired",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpLastfmScrobble,
			context:  "",
			err:      errors.New("rate limited"),
			expected: "Failed to scrobble track: rate limited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
