// Package playback contains the engine that drives the audio sink from
// queue decisions: the playback state machine, the shared player state,
// and its event subscriptions.
package playback

// State represents the playback state machine.
//
// Valid transitions:
//   - Idle    → Loading (a track becomes current)
//   - Loading → Ready   (stream resolved and decodable, still current)
//   - Loading → Error   (resolution or decode failed after retries)
//   - Ready   → Playing (autoplay intent or explicit play)
//   - Playing ⇄ Paused
//   - Playing → Ended   (natural end of media)
//   - Loading/Ready/Playing/Paused → Loading (track change)
//   - Loading/Ready/Playing/Paused → Error   (terminal failure)
//   - Ended   → Loading (queue has more) or Idle (nothing to play)
//
// Seeking is a request, not a state: it is valid in Ready, Playing and
// Paused. Volume and mute changes never change state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateEnded
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded and playable.
func (s State) IsActive() bool {
	return s == StateReady || s == StatePlaying || s == StatePaused
}

// CanSeek returns true if the state accepts seek requests.
func (s State) CanSeek() bool {
	return s.IsActive()
}
