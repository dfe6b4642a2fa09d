// Package controls is the surface every user input goes through: it
// maps key presses to playback intents. Inputs are translated to
// intents and nothing else; all state decisions live in the engine.
package controls

import (
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/keymap"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

const (
	seekStep     = 5 * time.Second
	seekStepLong = 30 * time.Second
	volumeStep   = 0.05
)

// Player is the intent surface the dispatcher drives. The playback
// engine satisfies it.
type Player interface {
	Toggle()
	Next()
	Previous()
	SeekBy(delta time.Duration)
	AdjustVolume(delta float64)
	ToggleMute()
	CycleRepeat()
	ToggleShuffle()
	ClearQueue()
	DismissError()
	RemoveEntry(instanceID string) error
	Reorder(fromIndex, toIndex int) error
	JumpTo(index int) error
}

// Selection reports which queue entry the UI has highlighted, so
// queue-context actions know what to act on. Index is -1 when nothing
// is highlighted.
type Selection interface {
	SelectedEntry() (entry *queue.Entry, index int)
}

// Dispatcher turns key strings into player intents.
type Dispatcher struct {
	player    Player
	resolver  *keymap.Resolver
	selection Selection

	// textInput suppresses bindings while a text field has focus, so
	// typing "n" into a search box does not skip a track.
	textInput bool
}

// NewDispatcher creates a dispatcher over the default bindings.
func NewDispatcher(player Player, selection Selection) *Dispatcher {
	return &Dispatcher{
		player:    player,
		resolver:  keymap.NewResolver(keymap.All),
		selection: selection,
	}
}

// SetTextInputFocused toggles text-input suppression.
func (d *Dispatcher) SetTextInputFocused(focused bool) {
	d.textInput = focused
}

// HandleKey dispatches a key press. It returns true when the key was
// consumed; unhandled keys (and almost everything while a text input
// has focus) pass through to the caller.
func (d *Dispatcher) HandleKey(key string) bool {
	action := d.resolver.Resolve(key)
	if action == "" {
		return false
	}
	if d.textInput && !allowedInTextInput(action) {
		return false
	}
	return d.dispatch(action)
}

// allowedInTextInput lists the actions that still fire while a text
// field has focus.
func allowedInTextInput(action keymap.Action) bool {
	switch action {
	case keymap.ActionDismissError, keymap.ActionQuit:
		return true
	default:
		return false
	}
}

func (d *Dispatcher) dispatch(action keymap.Action) bool {
	switch action {
	case keymap.ActionPlayPause:
		d.player.Toggle()
	case keymap.ActionNextTrack:
		d.player.Next()
	case keymap.ActionPrevTrack:
		d.player.Previous()
	case keymap.ActionSeekForward:
		d.player.SeekBy(seekStep)
	case keymap.ActionSeekBack:
		d.player.SeekBy(-seekStep)
	case keymap.ActionSeekForwardLong:
		d.player.SeekBy(seekStepLong)
	case keymap.ActionSeekBackLong:
		d.player.SeekBy(-seekStepLong)
	case keymap.ActionVolumeUp:
		d.player.AdjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		d.player.AdjustVolume(-volumeStep)
	case keymap.ActionToggleMute:
		d.player.ToggleMute()
	case keymap.ActionCycleRepeat:
		d.player.CycleRepeat()
	case keymap.ActionToggleShuffle:
		d.player.ToggleShuffle()
	case keymap.ActionClear:
		d.player.ClearQueue()
	case keymap.ActionDismissError:
		d.player.DismissError()
	case keymap.ActionSelect:
		if _, idx := d.selected(); idx >= 0 {
			_ = d.player.JumpTo(idx)
		}
	case keymap.ActionDelete:
		if entry, _ := d.selected(); entry != nil {
			_ = d.player.RemoveEntry(entry.InstanceID)
		}
	case keymap.ActionMoveItemUp:
		if _, idx := d.selected(); idx > 0 {
			_ = d.player.Reorder(idx, idx-1)
		}
	case keymap.ActionMoveItemDown:
		if _, idx := d.selected(); idx >= 0 {
			_ = d.player.Reorder(idx, idx+1)
		}
	default:
		// Navigation and display actions belong to the UI layer.
		return false
	}
	return true
}

func (d *Dispatcher) selected() (*queue.Entry, int) {
	if d.selection == nil {
		return nil, -1
	}
	return d.selection.SelectedEntry()
}
