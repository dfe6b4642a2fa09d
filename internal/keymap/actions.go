// Package keymap defines key bindings and action dispatch for the
// player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Transport actions
	ActionPlayPause       Action = "play_pause"
	ActionNextTrack       Action = "next_track"
	ActionPrevTrack       Action = "prev_track"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionSeekForwardLong Action = "seek_forward_long"
	ActionSeekBackLong    Action = "seek_back_long"

	// Output actions
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"

	// Mode actions
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"

	// Queue panel actions
	ActionMoveUp       Action = "move_up"
	ActionMoveDown     Action = "move_down"
	ActionSelect       Action = "select"         // enter - play highlighted entry
	ActionDelete       Action = "delete"         // d/delete - remove highlighted entry
	ActionClear        Action = "clear"          // c - clear queue
	ActionMoveItemUp   Action = "move_item_up"   // shift+k
	ActionMoveItemDown Action = "move_item_down" // shift+j

	// Error surface
	ActionDismissError Action = "dismiss_error" // esc

	// Display
	ActionTogglePlayerDisplay Action = "toggle_player_display"
)
