package keymap

// Binding describes a single key binding.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "playback", "queue"
}

// All contains all key bindings, used both for dispatch and for help
// generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit application", "global"},
	{[]string{"?"}, ActionHelp, "Show help", "global"},
	{[]string{"esc"}, ActionDismissError, "Dismiss error", "global"},
	{[]string{"v"}, ActionTogglePlayerDisplay, "Toggle player display", "global"},

	// Playback
	{[]string{"space"}, ActionPlayPause, "Play/pause", "playback"},
	{[]string{"n", "pgdown"}, ActionNextTrack, "Next track", "playback"},
	{[]string{"p", "pgup"}, ActionPrevTrack, "Previous track / restart", "playback"},
	{[]string{"shift+right"}, ActionSeekForward, "Seek +5s", "playback"},
	{[]string{"shift+left"}, ActionSeekBack, "Seek -5s", "playback"},
	{[]string{"ctrl+right"}, ActionSeekForwardLong, "Seek +30s", "playback"},
	{[]string{"ctrl+left"}, ActionSeekBackLong, "Seek -30s", "playback"},
	{[]string{"+", "="}, ActionVolumeUp, "Volume up", "playback"},
	{[]string{"-"}, ActionVolumeDown, "Volume down", "playback"},
	{[]string{"m"}, ActionToggleMute, "Toggle mute", "playback"},
	{[]string{"R"}, ActionCycleRepeat, "Cycle repeat mode", "playback"},
	{[]string{"S"}, ActionToggleShuffle, "Toggle shuffle", "playback"},

	// Queue panel
	{[]string{"j", "down"}, ActionMoveDown, "Move down", "queue"},
	{[]string{"k", "up"}, ActionMoveUp, "Move up", "queue"},
	{[]string{"enter"}, ActionSelect, "Play entry", "queue"},
	{[]string{"d", "delete"}, ActionDelete, "Remove entry", "queue"},
	{[]string{"c"}, ActionClear, "Clear queue", "queue"},
	{[]string{"shift+j"}, ActionMoveItemDown, "Move entry down", "queue"},
	{[]string{"shift+k"}, ActionMoveItemUp, "Move entry up", "queue"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
