// Package icons provides the glyph set used by the terminal views. The
// active set is chosen once at startup from config, so views can render
// on terminals without nerd fonts or emoji support.
package icons

// Style selects which glyph set is active.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs for one style.
type Icons struct {
	Play       string
	Pause      string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	Volume     string
	VolumeMute string
	Warning    string
}

var (
	nerdIcons = Icons{
		Play:       "", // nf-fa-play
		Pause:      "", // nf-fa-pause
		Shuffle:    "󰒟",      // nf-md-shuffle
		RepeatAll:  "󰑖",      // nf-md-repeat
		RepeatOne:  "󰑘",      // nf-md-repeat_once
		Volume:     "󰕾",      // nf-md-volume_high
		VolumeMute: "󰖁",      // nf-md-volume_off
		Warning:    "", // nf-fa-warning
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Shuffle:    "🔀",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Warning:    "⚠",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		Volume:     "vol",
		VolumeMute: "mut",
		Warning:    "!",
	}

	current = unicodeIcons
)

// Init selects the active icon set. Call once at startup with the
// config value; unknown styles fall back to plain unicode.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Play returns the play indicator.
func Play() string { return current.Play }

// Pause returns the pause indicator.
func Pause() string { return current.Pause }

// Shuffle returns the shuffle mode icon.
func Shuffle() string { return current.Shuffle }

// RepeatAll returns the repeat-all mode icon.
func RepeatAll() string { return current.RepeatAll }

// RepeatOne returns the repeat-one mode icon.
func RepeatOne() string { return current.RepeatOne }

// Volume returns the volume indicator.
func Volume() string { return current.Volume }

// VolumeMute returns the muted volume indicator.
func VolumeMute() string { return current.VolumeMute }

// Warning returns the warning indicator.
func Warning() string { return current.Warning }
