// Package render provides text layout helpers for the terminal views.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize strips control characters and invalid UTF-8 from metadata so
// bad tags cannot break terminal rendering. Tabs survive; non-breaking
// spaces become regular spaces.
func Sanitize(s string) string {
	if isClean(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			i++
		case r != '\t' && unicode.IsControl(r):
			i += size
		case r == '\u00a0':
			b.WriteByte(' ')
			i += size
		default:
			b.WriteString(s[i : i+size])
			i += size
		}
	}
	return b.String()
}

func isClean(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for i := range len(s) {
		b := s[i]
		if (b < 0x20 && b != '\t') || b == 0x7f {
			return false
		}
		if b >= 0x80 && b <= 0x9f {
			return false
		}
		if b == 0xc2 && i+1 < len(s) && s[i+1] == 0xa0 {
			return false
		}
	}
	return true
}

// Truncate shortens a string to maxWidth display cells, appending an
// ellipsis when it had to cut. Wide runes count as two cells.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// Pad fills a string with spaces to the given display width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad truncates if needed and pads to exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row lays out left and right aligned content in exactly width cells.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator returns a horizontal rule of the given width.
func Separator(width int) string {
	return strings.Repeat("─", width)
}

// EmptyLine returns a blank line of the given width.
func EmptyLine(width int) string {
	return strings.Repeat(" ", width)
}
