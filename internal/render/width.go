package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the printable cell width of s, ignoring ANSI escape
// sequences.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Strip removes ANSI escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Truncate shortens plain text to at most width cells without splitting
// grapheme clusters, appending tail when anything was cut. It operates
// on unstyled text; truncate before styling.
func Truncate(s string, width int, tail string) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}

	budget := width - runewidth.StringWidth(tail)
	if budget < 0 {
		budget = 0
	}

	var sb strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := runewidth.StringWidth(cluster)
		if used+w > budget {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	sb.WriteString(tail)
	return sb.String()
}
