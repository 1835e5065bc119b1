package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkline/internal/markup"
	"github.com/zjrosen/inkline/internal/theme"
)

// toLipgloss maps the opaque style attributes the theme provider emits
// onto a lipgloss style. Unknown attributes are ignored.
func toLipgloss(s markup.Style) lipgloss.Style {
	style := lipgloss.NewStyle().Inline(true)

	if s.Has(theme.AttrBold) {
		style = style.Bold(true)
	}
	if s.Has(theme.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Has(theme.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Has(theme.AttrStrike) {
		style = style.Strikethrough(true)
	}
	if s.Has(theme.AttrFaint) {
		style = style.Faint(true)
	}
	if fg := s.Get(theme.AttrFg); fg != "" {
		style = style.Foreground(lipgloss.Color(fg))
	}
	if bg := s.Get(theme.AttrBg); bg != "" {
		style = style.Background(lipgloss.Color(bg))
	}
	return style
}
