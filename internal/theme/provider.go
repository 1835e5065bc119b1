package theme

import (
	"github.com/zjrosen/inkline/internal/markup"
)

// Style attribute keys shared between the provider and the renderer.
// The markup parser threads them through opaquely.
const (
	AttrBold      = "bold"
	AttrItalic    = "italic"
	AttrUnderline = "underline"
	AttrStrike    = "strike"
	AttrFaint     = "faint"
	AttrFg        = "fg"
	AttrBg        = "bg"
)

// Provider maps marker scopes to themed style deltas. It implements
// markup.StyleProvider.
type Provider struct {
	theme   *Theme
	onTap   markup.LinkTapFunc
	onHover markup.LinkHoverFunc
}

// NewProvider wraps a theme as a style provider. Callbacks are optional;
// nil leaves links inert.
func NewProvider(t *Theme) *Provider {
	if t == nil {
		t = Default()
	}
	return &Provider{theme: t}
}

// WithLinkTap sets the tap callback and returns the provider.
func (p *Provider) WithLinkTap(fn markup.LinkTapFunc) *Provider {
	p.onTap = fn
	return p
}

// WithLinkHover sets the hover callback and returns the provider.
func (p *Provider) WithLinkHover(fn markup.LinkHoverFunc) *Provider {
	p.onHover = fn
	return p
}

// Resolve returns the effective style for entering a marker scope.
func (p *Provider) Resolve(kind markup.MarkerKind, base markup.Style) markup.Style {
	switch kind {
	case markup.MarkerBold:
		return base.With(AttrBold, "true")
	case markup.MarkerItalic:
		return base.With(AttrItalic, "true")
	case markup.MarkerBoldItalic:
		return base.With(AttrBold, "true").With(AttrItalic, "true")
	case markup.MarkerStrikethrough:
		return base.With(AttrStrike, "true")
	case markup.MarkerUnderline:
		return base.With(AttrUnderline, "true")
	case markup.MarkerHighlight:
		return base.
			With(AttrFg, p.theme.Hex(TokenHighlightFg)).
			With(AttrBg, p.theme.Hex(TokenHighlightBg))
	case markup.MarkerCode:
		return base.
			With(AttrFg, p.theme.Hex(TokenCodeFg)).
			With(AttrBg, p.theme.Hex(TokenCodeBg))
	case markup.MarkerSuperscript, markup.MarkerSubscript:
		return base.With(AttrFg, p.theme.Hex(TokenScript))
	default:
		return base
	}
}

// LinkStyle returns the style for link display content.
func (p *Provider) LinkStyle(base markup.Style) markup.Style {
	return base.
		With(AttrFg, p.theme.Hex(TokenLink)).
		With(AttrUnderline, "true")
}

// LinkHoverStyle returns the style applied while a link is hovered.
func (p *Provider) LinkHoverStyle(base markup.Style) markup.Style {
	return base.
		With(AttrFg, p.theme.Hex(TokenLinkHover)).
		With(AttrUnderline, "true")
}

// LinkCursor returns the cursor hint for links.
func (p *Provider) LinkCursor() markup.CursorHint {
	return markup.CursorPointer
}

// OnLinkTap returns the tap callback, or nil when links are inert.
func (p *Provider) OnLinkTap() markup.LinkTapFunc {
	return p.onTap
}

// OnLinkHover returns the hover callback, or nil.
func (p *Provider) OnLinkHover() markup.LinkHoverFunc {
	return p.onHover
}
