package markup

import "strings"

// Options configures one parse call.
type Options struct {
	// Provider resolves effective styles per marker kind and link
	// state. Required; a nil provider degrades every delta to the base
	// style via the no-op provider.
	Provider StyleProvider

	// BaseStyle is the ambient style plain text starts from.
	BaseStyle Style

	// Placeholders maps "{key}" references to opaque host content.
	// Missing keys re-emit their literal source text.
	Placeholders map[string]any

	// MaxDepth bounds simultaneously open formatting scopes. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) provider() StyleProvider {
	if o.Provider == nil {
		return nopProvider{}
	}
	return o.Provider
}

// Parse runs the full pipeline on text: tokenize, match pairs, build
// the content tree. It is synchronous, allocation-bounded, and never
// fails: malformed formatting degrades to literal text.
func Parse(text string, opts Options) []Node {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	// Fast path: no marker, link, or placeholder syntax anywhere.
	if len(tokens) == 1 && tokens[0].Type == TokenText {
		return []Node{&Run{Text: tokens[0].Value, Style: opts.BaseStyle}}
	}

	b := &builder{
		src:          text,
		provider:     opts.provider(),
		placeholders: opts.Placeholders,
		maxDepth:     opts.maxDepth(),
	}
	return b.buildRegion(tokens, opts.BaseStyle, b.maxDepth)
}

// builder walks matched regions and assembles the content tree.
type builder struct {
	src          string
	provider     StyleProvider
	placeholders map[string]any
	maxDepth     int
}

// buildRegion matches pairs within the region and walks it, flushing
// accumulated text into a Run whenever the active style changes or a
// structural node is emitted. depthBudget is the remaining nesting
// allowance for formatting pairs inside this region; link display text
// and script interiors restart from the builder's full budget.
func (b *builder) buildRegion(tokens []Token, style Style, depthBudget int) []Node {
	toks, m := matchPairs(tokens, depthBudget)

	var out []Node
	var text strings.Builder
	flush := func() {
		if text.Len() == 0 {
			return
		}
		out = append(out, &Run{Text: text.String(), Style: style})
		text.Reset()
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Type {
		case TokenText:
			text.WriteString(tok.Value)

		case TokenMarker:
			closer, isOpen := m.closerOf(i)
			if !isOpen {
				// Either a closer whose opener was consumed by an
				// earlier overlapping region, or a marker the matcher
				// left untouched. Both degrade to literal text.
				text.WriteString(tok.Value)
				continue
			}
			inner := toks[i+1 : closer]
			flush()
			switch tok.Kind {
			case MarkerSuperscript, MarkerSubscript:
				offset := OffsetSuper
				if tok.Kind == MarkerSubscript {
					offset = OffsetSub
				}
				// Scripts restart the nesting budget: their interior is
				// a fresh recursive parse with the current style as base.
				children := b.buildRegion(inner, style, b.maxDepth)
				out = append(out, &Embedded{
					Children: children,
					Offset:   offset,
					Scale:    ScriptScale,
				})
			default:
				resolved := b.provider.Resolve(tok.Kind, style)
				out = append(out, b.buildRegion(inner, resolved, depthBudget-1)...)
			}
			i = closer

		case TokenLinkStart:
			sep, end, ok := linkRegion(toks, i)
			if !ok {
				// The tokenizer only emits link tokens for validated
				// shapes, so this is unreachable from well-formed
				// streams; degrade rather than fail.
				text.WriteString(tok.Value)
				continue
			}
			flush()
			out = append(out, b.buildLink(toks, i, sep, end, style))
			i = end

		case TokenLinkSeparator, TokenLinkEnd:
			// Stray structural tokens degrade to their literal form.
			text.WriteString(tok.Value)

		case TokenPlaceholder:
			payload, ok := b.placeholders[tok.Value]
			if !ok {
				text.WriteString("{")
				text.WriteString(tok.Value)
				text.WriteString("}")
				continue
			}
			flush()
			// The Group carries the active style so placeholder content
			// visually inherits the surrounding formatting.
			out = append(out, &Group{
				Style:    style,
				Children: []Node{&Embedded{Payload: payload, Scale: 1}},
			})
		}
	}
	flush()
	return out
}

// buildLink assembles a Link node from the validated token region
// [start..end]: LinkStart, display tokens, LinkSeparator, optional raw
// url text, LinkEnd.
func (b *builder) buildLink(toks []Token, start, sep, end int, style Style) *Link {
	startTok, sepTok := toks[start], toks[sep]

	// Raw display text comes straight from the source so escapes are
	// preserved for callback reporting.
	rawDisplay := b.src[startTok.Pos+startTok.Len : sepTok.Pos]

	rawURL := ""
	if end == sep+2 && toks[sep+1].Type == TokenText {
		rawURL = toks[sep+1].Value
	}

	linkStyle := b.provider.LinkStyle(style)
	// Display content is a fresh recursive parse with the link style as
	// the new base.
	children := b.buildRegion(toks[start+1:sep], linkStyle, b.maxDepth)

	return &Link{
		URL:         NormalizeURL(rawURL),
		DisplayText: rawDisplay,
		Children:    children,
		Style:       linkStyle,
		HoverStyle:  b.provider.LinkHoverStyle(style),
		Cursor:      b.provider.LinkCursor(),
		OnTap:       b.provider.OnLinkTap(),
		OnHover:     b.provider.OnLinkHover(),
	}
}

// linkRegion locates the separator and end indices for the link
// starting at index start.
func linkRegion(toks []Token, start int) (sep, end int, ok bool) {
	sep = -1
	for i := start + 1; i < len(toks); i++ {
		switch toks[i].Type {
		case TokenLinkSeparator:
			if sep < 0 {
				sep = i
			}
		case TokenLinkEnd:
			if sep >= 0 {
				return sep, i, true
			}
			return 0, 0, false
		}
	}
	return 0, 0, false
}

// nopProvider passes the base style through unchanged. It keeps the
// pipeline total when no provider is supplied.
type nopProvider struct{}

func (nopProvider) Resolve(_ MarkerKind, base Style) Style { return base }
func (nopProvider) LinkStyle(base Style) Style      { return base }
func (nopProvider) LinkHoverStyle(base Style) Style { return base }
func (nopProvider) LinkCursor() CursorHint          { return CursorDefault }
func (nopProvider) OnLinkTap() LinkTapFunc          { return nil }
func (nopProvider) OnLinkHover() LinkHoverFunc      { return nil }
