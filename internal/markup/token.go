// Package markup implements the inline formatting pipeline: a
// position-accurate tokenizer, a pair matcher, a tree builder, and a
// memoizing parse session. The mini-language covers bold, italic,
// strikethrough, underline, highlight, inline code, superscript,
// subscript, hyperlinks, and named placeholders.
package markup

// TokenType represents the type of lexical token.
type TokenType int

const (
	// TokenText is a run of plain text. Escape sequences are resolved
	// into the Value; the Pos/Len span still covers the backslashes.
	TokenText TokenType = iota

	// TokenMarker is a formatting marker run such as "**" or "~~".
	TokenMarker

	// TokenLinkStart is the "[" of a validated link shape.
	TokenLinkStart

	// TokenLinkSeparator is the "](" between display text and url.
	TokenLinkSeparator

	// TokenLinkEnd is the ")" closing a validated link shape.
	TokenLinkEnd

	// TokenPlaceholder is a "{key}" reference; Value holds the key.
	TokenPlaceholder
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "TEXT"
	case TokenMarker:
		return "MARKER"
	case TokenLinkStart:
		return "LINK_START"
	case TokenLinkSeparator:
		return "LINK_SEP"
	case TokenLinkEnd:
		return "LINK_END"
	case TokenPlaceholder:
		return "PLACEHOLDER"
	default:
		return "UNKNOWN"
	}
}

// MarkerKind identifies which formatting scope a marker activates.
type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerBold
	MarkerItalic
	MarkerBoldItalic
	MarkerStrikethrough
	MarkerUnderline
	MarkerHighlight
	MarkerCode
	MarkerSuperscript
	MarkerSubscript
)

// markerKinds lists every formatting kind in a stable order. The
// fingerprint builder and the pair matcher iterate this slice so the
// composite cache key and the matching passes stay deterministic.
var markerKinds = []MarkerKind{
	MarkerBold,
	MarkerItalic,
	MarkerBoldItalic,
	MarkerStrikethrough,
	MarkerUnderline,
	MarkerHighlight,
	MarkerCode,
	MarkerSuperscript,
	MarkerSubscript,
}

// String returns the string representation of the marker kind.
func (k MarkerKind) String() string {
	switch k {
	case MarkerBold:
		return "bold"
	case MarkerItalic:
		return "italic"
	case MarkerBoldItalic:
		return "boldItalic"
	case MarkerStrikethrough:
		return "strikethrough"
	case MarkerUnderline:
		return "underline"
	case MarkerHighlight:
		return "highlight"
	case MarkerCode:
		return "code"
	case MarkerSuperscript:
		return "superscript"
	case MarkerSubscript:
		return "subscript"
	default:
		return "none"
	}
}

// Token represents a lexical token.
//
// Pos and Len are byte offsets into the original UTF-8 input. Tokens
// never split a multi-byte rune: marker and link syntax is pure ASCII
// and plain text spans always end on rune boundaries. Concatenating
// every token's source span reconstructs the input exactly.
type Token struct {
	Type TokenType
	Kind MarkerKind // set when Type == TokenMarker
	// Value is the decoded payload: resolved text for TokenText, the
	// literal form for TokenMarker, the key for TokenPlaceholder.
	Value string
	Pos   int // byte offset of the source span
	Len   int // byte length of the source span
}

// Source returns the raw source slice this token was scanned from.
func (t Token) Source(input string) string {
	return input[t.Pos : t.Pos+t.Len]
}
