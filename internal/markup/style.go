package markup

import (
	"sort"
	"strings"
)

// Style is an opaque set of key→value style attributes. The parser
// never interprets attributes; it only threads them through the tree.
// Providers merge deltas onto a base, the renderer interprets the
// result. Value equality (not instance identity) drives cache
// decisions, via Fingerprint.
type Style map[string]string

// Clone returns an independent copy of the style.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With returns a copy of the style with one attribute set.
func (s Style) With(key, value string) Style {
	out := s.Clone()
	out[key] = value
	return out
}

// Get returns the attribute value, or "" when absent.
func (s Style) Get(key string) string {
	return s[key]
}

// Has reports whether the attribute is present and non-empty.
func (s Style) Has(key string) bool {
	return s[key] != ""
}

// Equal reports value equality between two styles.
func (s Style) Equal(other Style) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if other[k] != v {
			return false
		}
	}
	return true
}

// Fingerprint returns a canonical string form of the style: attributes
// sorted by key, joined with unit separators. Identical-by-value styles
// always produce identical fingerprints regardless of instance.
func (s Style) Fingerprint() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(s[k])
	}
	return sb.String()
}

// CursorHint describes the pointer shape a renderer should use while
// hovering a region.
type CursorHint string

const (
	CursorDefault CursorHint = ""
	CursorPointer CursorHint = "pointer"
	CursorText    CursorHint = "text"
)

// LinkTapFunc is invoked when a link is activated.
type LinkTapFunc func(url, displayText string)

// LinkHoverFunc is invoked when hover state over a link changes.
type LinkHoverFunc func(url, displayText string, hovering bool)

// StyleProvider supplies effective styles for marker scopes and links.
// Implementations are assumed to already encode whatever theming or
// inheritance chain the host uses; the parser treats them as pure
// functions for the duration of one parse call.
type StyleProvider interface {
	// Resolve returns the effective style for entering a marker scope.
	Resolve(kind MarkerKind, base Style) Style
	// LinkStyle returns the style for link display content.
	LinkStyle(base Style) Style
	// LinkHoverStyle returns the style applied while a link is hovered.
	LinkHoverStyle(base Style) Style
	// LinkCursor returns the cursor hint for links.
	LinkCursor() CursorHint
	// OnLinkTap returns the tap callback, or nil when links are inert.
	OnLinkTap() LinkTapFunc
	// OnLinkHover returns the hover callback, or nil.
	OnLinkHover() LinkHoverFunc
}
