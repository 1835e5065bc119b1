package markup

import "strings"

// Node is the interface for all content tree nodes. Trees are immutable
// once built and are replaced wholesale on cache invalidation; subtrees
// are never shared across cache entries.
type Node interface {
	node()
}

// Run is a leaf of plain text with the effective style attached.
// Runs split at style-change boundaries, not character boundaries, so
// adjacent same-styled text stays in one Run.
type Run struct {
	Text  string
	Style Style
}

func (r *Run) node() {}

// Group wraps multiple children so one style applies uniformly across
// heterogeneous content, such as a placeholder payload spliced into a
// bold region.
type Group struct {
	Children []Node
	Style    Style
}

func (g *Group) node() {}

// ScriptOffset is the vertical direction of an Embedded script run.
type ScriptOffset int

const (
	// OffsetNone marks pass-through embedded content (placeholders).
	OffsetNone ScriptOffset = iota
	// OffsetSuper shifts content up (superscript).
	OffsetSuper
	// OffsetSub shifts content down (subscript).
	OffsetSub
)

// ScriptScale is the factor applied to the unscaled logical font size
// of superscript and subscript runs. It deliberately excludes any
// ambient text-scale factor so outer scaling is not double-applied.
const ScriptScale = 0.6

// Embedded is a non-text node: either an opaque placeholder payload
// carried unchanged through the tree, or a recursively parsed
// superscript/subscript run with positioning metadata. The parsing core
// never interprets or clones Payload.
type Embedded struct {
	Payload  any    // host content for placeholders; nil for scripts
	Children []Node // parsed script content; nil for placeholders
	Offset   ScriptOffset
	Scale    float64
}

func (e *Embedded) node() {}

// Link is a hyperlink with recursively parsed display content.
type Link struct {
	URL string
	// DisplayText is the raw source between "[" and "](", escapes
	// preserved, for callback reporting.
	DisplayText string
	Children    []Node
	Style       Style
	HoverStyle  Style
	Cursor      CursorHint
	OnTap       LinkTapFunc
	OnHover     LinkHoverFunc
}

func (l *Link) node() {}

// PlainText flattens a tree back to its unstyled text content. Embedded
// placeholder payloads render as their string form when they carry one,
// otherwise they are skipped.
func PlainText(nodes []Node) string {
	var sb strings.Builder
	appendPlainText(&sb, nodes)
	return sb.String()
}

func appendPlainText(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Run:
			sb.WriteString(n.Text)
		case *Group:
			appendPlainText(sb, n.Children)
		case *Embedded:
			if n.Children != nil {
				appendPlainText(sb, n.Children)
			} else if s, ok := n.Payload.(string); ok {
				sb.WriteString(s)
			}
		case *Link:
			appendPlainText(sb, n.Children)
		}
	}
}
