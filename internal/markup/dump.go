package markup

import (
	"fmt"
	"sort"
	"strings"
)

// FormatTokens renders a token stream as one line per token, for the
// inspector pane and the inspect command.
func FormatTokens(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		fmt.Fprintf(&sb, "%3d  %-11s", i, tok.Type)
		if tok.Type == TokenMarker {
			fmt.Fprintf(&sb, " %-13s", tok.Kind)
		} else {
			fmt.Fprintf(&sb, " %-13s", "")
		}
		fmt.Fprintf(&sb, " pos=%-3d len=%-2d %q\n", tok.Pos, tok.Len, tok.Value)
	}
	return sb.String()
}

// FormatTree renders a content tree as an indented outline.
func FormatTree(nodes []Node) string {
	var sb strings.Builder
	formatNodes(&sb, nodes, 0)
	return sb.String()
}

func formatNodes(sb *strings.Builder, nodes []Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch n := n.(type) {
		case *Run:
			fmt.Fprintf(sb, "%sRun %q%s\n", indent, n.Text, styleSuffix(n.Style))
		case *Group:
			fmt.Fprintf(sb, "%sGroup%s\n", indent, styleSuffix(n.Style))
			formatNodes(sb, n.Children, depth+1)
		case *Embedded:
			switch {
			case n.Payload != nil:
				fmt.Fprintf(sb, "%sEmbedded payload=%v\n", indent, n.Payload)
			case n.Offset == OffsetSuper:
				fmt.Fprintf(sb, "%sEmbedded superscript scale=%.1f\n", indent, n.Scale)
				formatNodes(sb, n.Children, depth+1)
			case n.Offset == OffsetSub:
				fmt.Fprintf(sb, "%sEmbedded subscript scale=%.1f\n", indent, n.Scale)
				formatNodes(sb, n.Children, depth+1)
			}
		case *Link:
			fmt.Fprintf(sb, "%sLink url=%s display=%q\n", indent, n.URL, n.DisplayText)
			formatNodes(sb, n.Children, depth+1)
		}
	}
}

// styleSuffix formats non-empty style attributes as a sorted suffix.
func styleSuffix(s Style) string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + s[k]
	}
	return " [" + strings.Join(parts, " ") + "]"
}
