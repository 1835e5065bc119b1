// Package render turns parsed markup trees into styled terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/inkline/internal/log"
	"github.com/zjrosen/inkline/internal/markup"
	"github.com/zjrosen/inkline/internal/theme"
)

// HyperlinkMode controls OSC 8 hyperlink emission.
type HyperlinkMode int

const (
	// HyperlinkAuto emits hyperlinks when the terminal supports them.
	HyperlinkAuto HyperlinkMode = iota
	// HyperlinkAlways emits hyperlinks unconditionally.
	HyperlinkAlways
	// HyperlinkNever suppresses hyperlinks.
	HyperlinkNever
)

// Options configures a Renderer.
type Options struct {
	// Width wraps output at the given column. Zero disables wrapping.
	Width int
	// Hyperlinks selects OSC 8 emission. Default is auto-detection.
	Hyperlinks HyperlinkMode
	// ShowLinkTargets appends the URL after link text when hyperlinks
	// are not emitted.
	ShowLinkTargets bool
	// MaxLines caps the rendered line count; extra lines are dropped
	// and the last kept line ends in an ellipsis. Zero means unbounded.
	MaxLines int
	// LinkMarker, when set, post-processes every rendered link. The
	// preview uses it to wrap links in mouse zones.
	LinkMarker func(url, rendered string) string
}

// Renderer walks markup trees and produces ANSI-styled strings. A
// Renderer is stateless between Render calls and safe to reuse.
type Renderer struct {
	opts Options
	osc8 bool
}

// New creates a renderer, resolving hyperlink support once up front.
func New(opts Options) *Renderer {
	osc8 := false
	switch opts.Hyperlinks {
	case HyperlinkAlways:
		osc8 = true
	case HyperlinkAuto:
		osc8 = DetectOSC8Support()
	}

	log.Debug(log.CatRender, "renderer created", "width", opts.Width, "osc8", osc8)

	return &Renderer{opts: opts, osc8: osc8}
}

// Render produces the styled string for a tree.
func (r *Renderer) Render(nodes []markup.Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(r.renderNode(node))
	}

	out := sb.String()
	if r.opts.Width > 0 {
		out = wordwrap.String(out, r.opts.Width)
	}
	if r.opts.MaxLines > 0 {
		out = r.capLines(out)
	}
	return out
}

// capLines keeps at most MaxLines lines and marks the cut with an
// ellipsis on the last kept line. Truncate only handles unstyled text,
// so a line that must be cut mid-cell loses its styling.
func (r *Renderer) capLines(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= r.opts.MaxLines {
		return s
	}
	lines = lines[:r.opts.MaxLines]

	last := lines[len(lines)-1]
	if r.opts.Width > 0 && Width(last)+1 > r.opts.Width {
		last = Truncate(Strip(last), r.opts.Width, "…")
	} else {
		last += "…"
	}
	lines[len(lines)-1] = last
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderNode(node markup.Node) string {
	switch n := node.(type) {
	case *markup.Run:
		return toLipgloss(n.Style).Render(n.Text)
	case *markup.Group:
		var sb strings.Builder
		for _, child := range n.Children {
			sb.WriteString(r.renderNode(child))
		}
		return sb.String()
	case *markup.Embedded:
		return r.renderEmbedded(n)
	case *markup.Link:
		return r.renderLink(n)
	default:
		return ""
	}
}

func (r *Renderer) renderEmbedded(n *markup.Embedded) string {
	if n.Payload != nil {
		return renderPayload(n.Payload)
	}

	switch n.Offset {
	case markup.OffsetSuper:
		return r.renderScript(n, toSuperscript, "^")
	case markup.OffsetSub:
		return r.renderScript(n, toSubscript, "_")
	default:
		var sb strings.Builder
		for _, child := range n.Children {
			sb.WriteString(r.renderNode(child))
		}
		return sb.String()
	}
}

// renderScript emits Unicode super/subscript glyphs when every grapheme
// translates, and a sigil-wrapped form otherwise.
func (r *Renderer) renderScript(n *markup.Embedded, translate func(string) (string, bool), sigil string) string {
	runs := flattenRuns(n.Children)
	if runs != nil {
		translated := make([]string, len(runs))
		allOK := true
		for i, run := range runs {
			t, ok := translate(run.Text)
			if !ok {
				allOK = false
				break
			}
			translated[i] = t
		}
		if allOK {
			var sb strings.Builder
			for i, run := range runs {
				sb.WriteString(toLipgloss(run.Style).Render(translated[i]))
			}
			return sb.String()
		}
	}

	var sb strings.Builder
	sb.WriteString(sigil)
	sb.WriteString("(")
	for _, child := range n.Children {
		sb.WriteString(r.renderNode(child))
	}
	sb.WriteString(")")
	return sb.String()
}

func (r *Renderer) renderLink(n *markup.Link) string {
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(r.renderNode(child))
	}
	rendered := sb.String()

	if r.osc8 {
		rendered = hyperlink(n.URL, rendered)
	} else if r.opts.ShowLinkTargets {
		rendered += toLipgloss(markup.Style{theme.AttrFaint: "true"}).Render(" (" + n.URL + ")")
	}

	if r.opts.LinkMarker != nil {
		rendered = r.opts.LinkMarker(n.URL, rendered)
	}
	return rendered
}

// flattenRuns returns the runs under nodes, or nil if anything other
// than a run appears.
func flattenRuns(nodes []markup.Node) []*markup.Run {
	runs := make([]*markup.Run, 0, len(nodes))
	for _, node := range nodes {
		run, ok := node.(*markup.Run)
		if !ok {
			return nil
		}
		runs = append(runs, run)
	}
	return runs
}

func renderPayload(payload any) string {
	if s, ok := payload.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", payload)
}
