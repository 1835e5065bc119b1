package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkline/internal/markup"
)

func TestProvider_ResolveFlags(t *testing.T) {
	p := NewProvider(Default())
	base := markup.Style{AttrFg: "#CCCCCC"}

	tests := []struct {
		kind  markup.MarkerKind
		attrs []string
	}{
		{markup.MarkerBold, []string{AttrBold}},
		{markup.MarkerItalic, []string{AttrItalic}},
		{markup.MarkerBoldItalic, []string{AttrBold, AttrItalic}},
		{markup.MarkerStrikethrough, []string{AttrStrike}},
		{markup.MarkerUnderline, []string{AttrUnderline}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := p.Resolve(tt.kind, base)
			for _, attr := range tt.attrs {
				assert.Equal(t, "true", got.Get(attr))
			}
			assert.Equal(t, "#CCCCCC", got.Get(AttrFg), "base attrs carry through")
		})
	}
}

func TestProvider_ResolveCodeSwapsColors(t *testing.T) {
	th := Default()
	p := NewProvider(th)

	got := p.Resolve(markup.MarkerCode, markup.Style{AttrFg: "#CCCCCC"})
	assert.Equal(t, th.Hex(TokenCodeFg), got.Get(AttrFg))
	assert.Equal(t, th.Hex(TokenCodeBg), got.Get(AttrBg))
}

func TestProvider_ResolveHighlight(t *testing.T) {
	th := Default()
	p := NewProvider(th)

	got := p.Resolve(markup.MarkerHighlight, markup.Style{})
	assert.Equal(t, th.Hex(TokenHighlightFg), got.Get(AttrFg))
	assert.Equal(t, th.Hex(TokenHighlightBg), got.Get(AttrBg))
}

func TestProvider_ResolveDoesNotMutateBase(t *testing.T) {
	p := NewProvider(Default())
	base := markup.Style{AttrFg: "#CCCCCC"}

	_ = p.Resolve(markup.MarkerBold, base)
	assert.False(t, base.Has(AttrBold))
}

func TestProvider_LinkStyles(t *testing.T) {
	th := Default()
	p := NewProvider(th)

	link := p.LinkStyle(markup.Style{})
	assert.Equal(t, th.Hex(TokenLink), link.Get(AttrFg))
	assert.Equal(t, "true", link.Get(AttrUnderline))

	hover := p.LinkHoverStyle(markup.Style{})
	assert.Equal(t, th.Hex(TokenLinkHover), hover.Get(AttrFg))

	assert.Equal(t, markup.CursorPointer, p.LinkCursor())
}

func TestProvider_Callbacks(t *testing.T) {
	p := NewProvider(Default())
	assert.Nil(t, p.OnLinkTap())
	assert.Nil(t, p.OnLinkHover())

	var tapped string
	p.WithLinkTap(func(url, display string) { tapped = url })
	require.NotNil(t, p.OnLinkTap())
	p.OnLinkTap()("https://x", "x")
	assert.Equal(t, "https://x", tapped)
}

func TestProvider_NilThemeFallsBack(t *testing.T) {
	p := NewProvider(nil)
	got := p.Resolve(markup.MarkerCode, markup.Style{})
	assert.Equal(t, DefaultPreset.Colors[TokenCodeFg], got.Get(AttrFg))
}

func TestProvider_ParsesEndToEnd(t *testing.T) {
	p := NewProvider(Default())
	nodes := markup.Parse("**a** `b`", markup.Options{Provider: p, BaseStyle: markup.Style{}})

	require.Len(t, nodes, 3)
	assert.Equal(t, "true", nodes[0].(*markup.Run).Style.Get(AttrBold))
	assert.Equal(t, Default().Hex(TokenCodeBg), nodes[2].(*markup.Run).Style.Get(AttrBg))
}
