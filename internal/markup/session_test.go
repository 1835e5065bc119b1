package markup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_CachesRepeatedParses(t *testing.T) {
	s := NewSession(SessionConfig{})
	ctx := context.Background()
	opts := Options{Provider: attrProvider{}, BaseStyle: Style{"fg": "#fff"}}

	first := s.Parse(ctx, "**bold** text", opts, Layout{})
	second := s.Parse(ctx, "**bold** text", opts, Layout{})

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	stats := s.Stats()
	assert.Equal(t, int64(2), stats.Calls)
	assert.Equal(t, int64(1), stats.Parses, "second call must come from cache")
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestSession_ValueEqualInputsHit(t *testing.T) {
	// Fresh option structs and style maps with the same contents must
	// still hit: the key is derived from values, not instances.
	s := NewSession(SessionConfig{})
	ctx := context.Background()

	s.Parse(ctx, "x", Options{Provider: attrProvider{}, BaseStyle: Style{"fg": "red"}}, Layout{TextScale: 1})
	s.Parse(ctx, "x", Options{Provider: attrProvider{}, BaseStyle: Style{"fg": "red"}}, Layout{TextScale: 1})

	assert.Equal(t, int64(1), s.Stats().Parses)
}

func TestSession_DistinctInputsMiss(t *testing.T) {
	s := NewSession(SessionConfig{})
	ctx := context.Background()
	opts := Options{Provider: attrProvider{}}

	s.Parse(ctx, "a", opts, Layout{})
	s.Parse(ctx, "b", opts, Layout{})
	s.Parse(ctx, "a", opts, Layout{MaxLines: 2})
	s.Parse(ctx, "a", opts, Layout{})

	stats := s.Stats()
	assert.Equal(t, int64(4), stats.Calls)
	assert.Equal(t, int64(3), stats.Parses)
	assert.Equal(t, 3, stats.Entries)
}

func TestSession_BaseStyleChangeMisses(t *testing.T) {
	s := NewSession(SessionConfig{})
	ctx := context.Background()

	s.Parse(ctx, "x", Options{Provider: attrProvider{}, BaseStyle: Style{"fg": "red"}}, Layout{})
	s.Parse(ctx, "x", Options{Provider: attrProvider{}, BaseStyle: Style{"fg": "blue"}}, Layout{})

	assert.Equal(t, int64(2), s.Stats().Parses)
}

func TestSession_CallbackIdentityControlsHits(t *testing.T) {
	s := NewSession(SessionConfig{})
	ctx := context.Background()
	tap := func(url, display string) {}

	s.Parse(ctx, "[a](b)", Options{Provider: attrProvider{onTap: tap}}, Layout{})
	s.Parse(ctx, "[a](b)", Options{Provider: attrProvider{onTap: tap}}, Layout{})
	assert.Equal(t, int64(1), s.Stats().Parses, "stable callback reference hits")

	s.Parse(ctx, "[a](b)", Options{Provider: attrProvider{onTap: func(url, display string) {}}}, Layout{})
	assert.Equal(t, int64(2), s.Stats().Parses, "fresh closure misses")
}

func TestSession_Disabled(t *testing.T) {
	s := NewSession(SessionConfig{Disabled: true})
	ctx := context.Background()
	opts := Options{Provider: attrProvider{}}

	s.Parse(ctx, "x", opts, Layout{})
	s.Parse(ctx, "x", opts, Layout{})

	stats := s.Stats()
	assert.Equal(t, int64(2), stats.Parses, "disabled session reparses every call")
	assert.Equal(t, 0, stats.Entries)
}

func TestSession_Invalidate(t *testing.T) {
	s := NewSession(SessionConfig{})
	ctx := context.Background()
	opts := Options{Provider: attrProvider{}}

	s.Parse(ctx, "x", opts, Layout{})
	s.Invalidate()
	assert.Equal(t, 0, s.Stats().Entries)

	s.Parse(ctx, "x", opts, Layout{})
	assert.Equal(t, int64(2), s.Stats().Parses, "invalidation forces a reparse")
}

func TestSession_ResultMatchesDirectParse(t *testing.T) {
	s := NewSession(SessionConfig{})
	opts := Options{Provider: attrProvider{}, BaseStyle: Style{}}
	text := "a **b** [c](d) e^2^"

	cached := s.Parse(context.Background(), text, opts, Layout{})
	direct := Parse(text, opts)

	// Links carry func fields, so compare the flattened text and shape.
	assert.Equal(t, PlainText(direct), PlainText(cached))
	assert.Equal(t, len(direct), len(cached))
}
