package tracing

// Span names used across the pipeline.
const (
	SpanParse = "markup.parse"
)

// Span attribute keys for parse pipeline tracing.
// These constants define the semantic conventions for span attributes
// emitted by the markup session.
const (
	AttrTextLength = "markup.text_length"
	AttrCacheHit   = "markup.cache_hit"
	AttrNodeCount  = "markup.node_count"
)
