// Package theme contains Lip Gloss style definitions and the themeable
// style provider for markup rendering.
package theme

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"

	// Markup scopes
	TokenCodeFg      ColorToken = "code.fg"
	TokenCodeBg      ColorToken = "code.bg"
	TokenHighlightFg ColorToken = "highlight.fg"
	TokenHighlightBg ColorToken = "highlight.bg"
	TokenLink        ColorToken = "link"
	TokenLinkHover   ColorToken = "link.hover"
	TokenScript      ColorToken = "script"

	// Borders (preview chrome)
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Forms
	TokenInputPlaceholder ColorToken = "input.placeholder"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextMuted,

		// Markup scopes
		TokenCodeFg,
		TokenCodeBg,
		TokenHighlightFg,
		TokenHighlightBg,
		TokenLink,
		TokenLinkHover,
		TokenScript,

		// Borders
		TokenBorderDefault,
		TokenBorderFocus,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		// Forms
		TokenInputPlaceholder,
	}
}
