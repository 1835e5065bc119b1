package theme

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock inkline color scheme.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default inkline theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary: "#CCCCCC",
		TokenTextMuted:   "#696969",

		// Markup scopes
		TokenCodeFg:      "#F9E2AF",
		TokenCodeBg:      "#2D2D2D",
		TokenHighlightFg: "#1A1A1A",
		TokenHighlightBg: "#FECA57",
		TokenLink:        "#54A0FF",
		TokenLinkHover:   "#8AC0FF",
		TokenScript:      "#BBBBBB",

		// Borders
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// Forms
		TokenInputPlaceholder: "#777777",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#CDD6F4", // text
		TokenTextMuted:   "#6C7086", // overlay0

		TokenCodeFg:      "#F9E2AF", // yellow
		TokenCodeBg:      "#313244", // surface0
		TokenHighlightFg: "#1E1E2E", // base
		TokenHighlightBg: "#F9E2AF", // yellow
		TokenLink:        "#89B4FA", // blue
		TokenLinkHover:   "#B4BEFE", // lavender
		TokenScript:      "#A6ADC8", // subtext0

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#CDD6F4", // text

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenInputPlaceholder: "#585B70", // surface2
	},
}

// DraculaPreset is the classic Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#F8F8F2", // foreground
		TokenTextMuted:   "#6272A4", // comment

		TokenCodeFg:      "#F1FA8C", // yellow
		TokenCodeBg:      "#44475A", // current line
		TokenHighlightFg: "#282A36", // background
		TokenHighlightBg: "#F1FA8C", // yellow
		TokenLink:        "#8BE9FD", // cyan
		TokenLinkHover:   "#BD93F9", // purple
		TokenScript:      "#6272A4", // comment

		TokenBorderDefault: "#6272A4", // comment
		TokenBorderFocus:   "#F8F8F2", // foreground

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#FFB86C", // orange
		TokenStatusError:   "#FF5555", // red

		TokenInputPlaceholder: "#44475A", // current line
	},
}

// NordPreset is the Nord arctic theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish color palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#ECEFF4", // snow storm 3
		TokenTextMuted:   "#4C566A", // polar night 4

		TokenCodeFg:      "#EBCB8B", // aurora yellow
		TokenCodeBg:      "#3B4252", // polar night 2
		TokenHighlightFg: "#2E3440", // polar night 1
		TokenHighlightBg: "#EBCB8B", // aurora yellow
		TokenLink:        "#88C0D0", // frost 2
		TokenLinkHover:   "#8FBCBB", // frost 1
		TokenScript:      "#D8DEE9", // snow storm 1

		TokenBorderDefault: "#4C566A", // polar night 4
		TokenBorderFocus:   "#ECEFF4", // snow storm 3

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		TokenInputPlaceholder: "#4C566A", // polar night 4
	},
}

// HighContrastPreset maximizes legibility on low-quality displays.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast theme for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#FFFFFF",
		TokenTextMuted:   "#AAAAAA",

		TokenCodeFg:      "#FFFF00",
		TokenCodeBg:      "#000000",
		TokenHighlightFg: "#000000",
		TokenHighlightBg: "#FFFF00",
		TokenLink:        "#00FFFF",
		TokenLinkHover:   "#FFFFFF",
		TokenScript:      "#FFFFFF",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenInputPlaceholder: "#AAAAAA",
	},
}
