package theme

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkline/internal/log"
)

// Config mirrors config.ThemeConfig to avoid circular imports.
type Config struct {
	Preset string
	Colors map[string]string
}

// Theme is a fully resolved color scheme. Resolution order:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
type Theme struct {
	name   string
	colors map[ColorToken]string
}

// Load resolves a theme from configuration.
func Load(cfg Config) (*Theme, error) {
	colors := maps.Clone(DefaultPreset.Colors)
	name := "default"

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
		name = cfg.Preset
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return nil, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return nil, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	log.Debug(log.CatTheme, "theme loaded", "preset", name, "overrides", len(cfg.Colors))

	return &Theme{name: name, colors: colors}, nil
}

// Default returns the stock theme without any overrides.
func Default() *Theme {
	return &Theme{name: "default", colors: maps.Clone(DefaultPreset.Colors)}
}

// Name returns the preset name the theme was resolved from.
func (t *Theme) Name() string {
	return t.name
}

// Hex returns the raw hex value for a token.
func (t *Theme) Hex(token ColorToken) string {
	return t.colors[token]
}

// Color returns the token's color for lipgloss styling.
func (t *Theme) Color(token ColorToken) lipgloss.AdaptiveColor {
	hex := t.colors[token]
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}

// PresetNames returns the built-in preset names in sorted order.
func PresetNames() []string {
	names := slices.Collect(maps.Keys(Presets))
	slices.Sort(names)
	return names
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
