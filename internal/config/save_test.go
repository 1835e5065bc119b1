package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readConfig(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))
	return out
}

func TestSaveTheme_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := SaveTheme(path, ThemeConfig{Preset: "nord"})
	require.NoError(t, err)

	cfg := readConfig(t, path)
	theme, ok := cfg["theme"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "nord", theme["preset"])
}

func TestSaveTheme_ReplacesExistingThemeSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := "theme:\n  preset: dracula\nrender:\n  width: 80\n"
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	err := SaveTheme(path, ThemeConfig{
		Preset: "nord",
		Colors: map[string]any{"link": "#123456"},
	})
	require.NoError(t, err)

	cfg := readConfig(t, path)
	theme := cfg["theme"].(map[string]any)
	assert.Equal(t, "nord", theme["preset"])
	colors := theme["colors"].(map[string]any)
	assert.Equal(t, "#123456", colors["link"])

	render := cfg["render"].(map[string]any)
	assert.Equal(t, 80, render["width"], "other sections survive")
}

func TestSaveTheme_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := "# my precious comment\nrender:\n  width: 80\n"
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	require.NoError(t, SaveTheme(path, ThemeConfig{Preset: "nord"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my precious comment")
}

func TestSaveTheme_AppendsWhenThemeMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  width: 40\n"), 0o600))

	require.NoError(t, SaveTheme(path, ThemeConfig{Preset: "dracula"}))

	cfg := readConfig(t, path)
	assert.Equal(t, "dracula", cfg["theme"].(map[string]any)["preset"])
	assert.Equal(t, 40, cfg["render"].(map[string]any)["width"])
}

func TestSaveTheme_FlattensNestedColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := SaveTheme(path, ThemeConfig{
		Colors: map[string]any{
			"code": map[string]any{"fg": "#FF0000"},
		},
	})
	require.NoError(t, err)

	cfg := readConfig(t, path)
	colors := cfg["theme"].(map[string]any)["colors"].(map[string]any)
	assert.Equal(t, "#FF0000", colors["code.fg"])
}
