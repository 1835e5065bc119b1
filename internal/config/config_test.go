package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Empty(t, cfg.Theme.Preset)
	assert.Zero(t, cfg.Markup.MaxDepth)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.CleanupInterval)
	assert.False(t, cfg.Cache.Disabled)
	assert.Equal(t, "auto", cfg.Render.Hyperlinks)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "file", cfg.Tracing.Exporter)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)

	require.NoError(t, cfg.Validate())
}

func TestValidateMarkup(t *testing.T) {
	assert.NoError(t, ValidateMarkup(MarkupConfig{MaxDepth: 0}))
	assert.NoError(t, ValidateMarkup(MarkupConfig{MaxDepth: 5}))
	assert.Error(t, ValidateMarkup(MarkupConfig{MaxDepth: -1}))
}

func TestValidateRender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RenderConfig
		wantErr bool
	}{
		{"defaults", RenderConfig{}, false},
		{"auto", RenderConfig{Hyperlinks: "auto"}, false},
		{"always", RenderConfig{Hyperlinks: "always"}, false},
		{"never", RenderConfig{Hyperlinks: "never"}, false},
		{"bad mode", RenderConfig{Hyperlinks: "sometimes"}, true},
		{"negative width", RenderConfig{Width: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRender(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TracingConfig
		wantErr bool
	}{
		{"defaults", TracingConfig{SampleRate: 1.0}, false},
		{"disabled needs no paths", TracingConfig{Exporter: "file", SampleRate: 1.0}, false},
		{"bad exporter", TracingConfig{Exporter: "jaeger", SampleRate: 1.0}, true},
		{"rate too high", TracingConfig{SampleRate: 1.5}, true},
		{"rate negative", TracingConfig{SampleRate: -0.1}, true},
		{"enabled file without path", TracingConfig{Enabled: true, Exporter: "file", SampleRate: 1.0}, true},
		{"enabled file with path", TracingConfig{Enabled: true, Exporter: "file", FilePath: "/tmp/t.jsonl", SampleRate: 1.0}, false},
		{"enabled otlp without endpoint", TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1.0}, true},
		{"enabled otlp with endpoint", TracingConfig{Enabled: true, Exporter: "otlp", OTLPEndpoint: "localhost:4317", SampleRate: 1.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlattenedColors_NestedYAML(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"code": map[string]any{
				"fg": "#FF0000",
				"bg": "#000000",
			},
			"link": "#54A0FF",
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#FF0000", flat["code.fg"])
	assert.Equal(t, "#000000", flat["code.bg"])
	assert.Equal(t, "#54A0FF", flat["link"])
}

func TestFlattenedColors_DotNotation(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"code.fg": "#FF0000",
		},
	}
	assert.Equal(t, "#FF0000", theme.FlattenedColors()["code.fg"])
}

func TestFlattenedColors_MapAnyAny(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"code": map[any]any{
				"fg": "#FF0000",
			},
		},
	}
	assert.Equal(t, "#FF0000", theme.FlattenedColors()["code.fg"])
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Inkline Configuration")
}

func TestDefaultConfigTemplate_ParsesAndMatchesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultConfigTemplate()), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.CleanupInterval)
	assert.Equal(t, "auto", cfg.Render.Hyperlinks)
	assert.Zero(t, cfg.Markup.MaxDepth)
	require.NoError(t, cfg.Validate())
}
