// Package cmd implements the inkline command line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/inkline/internal/config"
	"github.com/zjrosen/inkline/internal/log"
	"github.com/zjrosen/inkline/internal/markup"
	"github.com/zjrosen/inkline/internal/render"
	"github.com/zjrosen/inkline/internal/theme"
	"github.com/zjrosen/inkline/internal/tracing"
	"github.com/zjrosen/inkline/internal/ui/preview"
	"github.com/zjrosen/inkline/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()

	// The preview marks link zones through bubblezone's global manager;
	// Scan/Mark panic if it was never created.
	zone.NewGlobal()
}

var (
	version  = "dev"
	cfgFile  string
	debugLog bool
	cfg      config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:     "inkline [markup]",
	Short:   "Inline markup styling for the terminal",
	Long: `Inkline parses an inline formatting mini-language (bold, italic,
strikethrough, underline, highlight, code, scripts, links, placeholders)
and renders it as styled terminal text.

Run without arguments to open the live preview. Pass markup or use
--file to seed it.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runPreview,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/inkline/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false,
		"write debug logs to ~/.config/inkline/debug.log")
	rootCmd.Flags().StringP("file", "f", "",
		"markup file to preview with live reload")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("markup.max_depth", defaults.Markup.MaxDepth)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)
	viper.SetDefault("cache.disabled", defaults.Cache.Disabled)
	viper.SetDefault("render.width", defaults.Render.Width)
	viper.SetDefault("render.hyperlinks", defaults.Render.Hyperlinks)
	viper.SetDefault("render.show_link_targets", defaults.Render.ShowLinkTargets)
	viper.SetDefault("store.db_path", defaults.Store.DBPath)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .inkline/config.yaml (current directory)
		// 2. ~/.config/inkline/config.yaml (user config)
		if _, err := os.Stat(".inkline/config.yaml"); err == nil {
			viper.SetConfigFile(".inkline/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "inkline"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default user config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if home, herr := os.UserHomeDir(); herr == nil {
				defaultPath := filepath.Join(home, ".config", "inkline", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
				// If write fails, just continue with defaults (no config file)
			}
		}
	}

	_ = viper.Unmarshal(&cfg)

	if debugLog || os.Getenv("INKLINE_DEBUG") != "" {
		initDebugLog()
	}
}

// initDebugLog enables the file logger next to the user config.
func initDebugLog() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	logPath := filepath.Join(home, ".config", "inkline", "debug.log")
	cleanup, err := log.Init(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log unavailable: %v\n", err)
		return
	}
	log.SetEnabled(true)
	log.SetMinLevel(log.LevelDebug)
	logCleanup = cleanup
}

// loadTheme resolves the configured theme preset and color overrides.
func loadTheme() (*theme.Theme, error) {
	th, err := theme.Load(theme.Config{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid theme configuration: %w", err)
	}
	return th, nil
}

// newTracingProvider builds the trace provider from config. The file
// exporter path falls back to the default traces location.
func newTracingProvider() (*tracing.Provider, error) {
	filePath := cfg.Tracing.FilePath
	if filePath == "" {
		filePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
}

// newSession builds the memoizing parse session from config.
func newSession(provider *tracing.Provider) *markup.Session {
	return markup.NewSession(markup.SessionConfig{
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
		Disabled:        cfg.Cache.Disabled,
		Tracer:          provider.Tracer(),
	})
}

// hyperlinkMode maps the config string to the renderer mode.
func hyperlinkMode(s string) render.HyperlinkMode {
	switch s {
	case "always":
		return render.HyperlinkAlways
	case "never":
		return render.HyperlinkNever
	default:
		return render.HyperlinkAuto
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	th, err := loadTheme()
	if err != nil {
		return err
	}

	tp, err := newTracingProvider()
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = tp.Shutdown(cmd.Context()) }()

	previewCfg := preview.Config{
		Theme:      th,
		Session:    newSession(tp),
		Hyperlinks: hyperlinkMode(cfg.Render.Hyperlinks),
	}

	if len(args) == 1 {
		previewCfg.InitialText = args[0]
	}

	filePath, _ := cmd.Flags().GetString("file")
	var w *watcher.Watcher
	if filePath != "" {
		data, err := os.ReadFile(filePath) // #nosec G304 -- user-supplied path
		if err != nil {
			return fmt.Errorf("reading %s: %w", filePath, err)
		}
		previewCfg.InitialText = string(data)
		previewCfg.LoadSource = func() (string, error) {
			data, err := os.ReadFile(filePath) // #nosec G304
			return string(data), err
		}

		w, err = watcher.New(watcher.DefaultConfig(filePath))
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		onChange, err := w.Start()
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		previewCfg.OnChange = onChange
	}

	model := preview.New(previewCfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if logCleanup != nil {
		logCleanup()
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
