package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/inkline/internal/config"
	"github.com/zjrosen/inkline/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available theme presets",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

var themesSetCmd = &cobra.Command{
	Use:   "set <preset>",
	Short: "Make a preset the default theme in the config file",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemesSet,
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesSetCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	for _, name := range theme.PresetNames() {
		preset := theme.Presets[name]
		fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", name, preset.Description)
	}
	return nil
}

func runThemesSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, ok := theme.Presets[name]; !ok {
		return fmt.Errorf("unknown preset %q (run 'inkline themes' to list)", name)
	}

	path, err := themeConfigPath()
	if err != nil {
		return err
	}

	tc := cfg.Theme
	tc.Preset = name
	if err := config.SaveTheme(path, tc); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", name)
	return nil
}

// themeConfigPath resolves where the theme update lands: the --config
// flag, then the file viper loaded, then the default user config.
func themeConfigPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return filepath.Join(home, ".config", "inkline", "config.yaml"), nil
}
