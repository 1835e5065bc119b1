package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/inkline/internal/markup"
	"github.com/zjrosen/inkline/internal/render"
	"github.com/zjrosen/inkline/internal/theme"
)

var renderCmd = &cobra.Command{
	Use:   "render [markup]",
	Short: "Render markup to styled terminal text",
	Long: `Render markup from an argument, a file, or stdin.

Examples:
  inkline render "**bold** and _italic_"
  inkline render --file notes.ink --width 60
  echo "x^2^ + y^2^" | inkline render`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("file", "f", "", "read markup from file")
	renderCmd.Flags().IntP("width", "w", 0, "wrap output at column (0 = config default)")
	renderCmd.Flags().String("hyperlinks", "", "OSC 8 hyperlinks: auto, always, never")
	renderCmd.Flags().Bool("show-link-targets", false, "append (url) after link text")
	renderCmd.Flags().Int("max-lines", 0, "cap output at N lines, ellipsis marks the cut (0 = unbounded)")
}

// resolveInput picks the markup source: argument, file, then stdin.
func resolveInput(args []string, filePath string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath) // #nosec G304 -- user-supplied path
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", filePath, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	filePath, _ := cmd.Flags().GetString("file")
	text, err := resolveInput(args, filePath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out, err := renderMarkup(cmd, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// renderMarkup runs the full pipeline on text using config plus any
// flag overrides from cmd.
func renderMarkup(cmd *cobra.Command, text string) (string, error) {
	th, err := loadTheme()
	if err != nil {
		return "", err
	}

	tp, err := newTracingProvider()
	if err != nil {
		return "", fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = tp.Shutdown(cmd.Context()) }()

	width := cfg.Render.Width
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		width = w
	}
	links := cfg.Render.Hyperlinks
	if s, _ := cmd.Flags().GetString("hyperlinks"); s != "" {
		links = s
	}
	showTargets := cfg.Render.ShowLinkTargets
	if set, _ := cmd.Flags().GetBool("show-link-targets"); set {
		showTargets = true
	}
	maxLines, _ := cmd.Flags().GetInt("max-lines")

	session := newSession(tp)
	nodes := session.Parse(cmd.Context(), text, markup.Options{
		Provider: theme.NewProvider(th),
		MaxDepth: cfg.Markup.MaxDepth,
	}, markup.Layout{})

	renderer := render.New(render.Options{
		Width:           width,
		Hyperlinks:      hyperlinkMode(links),
		ShowLinkTargets: showTargets,
		MaxLines:        maxLines,
	})
	return renderer.Render(nodes), nil
}
