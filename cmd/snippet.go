package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/inkline/internal/config"
	"github.com/zjrosen/inkline/internal/store"
)

var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Manage named markup snippets",
	Long: `Snippets are named markup sources kept in a local SQLite database.

Examples:
  inkline snippet add greeting "**Hello**, {name}!"
  inkline snippet list
  inkline snippet show greeting
  inkline snippet render greeting
  inkline snippet rm greeting`,
}

var snippetAddCmd = &cobra.Command{
	Use:   "add <name> [markup]",
	Short: "Save a snippet (markup from argument, file, or stdin)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSnippetAdd,
}

var snippetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snippets",
	Args:  cobra.NoArgs,
	RunE:  runSnippetList,
}

var snippetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a snippet's raw markup source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnippetShow,
}

var snippetRenderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Render a snippet to styled terminal text",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnippetRender,
}

var snippetRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a snippet",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnippetRm,
}

func init() {
	rootCmd.AddCommand(snippetCmd)
	snippetCmd.AddCommand(snippetAddCmd)
	snippetCmd.AddCommand(snippetListCmd)
	snippetCmd.AddCommand(snippetShowCmd)
	snippetCmd.AddCommand(snippetRenderCmd)
	snippetCmd.AddCommand(snippetRmCmd)

	snippetAddCmd.Flags().StringP("file", "f", "", "read markup from file")
	snippetRenderCmd.Flags().IntP("width", "w", 0, "wrap output at column")
	snippetRenderCmd.Flags().String("hyperlinks", "", "OSC 8 hyperlinks: auto, always, never")
	snippetRenderCmd.Flags().Bool("show-link-targets", false, "append (url) after link text")
	snippetRenderCmd.Flags().Int("max-lines", 0, "cap output at N lines, ellipsis marks the cut (0 = unbounded)")
}

// openStore opens the configured snippet database, creating its parent
// directory on first use.
func openStore() (*store.Store, error) {
	dbPath := cfg.Store.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if dbPath == "" {
		return nil, fmt.Errorf("no snippet database path configured")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return store.Open(dbPath)
}

func runSnippetAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	filePath, _ := cmd.Flags().GetString("file")
	source, err := resolveInput(args[1:], filePath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	snippet, err := s.Save(name, source)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", snippet.Name, snippet.GUID)
	return nil
}

func runSnippetList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	snippets, err := s.List()
	if err != nil {
		return err
	}
	if len(snippets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no snippets saved")
		return nil
	}
	for _, sn := range snippets {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", sn.Name, sn.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSnippetShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	snippet, err := s.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), snippet.Source)
	return nil
}

func runSnippetRender(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	snippet, err := s.Get(args[0])
	if err != nil {
		return err
	}

	out, err := renderMarkup(cmd, snippet.Source)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runSnippetRm(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
