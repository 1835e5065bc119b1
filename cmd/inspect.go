package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/inkline/internal/markup"
	"github.com/zjrosen/inkline/internal/theme"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [markup]",
	Short: "Dump the token stream and content tree for markup",
	Long: `Inspect shows what the parser sees: the position-accurate token
stream and the content tree built from it. Useful for debugging why
markup renders the way it does.

Examples:
  inkline inspect "**bold with _italic_ inside**"
  inkline inspect --file notes.ink`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("file", "f", "", "read markup from file")
	inspectCmd.Flags().Bool("plain", false, "resolve no styles (raw tree shape)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	text, err := resolveInput(args, filePath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts := markup.Options{MaxDepth: cfg.Markup.MaxDepth}
	if plain, _ := cmd.Flags().GetBool("plain"); !plain {
		th, err := loadTheme()
		if err != nil {
			return err
		}
		opts.Provider = theme.NewProvider(th)
	}

	tokens := markup.Tokenize(text)
	nodes := markup.Parse(text, opts)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Tokens:")
	fmt.Fprint(out, markup.FormatTokens(tokens))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Tree:")
	fmt.Fprint(out, markup.FormatTree(nodes))
	return nil
}
