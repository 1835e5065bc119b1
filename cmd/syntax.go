package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/inkline/internal/ui/helpview"
)

var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Show the markup syntax reference",
	Args:  cobra.NoArgs,
	RunE:  runSyntax,
}

func init() {
	rootCmd.AddCommand(syntaxCmd)

	syntaxCmd.Flags().IntP("width", "w", 80, "wrap output at column")
	syntaxCmd.Flags().Bool("plain", false, "print raw markdown without styling")
}

func runSyntax(cmd *cobra.Command, args []string) error {
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		fmt.Fprint(cmd.OutOrStdout(), helpview.SyntaxSource())
		return nil
	}

	width, _ := cmd.Flags().GetInt("width")
	r, err := helpview.New(width)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Syntax()
	if err != nil {
		return fmt.Errorf("rendering syntax reference: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
