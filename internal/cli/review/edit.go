package review

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/launcher"
	"github.com/thenoetrevino/tienda/internal/tui"
)

// EditCmd returns the review edit subcommand
func EditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <review-id>",
		Short: "Open the review editor",
		Long: `Open the product page with the editor for one of your reviews on top.

Saving closes the editor and reloads the page underneath.

Examples:
  tienda review edit 3
`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	formatter := handler.Formatter(cmd)

	reviewID, err := cli.ParseID(args[0], "review")
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if err := launcher.Launch(tui.Options{ReviewID: reviewID}); err != nil {
		return cli.Fail(formatter, err)
	}
	return nil
}
