package store

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/launcher"
	"github.com/thenoetrevino/tienda/internal/tui"
)

// BrowseCmd returns the browse command
func BrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <product-id>",
		Short: "Open a product page",
		Long: `Open the product page TUI. From there, e edits your review of the
product, s opens the signup form and f toggles it as a favorite.

Examples:
  tienda browse 1
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := handler.Formatter(cmd)

			productID, err := cli.ParseID(args[0], "product")
			if err != nil {
				return cli.Fail(formatter, err)
			}
			if err := launcher.Launch(tui.Options{ProductID: productID}); err != nil {
				return cli.Fail(formatter, err)
			}
			return nil
		},
	}
}
