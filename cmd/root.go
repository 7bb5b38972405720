package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli/review"
	"github.com/thenoetrevino/tienda/internal/cli/session"
	"github.com/thenoetrevino/tienda/internal/cli/store"
)

var rootCmd = &cobra.Command{
	Use:   "tienda",
	Short: "Tienda - a terminal storefront",
	Long: `Tienda is a terminal storefront: browse a product page, edit your
reviews and create an account, backed by a local store daemon.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(store.DaemonCmd())
	rootCmd.AddCommand(store.SeedCmd())
	rootCmd.AddCommand(store.ProductsCmd())
	rootCmd.AddCommand(store.BrowseCmd())
	rootCmd.AddCommand(store.StatsCmd())
	rootCmd.AddCommand(review.ReviewCmd())
	rootCmd.AddCommand(session.LoginCmd())
	rootCmd.AddCommand(session.LogoutCmd())
	rootCmd.AddCommand(session.WhoamiCmd())
	rootCmd.AddCommand(session.SignupCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
