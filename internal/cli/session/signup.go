package session

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/launcher"
	"github.com/thenoetrevino/tienda/internal/tui"
)

// SignupCmd returns the signup command
func SignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Open the signup form. A successful signup signs you in, the same as
tienda login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := launcher.Launch(tui.Options{Signup: true}); err != nil {
				return cli.Fail(handler.Formatter(cmd), err)
			}
			return nil
		},
	}
}
