package review

import (
	"github.com/spf13/cobra"
)

// ReviewCmd returns the review parent command
func ReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show and edit your reviews",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(SubmitCmd())

	return cmd
}
