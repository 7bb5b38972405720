package review

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/cli/styles"
	"github.com/thenoetrevino/tienda/internal/models"
)

// ShowCmd returns the review show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <review-id>",
		Short: "Show a review",
		Args:  cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runShow), func(cmd *cobra.Command) error {
			return nil
		}),
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

// shownReview prints as a card for humans and as the plain record for JSON
type shownReview struct {
	*models.Review
}

func (r shownReview) GetID() int { return r.ID }

func (r shownReview) Human() string { return styles.RenderReview(r.Review) }

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	reviewID, err := handler.NewFlagParser(args.GetCmd()).ParseIDArg(args.Args, "review")
	if err != nil {
		return nil, err
	}

	c, err := cli.NewCLI(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	rv, err := c.Client.GetReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("review %d: %w", reviewID, err)
	}
	return shownReview{rv}, nil
}
