package review

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/cli/styles"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
)

// SubmitCmd returns the review submit subcommand
func SubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <review-id>",
		Short: "Update a review without opening the editor",
		Long: `Update the body and/or rating of one of your reviews.

The new values go through the same checks as the editor: the body must be
10 to 255 characters and the rating 1 to 5 stars. Flags left out keep the
review's current value.

Examples:
  # Change the text
  tienda review submit 3 --body="Holds temperature for an hour."

  # Change the rating, JSON output for scripts
  tienda review submit 3 --rating=4 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runSubmit), func(cmd *cobra.Command) error {
			_, _, err := handler.NewFlagParser(cmd).ParseRating("rating")
			return err
		}),
	}

	cmd.Flags().String("body", "", "New review text")
	cmd.Flags().Int("rating", 0, "New star rating (1-5)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

// Store is what a headless submission needs from the daemon
type Store interface {
	forms.ReviewDispatcher
	GetReview(ctx context.Context, reviewID int) (*models.Review, error)
}

// SubmitInput is what the caller asked to change. A nil Body or a zero
// Rating keeps the stored value.
type SubmitInput struct {
	ReviewID int
	Body     *string
	Rating   int
}

// SubmitResult is reported after the store accepted the edit
type SubmitResult struct {
	ReviewID  int    `json:"review_id"`
	ProductID int    `json:"product_id"`
	Body      string `json:"body"`
	Rating    int    `json:"rating"`
}

// GetID returns the review id for --quiet output
func (r *SubmitResult) GetID() int { return r.ReviewID }

// Human renders the confirmation line
func (r *SubmitResult) Human() string {
	return styles.SuccessStyle.Render(fmt.Sprintf("Review #%d updated", r.ReviewID)) +
		" " + styles.RenderStars(r.Rating)
}

// SubmitError carries the form's error set alongside the failure
type SubmitError struct {
	Err    error
	Fields forms.ErrorSet
}

func (e *SubmitError) Error() string { return e.Err.Error() }

func (e *SubmitError) Unwrap() error { return e.Err }

// FieldErrors returns the messages the editor would have shown
func (e *SubmitError) FieldErrors() map[string]string { return e.Fields }

// Submit loads the review, applies in to a review form and submits it as
// the identity's user
func Submit(ctx context.Context, store Store, identity forms.Identity, timeout time.Duration, in SubmitInput) (*SubmitResult, error) {
	rv, err := store.GetReview(ctx, in.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("review %d: %w", in.ReviewID, err)
	}

	form := forms.NewReviewForm(forms.ReviewSeed{
		ReviewID:  rv.ID,
		ProductID: rv.ProductID,
		Body:      rv.Body,
		Rating:    rv.Rating,
	}, forms.ReviewDeps{
		Dispatcher: store,
		Identity:   identity,
		Timeout:    timeout,
	})

	if in.Body != nil {
		form.SetBody(*in.Body)
	}
	if in.Rating > 0 {
		form.Rating().Select(in.Rating)
	}

	if err := form.Submit(ctx); err != nil {
		if errs := form.Errors(); !errs.Empty() {
			return nil, &SubmitError{Err: err, Fields: errs}
		}
		return nil, err
	}

	draft := form.Draft()
	return &SubmitResult{
		ReviewID:  rv.ID,
		ProductID: rv.ProductID,
		Body:      draft.Body,
		Rating:    draft.Rating,
	}, nil
}

func runSubmit(ctx context.Context, args *handler.Arguments) (any, error) {
	parser := handler.NewFlagParser(args.GetCmd())

	reviewID, err := parser.ParseIDArg(args.Args, "review")
	if err != nil {
		return nil, err
	}
	rating, _, err := parser.ParseRating("rating")
	if err != nil {
		return nil, err
	}

	in := SubmitInput{ReviewID: reviewID, Rating: rating}
	if args.Has("body") {
		body := args.GetString("body", "")
		in.Body = &body
	}
	if in.Body == nil && in.Rating == 0 {
		return nil, fmt.Errorf("%w: pass --body, --rating or both", cli.ErrInvalidFlag)
	}

	c, err := cli.NewCLI(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	return Submit(ctx, c.Client, c.Session, c.Config.SubmitTimeout, in)
}
