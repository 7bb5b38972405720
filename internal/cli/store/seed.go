package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/app"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/cli/styles"
	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/launcher"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with demo data",
		Long: `Create demo accounts, products and reviews in the store database.
Every demo account uses the password ` + app.DemoPassword + `.`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runSeed)),
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

// seedReport prints what was created
type seedReport struct {
	*app.SeedResult
	Password string `json:"password"`
}

func (r seedReport) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Store seeded"))
	b.WriteString("\n\n")
	for _, u := range r.Users {
		b.WriteString(styles.Field(fmt.Sprintf("User #%d", u.ID), u.Username))
		b.WriteString("\n")
	}
	for _, p := range r.Products {
		b.WriteString(styles.Field(fmt.Sprintf("Product #%d", p.ID), p.Name))
		b.WriteString("\n")
	}
	for _, rv := range r.Reviews {
		b.WriteString(styles.Field(fmt.Sprintf("Review #%d", rv.ID), styles.RenderStars(rv.Rating)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Password for every account: " + r.Password))
	return b.String()
}

func runSeed(ctx context.Context, args *handler.Arguments) (any, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	application, db, err := launcher.OpenApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	res, err := application.Seed(ctx)
	if err != nil {
		return nil, err
	}
	return seedReport{SeedResult: res, Password: app.DemoPassword}, nil
}
