package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/cli/styles"
	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/launcher"
	"github.com/thenoetrevino/tienda/internal/models"
)

// ProductsCmd returns the products command
func ProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the products in the store",
		Long:  "List every product with its id, for use with tienda browse.",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runProducts)),
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

// productList renders one line per product
type productList []*models.Product

func (l productList) Human() string {
	if len(l) == 0 {
		return styles.SubtitleStyle.Render("No products yet. Run tienda seed.")
	}
	lines := make([]string, 0, len(l))
	for _, p := range l {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.LabelStyle.Render(fmt.Sprintf("#%-3d", p.ID)),
			styles.ValueStyle.Render(p.Name),
			styles.SubtitleStyle.Render(fmt.Sprintf("$%.2f", p.Price)),
		))
	}
	return strings.Join(lines, "\n")
}

func runProducts(ctx context.Context, args *handler.Arguments) (any, error) {
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

	products, err := application.ProductService.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return productList(products), nil
}
