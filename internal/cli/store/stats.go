package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/cli"
	"github.com/thenoetrevino/tienda/internal/cli/handler"
	"github.com/thenoetrevino/tienda/internal/cli/styles"
	"github.com/thenoetrevino/tienda/internal/dispatch"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show daemon request counters",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runStats)),
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

// statsCard renders a stats snapshot as a card
type statsCard struct {
	*dispatch.Stats
}

func (s statsCard) Human() string {
	lines := []string{
		styles.TitleStyle.Render("tienda daemon"),
		"",
		styles.Field("Uptime", s.Uptime),
		styles.Field("Started", s.StartTime.Local().Format("2006-01-02 15:04:05")),
		styles.Field("Clients", fmt.Sprint(s.ConnectedClients)),
		styles.Field("Requests", fmt.Sprint(s.RequestsHandled)),
		styles.Field("Failed", fmt.Sprint(s.RequestsFailed)),
		styles.Field("Rate limited", fmt.Sprint(s.RequestsLimited)),
	}
	return styles.RenderCard(strings.Join(lines, "\n"))
}

func runStats(ctx context.Context, args *handler.Arguments) (any, error) {
	c, err := cli.NewCLI(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	stats, err := c.Client.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return statsCard{stats}, nil
}
