package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mutt/internal/bloodline"
)

func lineageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineage <token-id>",
		Short: "Show both candidate routes and the current grade of a mutt",
		Args:  cobra.ExactArgs(1),
		RunE:  runLineage,
	}
	return cmd
}

func runLineage(cmd *cobra.Command, args []string) error {
	tokenID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid token id %q", args[0])
	}

	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	view, err := a.svc.Lineage(ctx, tokenID)
	if err != nil {
		return err
	}

	m := view.Mutt
	fmt.Fprintf(os.Stdout, "#%d %s\n", m.TokenID, m.Personality)
	fmt.Fprintf(os.Stdout, "  grade:   %s\n", m.Bloodline.Label())
	fmt.Fprintf(os.Stdout, "  rating:  %.2f (%d reviews)\n", m.AvgRating, m.TotalReviews)
	fmt.Fprintf(os.Stdout, "  parents: #%d x #%d\n", m.ParentA, m.ParentB)
	printRoute("route A", view.RouteA)
	printRoute("route B", view.RouteB)
	if view.Decision.IsPureblood {
		fmt.Fprintf(os.Stdout, "  pureblood via %s\n", formatPath(view.Decision.Route.Path))
	}

	if len(view.Activities) > 0 {
		fmt.Fprintln(os.Stdout, "Activity:")
		for _, act := range view.Activities {
			fmt.Fprintf(os.Stdout, "  %s  %-9s %s\n", act.CreatedAt.Format("2006-01-02 15:04"), act.Type, act.Actor)
		}
	}
	return nil
}

func printRoute(label string, route bloodline.Route) {
	mark := ""
	if route.Qualified {
		mark = " qualified"
	}
	fmt.Fprintf(os.Stdout, "  %s: %s avg=%.2f reviews=%d%s\n", label, formatPath(route.Path), route.AvgRating, route.TotalReviews, mark)
}

func formatPath(path []int64) string {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		parts = append(parts, "#"+strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, " -> ")
}
