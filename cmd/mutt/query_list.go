package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mutt/internal/store"
)

func queryListCmd() *cobra.Command {
	var filter store.ListFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mutts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(filter)
		},
	}
	cmd.Flags().StringVar(&filter.Bloodline, "bloodline", "", "Filter by grade (mutt, halfblood, pureblood, sacred28)")
	cmd.Flags().StringVar(&filter.Breeder, "breeder", "", "Filter by breeder address")
	cmd.Flags().IntVar(&filter.Limit, "limit", 50, "Max rows")
	return cmd
}

func runList(filter store.ListFilter) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	mutts, err := a.svc.ListMutts(ctx, filter)
	if err != nil {
		return err
	}
	if len(mutts) == 0 {
		fmt.Fprintln(os.Stdout, "No mutts found.")
		return nil
	}
	for _, m := range mutts {
		fmt.Fprintf(os.Stdout, "#%-6d %-10s %.2f (%d)  %s  %s\n", m.TokenID, m.Bloodline, m.AvgRating, m.TotalReviews, m.Breeder, m.Personality)
	}
	return nil
}
