package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func leaderboardCmd() *cobra.Command {
	var limit int
	var sync bool
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank houses by their pureblood route",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(limit, sync)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Sacred cutoff (defaults to leaderboard.limit)")
	cmd.Flags().BoolVar(&sync, "sync", false, "Store the sacred28 grade for houses above the cutoff")
	return cmd
}

func runLeaderboard(limit int, sync bool) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	if limit <= 0 {
		limit = a.cfg.Leaderboard.Limit
	}

	houses, err := a.svc.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}
	if len(houses) == 0 {
		fmt.Fprintln(os.Stdout, "No pureblood houses yet.")
	}
	for _, house := range houses {
		mark := " "
		if house.Sacred {
			mark = "*"
		}
		fmt.Fprintf(os.Stdout, "%s%3d  #%-6d avg=%.2f reviews=%-5d members=%d  %s\n",
			mark, house.Rank, house.Head, house.AvgRating, house.TotalReviews, len(house.Members), formatPath(house.Route))
	}

	if !sync {
		return nil
	}
	res, err := a.svc.SyncSacred(ctx, limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Sacred sync: %d promoted, %d restored\n", res.Promoted, res.Restored)
	return nil
}
