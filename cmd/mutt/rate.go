package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mutt/internal/lineage"
)

func rateCmd() *cobra.Command {
	var in lineage.RateInput
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Rate a mutt and re-evaluate its bloodline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRate(in)
		},
	}
	cmd.Flags().Int64Var(&in.TokenID, "id", 0, "Token id")
	cmd.Flags().StringVar(&in.Voter, "voter", "", "Voter address")
	cmd.Flags().IntVar(&in.Score, "score", 0, "Score from 1 to 5")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("voter")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func runRate(in lineage.RateInput) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	res, err := a.svc.Rate(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "#%d now %.2f over %d reviews\n", res.TokenID, res.AvgRating, res.TotalReviews)
	if !res.Evaluated {
		fmt.Fprintf(os.Stdout, "Bloodline not evaluated; run `mutt evaluate %d` to retry\n", res.TokenID)
		return nil
	}
	if res.Decision.IsPureblood {
		fmt.Fprintf(os.Stdout, "Pureblood via %s\n", formatPath(res.Decision.Route.Path))
	}
	return nil
}
