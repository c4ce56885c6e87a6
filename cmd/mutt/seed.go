package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mutt/internal/seed"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <roster.yaml>",
		Short: "Replay a roster of mutts and ratings into the store",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeed,
	}
	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	roster, err := seed.LoadRoster(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	result, err := seed.Run(ctx, a.svc, roster)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Hatched: %d\n", result.Hatched)
	fmt.Fprintf(os.Stdout, "Bred: %d\n", result.Bred)
	fmt.Fprintf(os.Stdout, "Rated: %d\n", result.Rated)
	fmt.Fprintf(os.Stdout, "Promoted: %d\n", result.Promoted)
	fmt.Fprintf(os.Stdout, "Skipped: %d\n", result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", e)
		}
		return fmt.Errorf("seed finished with %d errors", len(result.Errors))
	}
	return nil
}
