package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <token-id>",
		Short: "Re-run the pureblood check for a mutt and promote its route",
		Args:  cobra.ExactArgs(1),
		RunE:  runEvaluate,
	}
	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
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

	decision, err := a.svc.Evaluate(ctx, tokenID)
	if err != nil {
		return err
	}
	if !decision.IsPureblood {
		fmt.Fprintf(os.Stdout, "#%d has no qualifying route\n", tokenID)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Pureblood via %s\n", formatPath(decision.Route.Path))
	return nil
}
