package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"mutt/internal/config"
)

func queryAncestorsCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "ancestors <token-id>",
		Short: "List ancestors of a mutt from the lineage graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid token id %q", args[0])
			}
			return runAncestors(tokenID, depth)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 3, "Generations to walk (max 10)")
	return cmd
}

func runAncestors(tokenID int64, depth int) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}
	if !cfg.GraphEnabled() {
		return fmt.Errorf("neo4j is not configured in %s", configPath)
	}

	client, err := openGraph(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	ancestors, err := client.GetAncestors(ctx, tokenID, depth)
	if err != nil {
		return err
	}
	if len(ancestors) == 0 {
		fmt.Fprintln(os.Stdout, "No ancestors found.")
		return nil
	}
	for _, a := range ancestors {
		fmt.Fprintf(os.Stdout, "%d  #%-6d %s\n", a.Depth, a.TokenID, a.Bloodline)
	}
	return nil
}
