package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mutt/internal/lineage"
)

func hatchCmd() *cobra.Command {
	var in lineage.HatchInput
	cmd := &cobra.Command{
		Use:   "hatch",
		Short: "Create an origin mutt with no parents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHatch(in)
		},
	}
	cmd.Flags().Int64Var(&in.TokenID, "id", 0, "Token id")
	cmd.Flags().StringVar(&in.Breeder, "breeder", "", "Breeder address")
	cmd.Flags().StringVar(&in.Personality, "personality", "", "Personality")
	cmd.Flags().StringVar(&in.PersonalityDesc, "desc", "", "Personality description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("breeder")
	return cmd
}

func runHatch(in lineage.HatchInput) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	m, err := a.svc.Hatch(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Hatched #%d (%s)\n", m.TokenID, m.Bloodline.Label())
	return nil
}
