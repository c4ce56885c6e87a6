package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mutt/internal/lineage"
)

func breedCmd() *cobra.Command {
	var in lineage.BreedInput
	cmd := &cobra.Command{
		Use:   "breed",
		Short: "Create a mutt from one or two stored parents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreed(in)
		},
	}
	cmd.Flags().Int64Var(&in.TokenID, "id", 0, "Token id")
	cmd.Flags().StringVar(&in.Breeder, "breeder", "", "Breeder address")
	cmd.Flags().Int64Var(&in.ParentA, "parent-a", 0, "Parent on side A")
	cmd.Flags().Int64Var(&in.ParentB, "parent-b", 0, "Parent on side B")
	cmd.Flags().StringVar(&in.Personality, "personality", "", "Personality")
	cmd.Flags().StringVar(&in.PersonalityDesc, "desc", "", "Personality description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("breeder")
	return cmd
}

func runBreed(in lineage.BreedInput) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	m, err := a.svc.Breed(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Bred #%d from #%d x #%d (%s)\n", m.TokenID, m.ParentA, m.ParentB, m.Bloodline.Label())
	return nil
}
