package main

import (
	"os"

	"github.com/spf13/cobra"

	"mutt/internal/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "mutt",
		Short:        "Bloodline evaluator for bred mutts",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "Path to the project config")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(mcpCmd())
	root.AddCommand(hatchCmd())
	root.AddCommand(breedCmd())
	root.AddCommand(rateCmd())
	root.AddCommand(evaluateCmd())
	root.AddCommand(lineageCmd())
	root.AddCommand(leaderboardCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
