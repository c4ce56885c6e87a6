package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query mutts and their lineage from the CLI",
	}
	cmd.AddCommand(queryListCmd())
	cmd.AddCommand(querySQLCmd())
	cmd.AddCommand(queryCypherCmd())
	cmd.AddCommand(queryAncestorsCmd())
	return cmd
}
