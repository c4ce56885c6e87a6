package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mutt/internal/validate"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check stored grades and routes for consistency",
		RunE:  runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	report, err := validate.Run(ctx, a.db)
	if err != nil {
		return err
	}

	if len(report.Issues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	printIssues("Errors", report, validate.SeverityError)
	printIssues("Warnings", report, validate.SeverityWarn)

	if report.Errors() > 0 {
		return fmt.Errorf("validation failed with %d errors", report.Errors())
	}
	return nil
}

func printIssues(title string, report *validate.Report, severity validate.Severity) {
	var count int
	for _, issue := range report.Issues {
		if issue.Severity == severity {
			count++
		}
	}
	if count == 0 {
		return
	}
	fmt.Fprintf(os.Stdout, "%s (%d):\n", title, count)
	for _, issue := range report.Issues {
		if issue.Severity != severity {
			continue
		}
		fmt.Fprintf(os.Stdout, "  - [%s] #%d %s\n", issue.Code, issue.TokenID, issue.Message)
	}
}
