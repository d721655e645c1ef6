package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck/report"
)

// NewSummaryCommand creates the summary subcommand
func NewSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <report-file>",
		Short: "Summarize a saved report",
		Long: `Read a report written by "stylecheck check" in JSON or YAML and print
its counts and required actions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return runSummary(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().Bool("json", false, "print the summary as JSON")

	return cmd
}

func runSummary(cmd *cobra.Command, path string, asJSON bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	r, err := report.Decode(data)
	if err != nil {
		return err
	}
	s := report.Summarize(r)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	printSummary(cmd.OutOrStdout(), s, "")
	return nil
}
