// Package cmd implements the stylecheck command line.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for stylecheck
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stylecheck",
		Short: "Check and correct manuscript formatting against a style guide",
		Long: `Stylecheck reads a Word (.docx) manuscript, checks it against a style
guide such as APA 7, corrects what can be corrected automatically and
reports the rest as required actions.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "stylecheck.yaml", "path to the configuration file")

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewStylesCommand())
	cmd.AddCommand(NewSummaryCommand())

	return cmd
}
