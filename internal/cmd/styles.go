package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck/style"
)

// NewStylesCommand creates the styles subcommand, which lists the registered
// style tags.
func NewStylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the available styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tag := range style.Default().Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
