// cmd/ollamasweep/list.go
package ollamasweep

import (
	"github.com/spf13/cobra"
)

// newListCmd builds the 'list' command group, a namespace for subcommands
// that print information about ollamasweep itself.
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Group commands for listing resources",
		Long:  `The 'list' command groups related subcommands that list resources or information. It performs no action on its own.`,
	}
	cmd.AddCommand(newListCommandsCmd())
	return cmd
}
