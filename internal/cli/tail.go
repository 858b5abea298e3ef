// internal/cli/tail.go
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewTailCommand creates the tail command: print the last n audit records.
func NewTailCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tail [n]",
		Short: "Show the most recent audit records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 5
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid line count %q", args[0])
				}
				n = v
			}

			_, _, audit := opts.stack()
			tail, err := audit.Tail(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tail)
			return nil
		},
	}
}
