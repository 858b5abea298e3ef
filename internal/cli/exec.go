// internal/cli/exec.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command: run one fully-specified command
// through the interpreter and print the reply.
func NewExecCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command...>",
		Short: "Run a one-shot inventory command (e.g. exec 補貨 CL00012 10)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			interp, _, _ := opts.stack()
			reply := interp.Handle(cmd.Context(), opts.UserID, strings.Join(args, " "))
			if reply.Text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			}
			return nil
		},
	}
}
