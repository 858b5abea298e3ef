// internal/cli/overview.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOverviewCommand creates the overview command: print current stock at
// both locations.
func NewOverviewCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show current stock at the center and the warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, _ := opts.stack()
			text, err := engine.Overview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
