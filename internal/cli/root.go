// internal/cli/root.go
package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stockline/internal/interpreter"
	"stockline/internal/inventory"
	"stockline/internal/session"
	"stockline/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataFile string
	LogFile  string
	UserID   string
}

// NewRootCommand creates the root command for the stockctl CLI. stockctl
// operates on the same inventory and audit files as the bot, through the
// same interpreter, so a command typed here behaves exactly like a chat
// message.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stockctl",
		Short: "Operate the stockline inventory from the terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.UserID == "" {
				opts.UserID = "cli-" + uuid.NewString()[:8]
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DataFile, "data", "inventory.json", "inventory data file")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log", "log.txt", "audit log file")
	cmd.PersistentFlags().StringVar(&opts.UserID, "user", "", "acting user id (default: generated)")

	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewConsoleCommand(opts))
	cmd.AddCommand(NewTailCommand(opts))
	cmd.AddCommand(NewOverviewCommand(opts))

	return cmd
}

// stack builds the interpreter and its dependencies over the configured
// files.
func (o *RootOptions) stack() (*interpreter.Interpreter, inventory.Service, *storage.AuditLog) {
	store := storage.NewStore(o.DataFile)
	audit := storage.NewAuditLog(o.LogFile)
	engine := inventory.NewService(store, audit)
	interp := interpreter.New(engine, session.NewManager(), audit)
	return interp, engine, audit
}
