// internal/cli/console.go
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewConsoleCommand creates the console command: an interactive loop that
// feeds each line through the interpreter, including the guided multi-step
// dialogues. "exit" or EOF ends the session.
func NewConsoleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive inventory console",
		RunE: func(cmd *cobra.Command, args []string) error {
			interp, _, _ := opts.stack()
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())

			fmt.Fprintln(out, "stockline console，輸入「功能」列出指令，exit 離開")
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				if text == "exit" || text == "quit" {
					break
				}

				reply := interp.Handle(cmd.Context(), opts.UserID, text)
				if reply.Text != "" {
					fmt.Fprintln(out, reply.Text)
				} else if reply.ShowMenu {
					fmt.Fprintln(out, "功能：新增 查詢 補貨 販售 調貨 刪除 總覽 紀錄")
				}
			}
			return scanner.Err()
		},
	}
}
