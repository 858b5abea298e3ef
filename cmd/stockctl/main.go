// cmd/stockctl/main.go
package main

import (
	"os"

	"stockline/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
