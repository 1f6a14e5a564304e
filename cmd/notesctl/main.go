package main

import (
	"fmt"
	"os"

	"notesapi/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultOpener()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
