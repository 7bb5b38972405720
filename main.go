package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/tienda/cmd"
	"github.com/thenoetrevino/tienda/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// commands report their own failures; anything else is cobra's
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
