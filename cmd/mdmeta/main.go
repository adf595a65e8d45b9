// Package main is the entry point for the mdmeta CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/mdmeta/cmd/mdmeta/commands"
	"github.com/thoreinstein/mdmeta/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		code := errors.ExitUser
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
			if exitErr.Suggestion != "" {
				fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
			}
		}
		os.Exit(code)
	}
}
