// Package main is the entry point for the ersm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/ersm/cmd/ersm/commands"
	"github.com/thoreinstein/ersm/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	code := errors.ExitUser
	var exitErr *errors.ExitError
	switch {
	case errors.As(err, &exitErr):
		code = exitErr.Code
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
	case errors.Is(err, errors.ErrIO):
		code = errors.ExitSystem
	}

	os.Exit(code)
}
