package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cristianoliveira/choco-tui/cmd"
	"github.com/cristianoliveira/choco-tui/internal/colors"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the command tree and maps its error to an exit code.
func run(execute func() error) int {
	err := execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrDeclined):
		return 1
	default:
		colors.Error(fmt.Sprintf("%v", err))
		return 1
	}
}
