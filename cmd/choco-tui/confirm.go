/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/choco-tui/cmd"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/spf13/cobra"
)

// ErrDeclined is returned when the user answers no. It maps to exit code 1.
var ErrDeclined = errors.New("declined")

type confirmClient interface {
	ShowConfirmation(ctx context.Context, title, message string) (dialog.Result, error)
}

// NewConfirmCmd creates the confirm command with explicit dependencies.
func NewConfirmCmd(client confirmClient) *cobra.Command {
	if client == nil {
		panic("NewConfirmCmd: client dependency cannot be nil")
	}

	var quiet bool
	confirmCmd := &cobra.Command{
		Use:   "confirm <title> <text>",
		Short: "Ask a yes/no question",
		Long: `Ask a yes/no question.

Exits 0 when the answer is yes and 1 otherwise. The fallback_prompt setting
chooses between asking on the console and a fixed answer.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.ShowConfirmation(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), result)
			}
			if result != dialog.ResultAffirmative {
				return ErrDeclined
			}
			return nil
		},
	}
	confirmCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the answer")

	return confirmCmd
}

var confirmCmd = NewConfirmCmd(rt)

func init() {
	cmd.RootCmd.AddCommand(confirmCmd)
}
