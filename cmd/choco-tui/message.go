/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"

	"github.com/cristianoliveira/choco-tui/cmd"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/spf13/cobra"
)

type messageClient interface {
	ShowMessage(ctx context.Context, title, message string) (dialog.Result, error)
}

// NewMessageCmd creates the message command with explicit dependencies.
func NewMessageCmd(client messageClient) *cobra.Command {
	if client == nil {
		panic("NewMessageCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "message <title> <text>",
		Short: "Show a message and wait for acknowledgement",
		Long: `Show a message and wait for acknowledgement.

Without a running TUI the message is printed and Enter acknowledges it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := client.ShowMessage(cmd.Context(), args[0], args[1])
			return err
		},
	}
}

var messageCmd = NewMessageCmd(rt)

func init() {
	cmd.RootCmd.AddCommand(messageCmd)
}
