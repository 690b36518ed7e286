/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"

	"github.com/cristianoliveira/choco-tui/cmd"
	"github.com/cristianoliveira/choco-tui/internal/tui/app"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	RunTUI(ctx context.Context, opts app.RunOptions) error
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	var outdated bool
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI for installed packages",
		Long: `Interactive terminal UI for installed packages.

USAGE:
    choco-tui tui [--outdated]

KEY BINDINGS:
    j/k         Move up/down in the list
    Enter       Show package details (u upgrades, q or ESC closes)
    r           Reload the list
    t           Toggle light/dark theme
    q           Quit TUI`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.RunTUI(cmd.Context(), app.RunOptions{Outdated: outdated})
		},
	}
	tuiCmd.Flags().BoolVar(&outdated, "outdated", false, "List only outdated packages")

	return tuiCmd
}

var tuiCmd = NewTUICmd(rt)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
