/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/cristianoliveira/choco-tui/cmd"
	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/colors"
	"github.com/cristianoliveira/choco-tui/internal/tui/app"
	"github.com/spf13/cobra"
)

type outdatedClient interface {
	Outdated(ctx context.Context) ([]choco.Package, error)
	RunTUI(ctx context.Context, opts app.RunOptions) error
}

// NewOutdatedCmd creates the outdated command with explicit dependencies.
func NewOutdatedCmd(client outdatedClient) *cobra.Command {
	if client == nil {
		panic("NewOutdatedCmd: client dependency cannot be nil")
	}

	var useTUI bool
	outdatedCmd := &cobra.Command{
		Use:   "outdated",
		Short: "List packages with a newer version available",
		Long: `List packages with a newer version available.

With --tui the list opens in a window inside the terminal UI, where Enter
upgrades the selected package.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useTUI {
				return client.RunTUI(cmd.Context(), app.RunOptions{Outdated: true, BrowseOutdated: true})
			}

			pkgs, err := client.Outdated(cmd.Context())
			if err != nil {
				return fmt.Errorf("outdated: %w", err)
			}
			if len(pkgs) == 0 {
				colors.Success("All packages are up to date")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PACKAGE\tINSTALLED\tAVAILABLE\tPINNED")
			for _, p := range pkgs {
				pinned := ""
				if p.Pinned {
					pinned = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Version, p.Available, pinned)
			}
			return w.Flush()
		},
	}
	outdatedCmd.Flags().BoolVar(&useTUI, "tui", false, "Browse the list in the terminal UI")

	return outdatedCmd
}

var outdatedCmd = NewOutdatedCmd(rt)

func init() {
	cmd.RootCmd.AddCommand(outdatedCmd)
}
