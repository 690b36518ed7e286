/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/choco-tui/internal/colors"
	"github.com/cristianoliveira/choco-tui/internal/config"
	"github.com/cristianoliveira/choco-tui/internal/logging"
	"github.com/cristianoliveira/choco-tui/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "choco-tui",
	Short: "A terminal front end for Chocolatey.",
	Long: `A terminal front end for Chocolatey.

Dialogs are shown one at a time: inside the TUI when it runs, on the
console otherwise.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRun:  setup,
	PersistentPostRun: teardown,
}

// Execute runs the root command. Errors are returned to main, which decides
// the exit code.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// setup loads configuration and starts file logging before any command runs.
func setup(cmd *cobra.Command, args []string) {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.Name())
}

func teardown(cmd *cobra.Command, args []string) {
	logging.Debug("command finished", "command", cmd.Name())
	if err := logging.ShutdownGlobal(); err != nil {
		colors.Debug(fmt.Sprintf("closing log file: %v", err))
	}
}
