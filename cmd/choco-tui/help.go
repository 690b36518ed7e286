/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/choco-tui/cmd"
	"github.com/cristianoliveira/choco-tui/internal/colors"
	"github.com/spf13/cobra"
)

// helpOutputWriter is the writer used by PrintHelp. Can be changed for testing.
var helpOutputWriter io.Writer

// commandOrder is the order commands appear in the help text.
var commandOrder = []string{
	"tui",
	"outdated",
	"message",
	"confirm",
	"help",
	"version",
}

// PrintHelp prints the help information for the given root command.
func PrintHelp(cmd *cobra.Command) {
	w := helpOutputWriter
	if w == nil {
		w = cmd.OutOrStdout()
	}
	printHelp(cmd, w)
}

func printHelp(cmd *cobra.Command, w io.Writer) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %s%-24s%s %s%s%s", colors.Cyan, found.Use, colors.Reset, colors.Green, found.Short, colors.Reset))
	}

	versionStr := cmd.Version
	if versionStr == "" {
		versionStr = "0.0.0"
	}

	headerColor := colors.Blue
	reset := colors.Reset
	helpText := fmt.Sprintf(`%schoco-tui v%s%s

%s%s%s

%sUSAGE:%s
    choco-tui [COMMAND] [OPTIONS]

%sCOMMANDS:%s
%s

%sOPTIONS:%s
    -h, --help      Show help message
`, headerColor, versionStr, reset, colors.Cyan, cmd.Short, reset, headerColor, reset, headerColor, reset, strings.Join(cmdLines, "\n"), headerColor, reset)
	fmt.Fprint(w, helpText)
}

// chocoTopic is the help argument that prints choco's own usage.
const chocoTopic = "choco"

type helpClient interface {
	ChocoHelp(ctx context.Context) (string, error)
}

// NewHelpCmd creates the help command with explicit dependencies.
func NewHelpCmd(client helpClient) *cobra.Command {
	if client == nil {
		panic("NewHelpCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "help [command|choco]",
		Short: "Show this help message",
		Long: `Show this help message.

"help choco" prints the usage of the Chocolatey command line itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				PrintHelp(cmd.Root())
				return nil
			}
			if len(args) == 1 && args[0] == chocoTopic {
				usage, err := client.ChocoHelp(cmd.Context())
				if err != nil {
					return fmt.Errorf("choco help: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), usage)
				return nil
			}
			targetCmd, _, err := cmd.Root().Find(args)
			if err != nil || targetCmd == nil || targetCmd == cmd.Root() {
				PrintHelp(cmd.Root())
				return nil
			}
			return targetCmd.Help()
		},
	}
}

var helpCmd = NewHelpCmd(rt)

func init() {
	cmd.RootCmd.SetHelpCommand(helpCmd)
	cmd.RootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c == c.Root() {
			PrintHelp(c)
			return
		}
		fmt.Fprintln(c.OutOrStdout(), c.Long)
		fmt.Fprintln(c.OutOrStdout())
		fmt.Fprint(c.OutOrStdout(), c.UsageString())
	})
}
