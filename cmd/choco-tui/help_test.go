package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHelp(t *testing.T) {
	root := &cobra.Command{Use: "choco-tui", Short: "A terminal front end for Chocolatey.", Version: "0.1.0"}
	root.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version information"},
		&cobra.Command{Use: "tui", Short: "Interactive terminal UI for installed packages"},
		&cobra.Command{Use: "confirm <title> <text>", Short: "Ask a yes/no question"},
		&cobra.Command{Use: "hidden-extra", Short: "not listed"},
	)

	var buf bytes.Buffer
	helpOutputWriter = &buf
	defer func() { helpOutputWriter = nil }()

	PrintHelp(root)
	output := buf.String()

	assert.Contains(t, output, "choco-tui v0.1.0")
	assert.Contains(t, output, "A terminal front end for Chocolatey.")
	assert.Contains(t, output, "USAGE:")
	assert.Contains(t, output, "confirm <title> <text>")
	assert.NotContains(t, output, "hidden-extra")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Interactive terminal UI")), bytes.Index(buf.Bytes(), []byte("confirm <title>")))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("confirm <title>")), bytes.Index(buf.Bytes(), []byte("Show version")))
}

func TestHelpCmdFallsBackToRoot(t *testing.T) {
	root := &cobra.Command{Use: "choco-tui", Short: "root"}
	root.SetHelpCommand(NewHelpCmd(&fakeClient{}))

	var buf bytes.Buffer
	helpOutputWriter = &buf
	defer func() { helpOutputWriter = nil }()

	root.SetArgs([]string{"help", "nope"})
	assert.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "choco-tui v0.0.0")
}

func TestHelpChocoPrintsChocoUsage(t *testing.T) {
	client := &fakeClient{chocoHelp: "Usage: choco [command]\n"}
	root := &cobra.Command{Use: "choco-tui", Short: "root"}
	root.SetHelpCommand(NewHelpCmd(client))

	out, err := execute(t, root, "help", "choco")
	require.NoError(t, err)
	assert.Equal(t, "Usage: choco [command]\n", out)
}

func TestHelpChocoFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("choco executable not found")}
	root := &cobra.Command{Use: "choco-tui", Short: "root", SilenceErrors: true, SilenceUsage: true}
	root.SetHelpCommand(NewHelpCmd(client))

	_, err := execute(t, root, "help", "choco")
	assert.EqualError(t, err, "choco help: choco executable not found")
}
