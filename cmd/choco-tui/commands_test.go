package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/tui/app"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	result   dialog.Result
	err      error
	packages []choco.Package
	titles   []string
	runOpts  []app.RunOptions

	chocoHelp string
}

func (f *fakeClient) ChocoHelp(ctx context.Context) (string, error) {
	return f.chocoHelp, f.err
}

func (f *fakeClient) ShowMessage(ctx context.Context, title, message string) (dialog.Result, error) {
	f.titles = append(f.titles, title)
	return dialog.ResultAffirmative, f.err
}

func (f *fakeClient) ShowConfirmation(ctx context.Context, title, message string) (dialog.Result, error) {
	f.titles = append(f.titles, title)
	return f.result, f.err
}

func (f *fakeClient) Outdated(ctx context.Context) ([]choco.Package, error) {
	return f.packages, f.err
}

func (f *fakeClient) RunTUI(ctx context.Context, opts app.RunOptions) error {
	f.runOpts = append(f.runOpts, opts)
	return f.err
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConstructorsRejectNilClient(t *testing.T) {
	assert.Panics(t, func() { NewVersionCmd(nil) })
	assert.Panics(t, func() { NewMessageCmd(nil) })
	assert.Panics(t, func() { NewConfirmCmd(nil) })
	assert.Panics(t, func() { NewTUICmd(nil) })
	assert.Panics(t, func() { NewOutdatedCmd(nil) })
	assert.Panics(t, func() { NewHelpCmd(nil) })
}

func TestMessageCmd(t *testing.T) {
	client := &fakeClient{}
	_, err := execute(t, NewMessageCmd(client), "Done", "All packages upgraded")
	require.NoError(t, err)
	assert.Equal(t, []string{"Done"}, client.titles)

	_, err = execute(t, NewMessageCmd(client), "only-title")
	assert.Error(t, err)
}

func TestConfirmCmd(t *testing.T) {
	tests := []struct {
		name    string
		result  dialog.Result
		args    []string
		wantErr error
		wantOut string
	}{
		{name: "yes", result: dialog.ResultAffirmative, args: []string{"Upgrade", "Upgrade git?"}, wantOut: "affirmative\n"},
		{name: "no", result: dialog.ResultNegative, args: []string{"Upgrade", "Upgrade git?"}, wantErr: ErrDeclined, wantOut: "negative\n"},
		{name: "quiet", result: dialog.ResultNegative, args: []string{"-q", "Upgrade", "Upgrade git?"}, wantErr: ErrDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewConfirmCmd(&fakeClient{result: tt.result}), tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestConfirmCmdPropagatesFault(t *testing.T) {
	fault := errors.New("tty gone")
	_, err := execute(t, NewConfirmCmd(&fakeClient{err: fault}), "a", "b")
	assert.ErrorIs(t, err, fault)
	assert.NotErrorIs(t, err, ErrDeclined)
}

func TestTUICmd(t *testing.T) {
	client := &fakeClient{}
	_, err := execute(t, NewTUICmd(client), "--outdated")
	require.NoError(t, err)
	assert.Equal(t, []app.RunOptions{{Outdated: true}}, client.runOpts)
}

func TestOutdatedCmdPrintsTable(t *testing.T) {
	client := &fakeClient{packages: []choco.Package{
		{Name: "git", Version: "2.40.0", Available: "2.41.0"},
		{Name: "nodejs", Version: "20.1.0", Available: "20.2.0", Pinned: true},
	}}
	out, err := execute(t, NewOutdatedCmd(client))
	require.NoError(t, err)
	assert.Contains(t, out, "PACKAGE")
	assert.Regexp(t, `git\s+2\.40\.0\s+2\.41\.0`, out)
	assert.Regexp(t, `nodejs\s+20\.1\.0\s+20\.2\.0\s+yes`, out)
	assert.Empty(t, client.runOpts)
}

func TestOutdatedCmdWithTUI(t *testing.T) {
	client := &fakeClient{}
	_, err := execute(t, NewOutdatedCmd(client), "--tui")
	require.NoError(t, err)
	assert.Equal(t, []app.RunOptions{{Outdated: true, BrowseOutdated: true}}, client.runOpts)
}

func TestOutdatedCmdWrapsError(t *testing.T) {
	_, err := execute(t, NewOutdatedCmd(&fakeClient{err: choco.ErrChocoNotFound}))
	assert.ErrorIs(t, err, choco.ErrChocoNotFound)
}

func TestRunExitCodes(t *testing.T) {
	assert.Equal(t, 0, run(func() error { return nil }))
	assert.Equal(t, 1, run(func() error { return ErrDeclined }))
	assert.Equal(t, 1, run(func() error { return errors.New("boom") }))
}
