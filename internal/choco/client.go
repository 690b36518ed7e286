// Package choco runs the Chocolatey command line and parses its
// machine-readable output.
package choco

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/cristianoliveira/choco-tui/internal/colors"
	"github.com/cristianoliveira/choco-tui/internal/logging"
	"github.com/cristianoliveira/choco-tui/internal/notify"
)

// Client is the subset of choco used by the commands and the terminal UI.
type Client interface {
	// Run executes choco with args and returns its stdout and stderr.
	Run(ctx context.Context, args ...string) (string, string, error)
	// Stream executes choco with args, calling onLine for each stdout line.
	Stream(ctx context.Context, onLine func(string), args ...string) error
	ListInstalled(ctx context.Context) ([]Package, error)
	Outdated(ctx context.Context) ([]Package, error)
	LatestVersion(ctx context.Context, name string) (string, error)
	Help(ctx context.Context) (string, error)
	// OnOutput registers fn for every stdout line of every command.
	OnOutput(fn func(line string)) (remove func())
	// OnFinished registers fn for the end of every command; err is nil on success.
	OnFinished(fn func(err error)) (remove func())
}

// DefaultClient implements Client using exec.CommandContext.
type DefaultClient struct {
	binary  string
	timeout time.Duration
	source  string
	logger  logging.Logger

	output   notify.Registry[string]
	finished notify.Registry[error]
}

// NewDefaultClient creates a new DefaultClient with the given options.
func NewDefaultClient(opts ...ClientOption) *DefaultClient {
	client := &DefaultClient{
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// OnOutput registers fn for every stdout line of every command.
func (c *DefaultClient) OnOutput(fn func(line string)) (remove func()) {
	return c.output.Add(fn)
}

// OnFinished registers fn for the end of every command; err is nil on success.
func (c *DefaultClient) OnFinished(fn func(err error)) (remove func()) {
	return c.finished.Add(fn)
}

func (c *DefaultClient) log() logging.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.GetGlobal().With("component", "choco")
}

func (c *DefaultClient) command(ctx context.Context, args []string) (*exec.Cmd, context.CancelFunc) {
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}
	return exec.CommandContext(ctx, c.binary, args...), cancel
}

// Run executes a choco command with the given arguments.
func (c *DefaultClient) Run(ctx context.Context, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := c.exec(ctx, args, &stdout, &stderr, nil)
	return stdout.String(), stderr.String(), err
}

// Stream executes a choco command, delivering stdout line by line.
func (c *DefaultClient) Stream(ctx context.Context, onLine func(string), args ...string) error {
	var stderr bytes.Buffer
	return c.exec(ctx, args, nil, &stderr, onLine)
}

// exec runs the command. stdout lines are fanned out to OnOutput handlers
// and onLine; when stdout is non-nil the raw output is kept as well.
// Credentials in args never reach the log or the returned error.
func (c *DefaultClient) exec(ctx context.Context, args []string, stdout, stderr *bytes.Buffer, onLine func(string)) (err error) {
	start := time.Now()
	log := c.log()
	shown := strings.Join(redactArgs(args), " ")
	log.Debug("run started", "args", shown)
	defer func() {
		if err != nil {
			log.Error("run failed", "args", shown, "error", err, "duration_seconds", time.Since(start).Seconds())
		} else {
			log.Debug("run completed", "args", shown, "duration_seconds", time.Since(start).Seconds())
		}
		c.finished.Notify(err)
	}()

	cmd, cancel := c.command(ctx, args)
	defer cancel()
	cmd.Stderr = stderr

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("choco stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return c.wrap(args, err, "")
	}

	var sink io.Writer = io.Discard
	if stdout != nil {
		sink = stdout
	}
	scanner := bufio.NewScanner(io.TeeReader(pipe, sink))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		c.output.Notify(line)
		if onLine != nil {
			onLine(line)
		}
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		io.Copy(io.Discard, pipe)
	}

	if err := cmd.Wait(); err != nil {
		return c.wrap(args, err, stderr.String())
	}
	if scanErr != nil {
		return fmt.Errorf("read choco output: %w", scanErr)
	}
	return nil
}

func (c *DefaultClient) wrap(args []string, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrChocoNotFound, c.binary)
	}
	shown := strings.Join(redactArgs(args), " ")
	if msg := scrub(strings.TrimSpace(stderr), args); msg != "" {
		colors.Debug("stderr: " + msg)
		return fmt.Errorf("%w: choco %s: %w: %s", ErrCommandFailed, shown, err, msg)
	}
	return fmt.Errorf("%w: choco %s: %w", ErrCommandFailed, shown, err)
}

// withSource appends --source when one is configured.
func (c *DefaultClient) withSource(args ...string) []string {
	if c.source != "" {
		args = append(args, "--source", c.source)
	}
	return args
}

// ListInstalled returns the locally installed packages.
func (c *DefaultClient) ListInstalled(ctx context.Context) ([]Package, error) {
	stdout, _, err := c.Run(ctx, "list", "--limit-output")
	if err != nil {
		return nil, fmt.Errorf("list installed: %w", err)
	}
	return ParseInstalled(stdout), nil
}

// Outdated returns the installed packages with a newer version available.
func (c *DefaultClient) Outdated(ctx context.Context) ([]Package, error) {
	stdout, _, err := c.Run(ctx, c.withSource("outdated", "--limit-output")...)
	if err != nil {
		return nil, fmt.Errorf("list outdated: %w", err)
	}
	return ParseOutdated(stdout), nil
}

// LatestVersion returns the newest version of name published on the source.
func (c *DefaultClient) LatestVersion(ctx context.Context, name string) (string, error) {
	stdout, _, err := c.Run(ctx, c.withSource("search", name, "--exact", "--limit-output")...)
	if err != nil {
		return "", fmt.Errorf("latest version of %s: %w", name, err)
	}
	for _, pkg := range ParseInstalled(stdout) {
		if strings.EqualFold(pkg.Name, name) {
			return pkg.Version, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrPackageNotFound, name)
}

// Help returns choco's usage text.
func (c *DefaultClient) Help(ctx context.Context) (string, error) {
	stdout, _, err := c.Run(ctx, "-?")
	if err != nil {
		return "", fmt.Errorf("help: %w", err)
	}
	return stdout, nil
}
