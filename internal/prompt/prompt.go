// Package prompt implements the plain console prompts used when no terminal UI
// is attached.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cristianoliveira/choco-tui/internal/colors"
)

// Console asks questions on a line-oriented reader/writer pair.
type Console struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console reading answers from in and writing prompts to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Acknowledge prints message and waits for Enter. It returns false when the
// input is closed before the user acknowledged.
func (c *Console) Acknowledge(title, message string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header(title, message)
	if _, err := fmt.Fprint(c.out, "[OK] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	line, err := c.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(line) {
	case "", "ok", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Confirm asks a yes/no question. An empty answer or closed input means no.
// Unrecognized answers are asked again.
func (c *Console) Confirm(title, message string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.header(title, message)
	for {
		if _, err := fmt.Fprint(c.out, "[y/N] "); err != nil {
			return false, fmt.Errorf("write prompt: %w", err)
		}
		line, err := c.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		colors.Warning(fmt.Sprintf("please answer yes or no (got %q)", line))
	}
}

func (c *Console) header(title, message string) {
	if title != "" {
		fmt.Fprintf(c.out, "%s%s%s\n", colors.Blue, title, colors.Reset)
	}
	fmt.Fprintln(c.out, message)
}

// readLine returns the next trimmed line. A final line without a newline is
// returned before io.EOF.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Assume answers every prompt with a fixed choice. It is used for
// non-interactive runs.
type Assume struct {
	Answer bool
}

// Acknowledge always acknowledges.
func (a Assume) Acknowledge(title, message string) (bool, error) {
	return true, nil
}

// Confirm returns the configured answer.
func (a Assume) Confirm(title, message string) (bool, error) {
	return a.Answer, nil
}
