// Package errors routes user-facing failures to the active surface: colored
// console output for commands, a status line for the terminal UI.
package errors

import (
	stderrors "errors"
	"sync"

	"github.com/cristianoliveira/choco-tui/internal/dialog"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console surface used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler handles errors by printing through a ColorOutput.
type CLIHandler struct {
	mu     sync.Mutex
	colors ColorOutput
}

// NewCLIHandler creates a CLIHandler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}

// Report sends err to h. Presentation faults are reported as warnings since
// they affect a single dialog only; everything else is an error.
// A nil err is ignored.
func Report(h ErrorHandler, err error) {
	if err == nil || h == nil {
		return
	}
	if stderrors.Is(err, dialog.ErrPresentation) {
		h.Warning(err.Error())
		return
	}
	h.Error(err.Error())
}
