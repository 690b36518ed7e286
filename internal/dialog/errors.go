package dialog

import (
	"errors"
	"fmt"
)

// ErrPresentation matches every fault raised while the host renders or closes
// a dialog, or while waiting for a dialog context to close.
var ErrPresentation = errors.New("presentation fault")

// PresentationError wraps a host or context failure.
type PresentationError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *PresentationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap exposes both ErrPresentation and the underlying cause.
func (e *PresentationError) Unwrap() []error {
	return []error{ErrPresentation, e.Err}
}
