package choco

import "errors"

var (
	// ErrChocoNotFound is returned when the choco binary cannot be located.
	ErrChocoNotFound = errors.New("choco executable not found")

	// ErrCommandFailed is returned when choco exits with a non-zero status.
	ErrCommandFailed = errors.New("choco command failed")

	// ErrPackageNotFound is returned when a source has no package by that name.
	ErrPackageNotFound = errors.New("package not found")
)
