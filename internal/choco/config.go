package choco

import (
	"time"

	"github.com/cristianoliveira/choco-tui/internal/config"
	"github.com/cristianoliveira/choco-tui/internal/logging"
)

const (
	// DefaultBinary is looked up on PATH.
	DefaultBinary = "choco"
	// DefaultTimeout bounds a single choco invocation.
	DefaultTimeout = 2 * time.Minute
)

// ClientOption is a functional option for configuring a DefaultClient.
type ClientOption func(*DefaultClient)

// WithBinary sets the choco executable name or path.
func WithBinary(path string) ClientOption {
	return func(c *DefaultClient) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithTimeout sets the timeout for a single command. Zero disables it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DefaultClient) {
		c.timeout = timeout
	}
}

// WithSource adds --source to commands that query a feed.
func WithSource(source string) ClientOption {
	return func(c *DefaultClient) {
		c.source = source
	}
}

// WithLogger sets the logger for command runs. Defaults to the global logger.
func WithLogger(l logging.Logger) ClientOption {
	return func(c *DefaultClient) {
		c.logger = l
	}
}

// OptionsFromConfig builds options from the choco_* configuration keys.
func OptionsFromConfig() []ClientOption {
	return []ClientOption{
		WithBinary(config.Get("choco_path", DefaultBinary)),
		WithTimeout(time.Duration(config.GetInt("choco_timeout", int(DefaultTimeout/time.Second))) * time.Second),
		WithSource(config.Get("choco_source", "")),
	}
}
