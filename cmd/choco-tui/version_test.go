package main

import (
	"testing"

	"github.com/cristianoliveira/choco-tui/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVersion string

func (s staticVersion) Version() string { return string(s) }

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(staticVersion("1.2.3+abc1234")))
	require.NoError(t, err)
	assert.Equal(t, "choco-tui version 1.2.3+abc1234\n", out)
}

func TestBuildVersion(t *testing.T) {
	origVersion, origCommit := version.Version, version.Commit
	defer func() { version.Version, version.Commit = origVersion, origCommit }()

	version.Version, version.Commit = "0.5.0", "unknown"
	assert.Equal(t, "0.5.0", buildVersion{}.Version())

	version.Commit = "def5678"
	assert.Equal(t, "0.5.0+def5678", buildVersion{}.Version())
}
