package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
)

const (
	actionUpgrade = "upgrade"
	progressLines = 8
)

// detailsView is the child window content for one package.
type detailsView struct {
	pkg    choco.Package
	signal *dialog.CloseSignal[string]
}

func newDetailsView(pkg choco.Package, signal *dialog.CloseSignal[string]) *detailsView {
	return &detailsView{pkg: pkg, signal: signal}
}

func (v *detailsView) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Installed: %s\n", v.pkg.Version)
	if v.pkg.Available != "" {
		fmt.Fprintf(&b, "Available: %s\n", v.pkg.Available)
	}
	if v.pkg.Pinned {
		b.WriteString("Pinned: yes\n")
	}
	b.WriteString("\nu: upgrade  q: close")
	return b.String()
}

func (v *detailsView) HandleKey(key string) {
	switch key {
	case "u", "enter":
		v.signal.Close(actionUpgrade)
	case "q":
		v.signal.Close("")
	}
}

// outdatedView lists outdated packages inside a child window.
type outdatedView struct {
	mu       sync.Mutex
	packages []choco.Package
	cursor   int
	signal   *dialog.CloseSignal[string]
}

func newOutdatedView(pkgs []choco.Package, signal *dialog.CloseSignal[string]) *outdatedView {
	return &outdatedView{packages: pkgs, signal: signal}
}

func (v *outdatedView) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.packages) == 0 {
		return "All packages are up to date.\n\nq: close"
	}
	var b strings.Builder
	for i, p := range v.packages {
		marker := "  "
		if i == v.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s %s -> %s\n", marker, p.Name, p.Version, p.Available)
	}
	b.WriteString("\nj/k: move  enter: upgrade  q: close")
	return b.String()
}

func (v *outdatedView) HandleKey(key string) {
	var result string
	closing := false

	v.mu.Lock()
	switch key {
	case "j", "down":
		if v.cursor < len(v.packages)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "enter":
		if len(v.packages) > 0 {
			result, closing = v.packages[v.cursor].Name, true
		}
	case "q":
		closing = true
	}
	v.mu.Unlock()

	if closing {
		v.signal.Close(result)
	}
}

// progressView shows the tail of a running choco command.
type progressView struct {
	mu    sync.Mutex
	lines []string
}

func (v *progressView) append(line string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lines = append(v.lines, line)
}

// Lines returns every line seen so far.
func (v *progressView) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.lines...)
}

func (v *progressView) View() string {
	lines := v.Lines()
	if len(lines) == 0 {
		return "Starting..."
	}
	if len(lines) > progressLines {
		lines = lines[len(lines)-progressLines:]
	}
	return strings.Join(lines, "\n")
}

// needsCredentials reports whether a failed run was rejected by the feed.
func (v *progressView) needsCredentials() bool {
	for _, line := range v.Lines() {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized") {
			return true
		}
	}
	return false
}
