// Package render draws the package list and the dialog overlay.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/errors"
	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	nameWidth            = 32
	versionWidth         = 16
	pinnedWidth          = 3
	spacesBetweenColumns = 6
	minDialogWidth       = 30
	maxDialogWidth       = 72
	pinnedSymbol         = "📌"
)

// RowState defines the inputs needed to render a package row.
type RowState struct {
	Package  choco.Package
	Width    int
	Selected bool
	Theme    theme.Theme
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	DialogOpen bool
	Login      bool
	Status     string
	StatusType errors.MessageType
	Theme      theme.Theme
}

// Button is one caption in a dialog button row.
type Button struct {
	Label    string
	Selected bool
}

// DialogState defines the inputs needed to render a dialog box.
type DialogState struct {
	Title   string
	Body    string
	Buttons []Button
	Width   int
	Theme   theme.Theme
}

// Header renders the package table header.
func Header(width int, th theme.Theme) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(th.Highlight)
	header := fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		nameWidth, "PACKAGE",
		versionWidth, "INSTALLED",
		versionWidth, "AVAILABLE",
		"PIN",
	)
	return style.Render(truncate(header, width))
}

// Row renders a single package row.
func Row(state RowState) string {
	style := lipgloss.NewStyle().Foreground(state.Theme.Foreground)
	if state.Selected {
		style = style.Background(state.Theme.Highlight).Foreground(state.Theme.Background)
	}
	pinned := ""
	if state.Package.Pinned {
		pinned = pinnedSymbol
	}
	available := state.Package.Available
	if available == "" {
		available = "-"
	}
	row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		nameWidth, truncate(state.Package.Name, nameWidth),
		versionWidth, truncate(state.Package.Version, versionWidth),
		versionWidth, truncate(available, versionWidth),
		pinnedWidth, pinned,
	)
	return style.Render(truncate(row, state.Width))
}

// Footer renders key help, or the status line when one is set.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(state.Theme.Muted)
	if state.Status != "" {
		switch state.StatusType {
		case errors.MessageTypeError:
			return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("Error: " + state.Status)
		case errors.MessageTypeWarning:
			return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("Warning: " + state.Status)
		}
		return helpStyle.Render(state.Status)
	}

	var help []string
	switch {
	case state.Login:
		help = append(help, "Tab: next field", "Enter: sign in", "ESC: cancel")
	case state.DialogOpen:
		help = append(help, "Enter/y: confirm", "n: no", "ESC: close")
	default:
		help = append(help, "j/k: move", "Enter: upgrade", "r: reload", "t: theme", "q: quit")
	}
	return helpStyle.Render(strings.Join(help, "  |  "))
}

// Dialog renders a bordered dialog box with an optional button row.
func Dialog(state DialogState) string {
	width := state.Width
	if width < minDialogWidth {
		width = minDialogWidth
	}
	if width > maxDialogWidth {
		width = maxDialogWidth
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(state.Theme.Highlight)
	bodyStyle := lipgloss.NewStyle().Foreground(state.Theme.Foreground).Width(width - 4)

	parts := []string{titleStyle.Render(state.Title), "", bodyStyle.Render(state.Body)}
	if len(state.Buttons) > 0 {
		parts = append(parts, "", buttons(state.Buttons, state.Theme))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(state.Theme.Highlight).
		Background(state.Theme.Background).
		Padding(0, 1).
		Width(width)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func buttons(bs []Button, th theme.Theme) string {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(th.Foreground)
	selected := base.Background(th.Highlight).Foreground(th.Background)
	rendered := make([]string, len(bs))
	for i, b := range bs {
		if b.Selected {
			rendered[i] = selected.Render(b.Label)
		} else {
			rendered[i] = base.Render("[" + b.Label + "]")
		}
	}
	return strings.Join(rendered, " ")
}

// Place centers box on a width x height area filled with backdrop.
func Place(width, height int, box string, backdrop lipgloss.Color) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(backdrop),
	)
}

// Backdrop blends overlay over background by opacity, the terminal
// equivalent of a translucent layer. Unparsable colors yield overlay as is.
func Backdrop(overlay, background lipgloss.Color, opacity float64) lipgloss.Color {
	top, err := colorful.Hex(string(overlay))
	if err != nil {
		return overlay
	}
	bottom, err := colorful.Hex(string(background))
	if err != nil {
		return overlay
	}
	switch {
	case opacity <= 0:
		return background
	case opacity >= 1:
		return overlay
	}
	return lipgloss.Color(bottom.BlendRgb(top, opacity).Clamped().Hex())
}

// Content renders arbitrary dialog content.
func Content(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case interface{ View() string }:
		return c.View()
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}

func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= 3 {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-3]) + "..."
}
