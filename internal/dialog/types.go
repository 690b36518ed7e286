package dialog

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/choco-tui/internal/theme"
)

// Result is the outcome of a message or confirmation dialog.
type Result int

const (
	// ResultNegative is the zero value: "no", or a dismissed acknowledgement.
	ResultNegative Result = iota
	// ResultAffirmative means "ok" / "yes".
	ResultAffirmative
	// ResultCanceled means the host dismissed the dialog without a choice.
	// Hosts may return it; Service reports it as ResultNegative.
	ResultCanceled
)

func (r Result) String() string {
	switch r {
	case ResultAffirmative:
		return "affirmative"
	case ResultCanceled:
		return "canceled"
	default:
		return "negative"
	}
}

// Style selects which buttons a message dialog offers.
type Style int

const (
	StyleAffirmative Style = iota
	StyleAffirmativeAndNegative
)

// Kind identifies the presentation operation a request belongs to.
type Kind int

const (
	KindMessage Kind = iota
	KindConfirmation
	KindLogin
	KindDialog
	KindChildWindow
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindConfirmation:
		return "confirmation"
	case KindLogin:
		return "login"
	case KindDialog:
		return "dialog"
	case KindChildWindow:
		return "child-window"
	default:
		return "unknown"
	}
}

// Settings carries button labels for message and custom dialogs.
type Settings struct {
	AffirmativeButtonText string
	NegativeButtonText    string
}

// LoginSettings configures the host login flow.
type LoginSettings struct {
	InitialUsername   string
	UsernameWatermark string
	PasswordWatermark string
	NegativeButton    bool
}

// Credentials are returned by a completed login flow.
type Credentials struct {
	Username string
	Password string
}

// Labels are the button captions used by the service. Translation happens
// outside this package; callers pass already-localized strings.
type Labels struct {
	OK  string
	Yes string
	No  string
}

// DefaultLabels returns the English captions.
func DefaultLabels() Labels {
	return Labels{OK: "OK", Yes: "Yes", No: "No"}
}

// SizeUnit tells how a Size is interpreted.
type SizeUnit int

const (
	SizeUnitAuto SizeUnit = iota
	SizeUnitStar
	SizeUnitCells
)

// Size is a layout length: automatic, a proportional share, or fixed cells.
type Size struct {
	Value float64
	Unit  SizeUnit
}

// SizeAuto sizes to content.
var SizeAuto = Size{Unit: SizeUnitAuto}

// SizeStar takes n proportional shares of the available space.
func SizeStar(n float64) Size {
	return Size{Value: n, Unit: SizeUnitStar}
}

// CustomDialog describes a content dialog shown inside the host surface.
type CustomDialog struct {
	Title         string
	Content       any
	ContentMargin Size
	ContentWidth  Size
}

// OverlaySnapshot is the backdrop drawn behind an open child window.
// Values are never mutated; a theme change produces a new snapshot.
type OverlaySnapshot struct {
	Color   lipgloss.Color
	Opacity float64
}

// Host is the single surface able to render dialogs and child windows.
type Host interface {
	ShowMessage(ctx context.Context, title, message string, style Style, settings Settings) (Result, error)
	ShowLogin(ctx context.Context, title, message string, settings *LoginSettings) (*Credentials, error)
	// ShowCustomDialog and HideCustomDialog return once the surface acknowledged the change.
	ShowCustomDialog(ctx context.Context, d *CustomDialog, settings *Settings) error
	HideCustomDialog(ctx context.Context, d *CustomDialog, settings *Settings) error
	// ShowChildWindow blocks until w is closed and returns its result.
	ShowChildWindow(ctx context.Context, w *ChildWindow) (any, error)
	OverlayColor() lipgloss.Color
	OverlayOpacity() float64
}

// Prompter is the synchronous surface used when no Host is attached.
type Prompter interface {
	Acknowledge(title, message string) (bool, error)
	Confirm(title, message string) (bool, error)
}

// ThemeSource notifies about theme changes.
type ThemeSource interface {
	OnChanged(fn func(theme.Change)) (remove func())
}

// ClosableContext is a pending interaction that eventually yields a result.
type ClosableContext[R any] interface {
	WaitForClosing(ctx context.Context) (R, error)
}

// CloseRequester is implemented by contexts that can ask their window to close.
type CloseRequester[R any] interface {
	OnCloseRequested(fn func(R)) (remove func())
}
