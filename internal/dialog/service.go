// Package dialog mediates every dialog and child-window interaction with the
// presentation host. All operations share one FIFO mutex, so at most one
// dialog is visually active at a time whether or not a host is attached.
package dialog

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/cristianoliveira/choco-tui/internal/asyncmutex"
	"github.com/cristianoliveira/choco-tui/internal/logging"
	"github.com/cristianoliveira/choco-tui/internal/prompt"
)

// Service is the dialog orchestrator.
type Service struct {
	lock     *asyncmutex.Mutex
	host     atomic.Pointer[hostRef]
	themes   ThemeSource
	prompter Prompter
	logger   logging.Logger
	labels   Labels
	events   Events
	live     atomic.Int64
}

type hostRef struct {
	h Host
}

// Option configures a Service.
type Option func(*Service)

// WithHost attaches a presentation host at construction time.
func WithHost(h Host) Option {
	return func(s *Service) {
		s.SetHost(h)
	}
}

// WithThemeSource sets the theme change notifier used by child windows.
func WithThemeSource(t ThemeSource) Option {
	return func(s *Service) {
		s.themes = t
	}
}

// WithPrompter replaces the console fallback prompt.
func WithPrompter(p Prompter) Option {
	return func(s *Service) {
		if p != nil {
			s.prompter = p
		}
	}
}

// WithLogger sets the logger. Without it the global logger is used.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithLabels sets the localized button captions.
func WithLabels(l Labels) Option {
	return func(s *Service) {
		s.labels = l
	}
}

// New creates a Service. Without a host every operation takes its fallback path.
func New(opts ...Option) *Service {
	s := &Service{
		lock:     asyncmutex.New(),
		prompter: prompt.NewConsole(os.Stdin, os.Stdout),
		labels:   DefaultLabels(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetHost attaches h, or detaches the host when h is nil. Operations already
// in progress keep the host they observed when they started.
func (s *Service) SetHost(h Host) {
	if h == nil {
		s.host.Store(nil)
		return
	}
	s.host.Store(&hostRef{h: h})
}

// Host returns the attached host or nil.
func (s *Service) Host() Host {
	if ref := s.host.Load(); ref != nil {
		return ref.h
	}
	return nil
}

// Events returns the child-window lifecycle notifier.
func (s *Service) Events() *Events {
	return &s.events
}

// LiveSubscriptions returns the number of flow-scoped subscriptions currently
// registered by in-progress child-window flows.
func (s *Service) LiveSubscriptions() int64 {
	return s.live.Load()
}

func (s *Service) log() logging.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logging.GetGlobal()
}

// acquire waits for the presentation permit and reads the host once.
func (s *Service) acquire(ctx context.Context, kind Kind) (*asyncmutex.Guard, Host, error) {
	log := s.log()
	log.Debug("dialog waiting", "kind", kind.String())
	guard, err := s.lock.Acquire(ctx)
	if err != nil {
		log.Warn("dialog wait aborted", "kind", kind.String(), "error", err)
		return nil, nil, err
	}
	host := s.Host()
	log.Debug("dialog started", "kind", kind.String(), "host_attached", host != nil)
	return guard, host, nil
}

func (s *Service) fault(kind Kind, op string, err error) error {
	s.log().Error("dialog failed", "kind", kind.String(), "op", op, "error", err)
	return &PresentationError{Kind: kind, Op: op, Err: err}
}

// ShowMessage shows message with a single acknowledgement button.
// Without a host the console prompt is used and acknowledgement maps to
// ResultAffirmative. The result is always Affirmative or Negative.
func (s *Service) ShowMessage(ctx context.Context, title, message string) (Result, error) {
	guard, host, err := s.acquire(ctx, KindMessage)
	if err != nil {
		return ResultNegative, err
	}
	defer guard.Release()

	if host != nil {
		settings := Settings{AffirmativeButtonText: s.labels.OK}
		res, err := host.ShowMessage(ctx, title, message, StyleAffirmative, settings)
		if err != nil {
			return ResultNegative, s.fault(KindMessage, "show", err)
		}
		return answer(res), nil
	}

	ok, err := s.prompter.Acknowledge(title, message)
	if err != nil {
		return ResultNegative, s.fault(KindMessage, "prompt", err)
	}
	return boolResult(ok), nil
}

// ShowConfirmation asks a yes/no question. A dialog dismissed without a
// choice counts as no.
func (s *Service) ShowConfirmation(ctx context.Context, title, message string) (Result, error) {
	guard, host, err := s.acquire(ctx, KindConfirmation)
	if err != nil {
		return ResultNegative, err
	}
	defer guard.Release()

	if host != nil {
		settings := Settings{
			AffirmativeButtonText: s.labels.Yes,
			NegativeButtonText:    s.labels.No,
		}
		res, err := host.ShowMessage(ctx, title, message, StyleAffirmativeAndNegative, settings)
		if err != nil {
			return ResultNegative, s.fault(KindConfirmation, "show", err)
		}
		return answer(res), nil
	}

	yes, err := s.prompter.Confirm(title, message)
	if err != nil {
		return ResultNegative, s.fault(KindConfirmation, "prompt", err)
	}
	return boolResult(yes), nil
}

// ShowLogin runs the host login flow. Without a host it returns nil
// credentials; it never fabricates them.
func (s *Service) ShowLogin(ctx context.Context, title, message string, settings *LoginSettings) (*Credentials, error) {
	guard, host, err := s.acquire(ctx, KindLogin)
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	if host == nil {
		return nil, nil
	}
	creds, err := host.ShowLogin(ctx, title, message, settings)
	if err != nil {
		return nil, s.fault(KindLogin, "show", err)
	}
	if creds != nil {
		s.log().Info("login completed", "username", creds.Username)
	}
	return creds, nil
}

// answer narrows a host result to Affirmative or Negative.
func answer(r Result) Result {
	return boolResult(r == ResultAffirmative)
}

func boolResult(b bool) Result {
	if b {
		return ResultAffirmative
	}
	return ResultNegative
}
