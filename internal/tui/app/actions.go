package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	tuierrors "github.com/cristianoliveira/choco-tui/internal/errors"
	"github.com/cristianoliveira/choco-tui/internal/logging"
	"github.com/cristianoliveira/choco-tui/internal/tui/state"
)

// Actions runs the dialog flows behind the package list. Every method blocks
// on the dialog service and must run outside the program loop.
type Actions struct {
	service *dialog.Service
	client  choco.Client
	sender  state.Sender
	logger  logging.Logger
}

// NewActions creates package actions presenting through service.
func NewActions(service *dialog.Service, client choco.Client, sender state.Sender) *Actions {
	return &Actions{
		service: service,
		client:  client,
		sender:  sender,
		logger:  logging.GetGlobal().With("component", "tui"),
	}
}

func (a *Actions) status(text string, typ tuierrors.MessageType) {
	if a.sender != nil {
		a.sender.Send(state.StatusMsg{Text: text, Type: typ})
	}
}

func (a *Actions) report(err error) {
	if err == nil || errors.Is(err, state.ErrHostClosed) || errors.Is(err, context.Canceled) {
		return
	}
	a.logger.Error("package action failed", "error", err)
	a.status(err.Error(), tuierrors.MessageTypeError)
}

// Inspect shows pkg in a child window and offers to upgrade it. When the
// list did not say which version is available, the source is asked first.
func (a *Actions) Inspect(ctx context.Context, pkg choco.Package) {
	if pkg.Available == "" {
		latest, err := a.client.LatestVersion(ctx, pkg.Name)
		switch {
		case err != nil:
			a.logger.Debug("latest version unavailable", "package", pkg.Name, "error", err)
		case latest != pkg.Version:
			pkg.Available = latest
		}
	}
	signal := dialog.NewCloseSignal[string]()
	choice, err := dialog.ShowChildWindow[string](ctx, a.service, pkg.Name, newDetailsView(pkg, signal), signal)
	if err != nil {
		a.report(err)
		return
	}
	if choice != actionUpgrade {
		return
	}
	a.report(a.Upgrade(ctx, pkg))
}

// BrowseOutdated lists outdated packages in a child window and upgrades the
// one picked.
func (a *Actions) BrowseOutdated(ctx context.Context) error {
	pkgs, err := a.client.Outdated(ctx)
	if err != nil {
		return fmt.Errorf("list outdated: %w", err)
	}
	signal := dialog.NewCloseSignal[string]()
	name, err := dialog.ShowChildWindow[string](ctx, a.service, "Outdated packages", newOutdatedView(pkgs, signal), signal)
	if err != nil || name == "" {
		return err
	}
	for _, p := range pkgs {
		if p.Name == name {
			return a.Upgrade(ctx, p)
		}
	}
	return nil
}

// Upgrade confirms and runs `choco upgrade` for pkg, showing progress in a
// dialog. A feed rejecting the request triggers one login and a retry.
func (a *Actions) Upgrade(ctx context.Context, pkg choco.Package) error {
	target := pkg.Available
	if target == "" {
		target = "the latest version"
	}
	answer, err := a.service.ShowConfirmation(ctx, "Upgrade "+pkg.Name, fmt.Sprintf("Upgrade %s from %s to %s?", pkg.Name, pkg.Version, target))
	if err != nil {
		return err
	}
	if answer != dialog.ResultAffirmative {
		return nil
	}

	progress, runErr, err := a.runUpgrade(ctx, pkg.Name)
	if err != nil {
		return err
	}
	if runErr != nil && progress.needsCredentials() {
		creds, err := a.service.ShowLogin(ctx, "Authentication required", "The package source rejected the request.", &dialog.LoginSettings{
			UsernameWatermark: "username",
			PasswordWatermark: "password",
			NegativeButton:    true,
		})
		if err != nil {
			return err
		}
		if creds == nil {
			a.status("upgrade of "+pkg.Name+" cancelled", tuierrors.MessageTypeWarning)
			return nil
		}
		_, runErr, err = a.runUpgrade(ctx, pkg.Name, "--user", creds.Username, "--password", creds.Password)
		if err != nil {
			return err
		}
	}

	if runErr != nil {
		a.logger.Error("upgrade failed", "package", pkg.Name, "error", runErr)
		_, err := a.service.ShowMessage(ctx, "Upgrade failed", runErr.Error())
		return err
	}
	a.logger.Info("upgraded", "package", pkg.Name)
	a.status("upgraded "+pkg.Name, tuierrors.MessageTypeSuccess)
	if a.sender != nil {
		a.sender.Send(state.ReloadMsg{})
	}
	return nil
}

// runUpgrade shows the upgrade in a progress dialog fed by the client's
// output and finished notifications. runErr is the choco failure; err is a
// presentation failure. While the dialog is open it owns the keyboard, so no
// other choco command runs and the notifications belong to this upgrade.
func (a *Actions) runUpgrade(ctx context.Context, name string, extra ...string) (progress *progressView, runErr, err error) {
	progress = &progressView{}
	done := dialog.NewCloseSignal[error]()
	args := append([]string{"upgrade", name, "-y"}, extra...)

	removeOutput := a.client.OnOutput(func(line string) {
		progress.append(line)
		a.status(line, tuierrors.MessageTypeInfo)
	})
	defer removeOutput()
	removeFinished := a.client.OnFinished(done.Close)
	defer removeFinished()

	go a.client.Stream(ctx, nil, args...)

	if _, err = dialog.ShowDialog[error](ctx, a.service, "Upgrading "+name, progress, done, nil); err != nil {
		return progress, nil, err
	}
	runErr, err = done.WaitForClosing(ctx)
	return progress, runErr, err
}
