package dialog

import (
	"context"

	"github.com/cristianoliveira/choco-tui/internal/theme"
)

// ShowDialog shows content in a host dialog and waits for dctx to close.
// The dialog is hidden again once it was shown, even if waiting fails.
// Without a host the zero R is returned and dctx is never touched.
func ShowDialog[R any](ctx context.Context, s *Service, title string, content any, dctx ClosableContext[R], settings *Settings) (result R, err error) {
	var zero R
	guard, host, err := s.acquire(ctx, KindDialog)
	if err != nil {
		return zero, err
	}
	defer guard.Release()

	if host == nil {
		return zero, nil
	}

	d := &CustomDialog{
		Title:         title,
		Content:       content,
		ContentMargin: SizeStar(1),
		ContentWidth:  SizeAuto,
	}
	if err := host.ShowCustomDialog(ctx, d, settings); err != nil {
		return zero, s.fault(KindDialog, "show", err)
	}
	defer func() {
		// The caller's context may already be done; hiding must still reach the host.
		if hideErr := host.HideCustomDialog(context.WithoutCancel(ctx), d, settings); hideErr != nil && err == nil {
			result, err = zero, s.fault(KindDialog, "hide", hideErr)
		}
	}()

	r, err := dctx.WaitForClosing(ctx)
	if err != nil {
		return zero, s.fault(KindDialog, "wait", err)
	}
	return r, nil
}

// ShowChildWindow presents content in a modal child window bound to dctx and
// blocks until the window closes.
//
// If dctx implements CloseRequester, its requests close the window with the
// requested result. Otherwise the window is closed as soon as it is shown, so
// an unclosable context can never hold the presentation permit forever.
//
// Every subscription made by the flow is removed before the permit is
// released, on success and on failure. Without a host the zero R is returned
// and no window is built.
func ShowChildWindow[R any](ctx context.Context, s *Service, title string, content any, dctx ClosableContext[R]) (R, error) {
	var zero R
	guard, host, err := s.acquire(ctx, KindChildWindow)
	if err != nil {
		return zero, err
	}
	defer guard.Release()

	if host == nil {
		return zero, nil
	}

	w := NewChildWindow(title, content, dctx, snapshotOverlay(host))

	scope := newFlowScope(&s.live)
	defer scope.close()

	scope.track(w.OnLoaded(func(cw *ChildWindow) {
		s.events.notifyOpened(WindowEvent{Window: cw})
		scope.track(cw.OnClosingFinished(func(ev WindowEvent) {
			s.events.notifyClosed(ev)
		}))
		if req, ok := dctx.(CloseRequester[R]); ok {
			scope.track(req.OnCloseRequested(func(r R) {
				cw.Close(r)
			}))
			return
		}
		s.log().Warn("child window context cannot request close; closing immediately", "title", cw.Title)
		cw.Close(nil)
	}))

	if s.themes != nil {
		scope.track(s.themes.OnChanged(func(theme.Change) {
			w.SetOverlay(snapshotOverlay(host))
		}))
	}

	raw, err := host.ShowChildWindow(ctx, w)
	if err != nil {
		return zero, s.fault(KindChildWindow, "show", err)
	}
	if raw == nil {
		return zero, nil
	}
	r, ok := raw.(R)
	if !ok {
		s.log().Warn("child window closed with unexpected result type", "title", title)
		return zero, nil
	}
	return r, nil
}

func snapshotOverlay(h Host) OverlaySnapshot {
	return OverlaySnapshot{Color: h.OverlayColor(), Opacity: h.OverlayOpacity()}
}
