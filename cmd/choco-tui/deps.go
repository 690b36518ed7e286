package main

import (
	"context"
	"os"
	"sync"

	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/colors"
	"github.com/cristianoliveira/choco-tui/internal/config"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/logging"
	"github.com/cristianoliveira/choco-tui/internal/prompt"
	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/cristianoliveira/choco-tui/internal/tui/app"
)

// runtime builds the process-wide dialog service on first use, after the
// root command loaded the configuration.
type runtime struct {
	once    sync.Once
	themes  *theme.Manager
	service *dialog.Service
}

var rt = &runtime{}

func (r *runtime) init() {
	r.once.Do(func() {
		r.themes = theme.NewManager(theme.Light)
		if err := r.themes.Set(config.Get("theme", theme.Light.Name)); err != nil {
			colors.Warning(err.Error())
		}
		r.service = dialog.New(
			dialog.WithThemeSource(r.themes),
			dialog.WithPrompter(prompterFromConfig()),
			dialog.WithLogger(logging.GetGlobal().With("component", "dialog")),
		)
	})
}

func prompterFromConfig() dialog.Prompter {
	switch config.Get("fallback_prompt", "console") {
	case "assume-yes":
		return prompt.Assume{Answer: true}
	case "assume-no":
		return prompt.Assume{Answer: false}
	default:
		return prompt.NewConsole(os.Stdin, os.Stdout)
	}
}

func (r *runtime) ShowMessage(ctx context.Context, title, message string) (dialog.Result, error) {
	r.init()
	return r.service.ShowMessage(ctx, title, message)
}

func (r *runtime) ShowConfirmation(ctx context.Context, title, message string) (dialog.Result, error) {
	r.init()
	return r.service.ShowConfirmation(ctx, title, message)
}

func (r *runtime) RunTUI(ctx context.Context, opts app.RunOptions) error {
	r.init()
	client := app.NewDefaultClient(r.service, r.themes, config.GetFloat("overlay_opacity", 0), nil, nil, nil)
	return client.Run(ctx, opts)
}

func (r *runtime) Outdated(ctx context.Context) ([]choco.Package, error) {
	return choco.NewDefaultClient(choco.OptionsFromConfig()...).Outdated(ctx)
}

func (r *runtime) ChocoHelp(ctx context.Context) (string, error) {
	return choco.NewDefaultClient(choco.OptionsFromConfig()...).Help(ctx)
}
