package main

import (
	"context"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rendertree/pkg/render"
)

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <file>",
		Short: "Show a document in a window and run its scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := render.NewFyne(render.WithFyneLogger(a.logger.Named("display")))
			p, err := a.loadPage(args[0], backend)
			if err != nil {
				return err
			}

			fa := fyneapp.New()
			w := fa.NewWindow(a.cfg.Display.Title)
			w.Resize(fyne.NewSize(float32(a.cfg.Display.Width), float32(a.cfg.Display.Height)))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			// Load already queued a redraw, so the first frame takes the same
			// path as every later one.
			go backend.Run(ctx, render.WindowContent(w))

			// Scripts run off the UI goroutine; every mutation they make
			// reaches the window through the backend's redraw loop.
			go func() {
				if err := a.runScripts(p); err != nil {
					a.logger.Error("script execution failed", zap.Error(err))
				}
			}()

			w.ShowAndRun()
			return nil
		},
	}
}
