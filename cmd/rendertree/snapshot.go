package main

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rendertree/pkg/render"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		width     int
		height    int
		scripts   bool
		expect    string
		diffPath  string
		tolerance int
	)
	cmd := &cobra.Command{
		Use:   "snapshot <file> <output.png>",
		Short: "Render a document to a PNG image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Snapshot.Width
			}
			if !cmd.Flags().Changed("height") {
				height = a.cfg.Snapshot.Height
			}
			if width <= 0 || height <= 0 {
				return fmt.Errorf("snapshot size must be positive, got %dx%d", width, height)
			}

			snap := render.NewSnapshot(width, height)
			p, err := a.loadPage(args[0], snap)
			if err != nil {
				return err
			}
			if scripts {
				if err := a.runScripts(p); err != nil {
					return err
				}
			}
			if err := snap.SavePNG(args[1]); err != nil {
				return fmt.Errorf("saving %s: %w", args[1], err)
			}
			if expect != "" {
				if err := compareSnapshot(snap, expect, diffPath, tolerance); err != nil {
					return err
				}
			}
			a.logger.Info("snapshot written",
				zap.String("output", args[1]),
				zap.Int("width", width),
				zap.Int("height", height),
				zap.Int("renders", p.RenderCount()))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "canvas width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height in pixels (default from config)")
	cmd.Flags().BoolVar(&scripts, "scripts", true, "run the document's scripts before saving")
	cmd.Flags().StringVar(&expect, "expect", "", "reference PNG the snapshot must match")
	cmd.Flags().StringVar(&diffPath, "diff", "", "where to write a difference mask when --expect fails")
	cmd.Flags().IntVar(&tolerance, "tolerance", 2, "allowed per-channel difference for --expect")
	return cmd
}

func compareSnapshot(snap *render.Snapshot, expect, diffPath string, tolerance int) error {
	d, err := render.CompareFile(snap.Image(), expect, tolerance, diffPath != "")
	if err != nil {
		return err
	}
	if d.Match() {
		return nil
	}
	if diffPath != "" {
		dc := gg.NewContextForRGBA(d.Mask)
		if err := dc.SavePNG(diffPath); err != nil {
			return fmt.Errorf("saving %s: %w", diffPath, err)
		}
	}
	return fmt.Errorf("snapshot differs from %s: %d of %d pixels (max delta %d)",
		expect, d.DifferentPixels, d.TotalPixels, d.MaxDifference)
}
