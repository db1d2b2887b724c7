package render

import (
	"context"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"rendertree/pkg/layout"
)

// Fyne presents box trees as fyne widget trees.
//
// Present builds the complete widget tree on the caller's goroutine and then
// swaps it in as a whole. The display side only ever learns that a newer tree
// exists through the redraw channel; the request carries no data, and the
// receiver reads the finished tree itself.
type Fyne struct {
	current atomic.Pointer[frame]
	redraw  chan struct{}
	logger  *zap.Logger
}

type frame struct {
	root fyne.CanvasObject
}

// FyneOption configures a Fyne backend.
type FyneOption func(*Fyne)

func WithFyneLogger(logger *zap.Logger) FyneOption {
	return func(f *Fyne) {
		f.logger = logger
	}
}

func NewFyne(opts ...FyneOption) *Fyne {
	f := &Fyne{
		redraw: make(chan struct{}, 1),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Present converts root to widgets, publishes them and requests a redraw.
func (f *Fyne) Present(root *layout.LayoutBox) {
	f.current.Store(&frame{root: Widget(Convert(root))})

	// A pending request already covers this tree
	select {
	case f.redraw <- struct{}{}:
	default:
	}
}

// Current returns the most recently published widget tree, or nil.
func (f *Fyne) Current() fyne.CanvasObject {
	if fr := f.current.Load(); fr != nil {
		return fr.root
	}
	return nil
}

// Run is the display-side loop. For every redraw request it hands the
// current widget tree to apply. It returns when ctx is done.
func (f *Fyne) Run(ctx context.Context, apply func(fyne.CanvasObject)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.redraw:
			root := f.Current()
			if root == nil {
				continue
			}
			f.logger.Debug("redraw")
			apply(root)
		}
	}
}

// WindowContent returns an apply function for Run that installs the tree as
// the window's content on the fyne main goroutine.
func WindowContent(w fyne.Window) func(fyne.CanvasObject) {
	return func(root fyne.CanvasObject) {
		fyne.Do(func() {
			w.SetContent(container.NewVScroll(root))
		})
	}
}

// Widget builds the fyne widget tree for a primitive tree.
func Widget(p *Primitive) fyne.CanvasObject {
	switch p.Kind {
	case Panel:
		return widget.NewCard(p.Title, "", container.NewVBox(widgets(p.Children)...))
	case Group:
		return container.NewHBox(widgets(p.Children)...)
	case Label:
		return widget.NewLabel(p.Text)
	default:
		return container.NewWithoutLayout()
	}
}

func widgets(ps []*Primitive) []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(ps))
	for _, p := range ps {
		objs = append(objs, Widget(p))
	}
	return objs
}
