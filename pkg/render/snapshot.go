package render

import (
	"image"
	"io"
	"sync"

	"github.com/fogleman/gg"

	"rendertree/pkg/layout"
)

const (
	padding     = 4.0
	titleHeight = 16.0
	lineHeight  = 16.0
	groupGap    = 6.0
)

// Snapshot rasterizes the primitive tree into an image: panels become framed
// boxes with their tag as a caption, groups lay their children out side by
// side, labels are drawn with gg's built-in face.
type Snapshot struct {
	mu      sync.Mutex
	width   int
	height  int
	context *gg.Context
}

func NewSnapshot(width, height int) *Snapshot {
	s := &Snapshot{width: width, height: height}
	s.context = s.blank()
	return s
}

func (s *Snapshot) blank() *gg.Context {
	dc := gg.NewContext(s.width, s.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}

// Present draws root onto a fresh canvas and replaces the previous image.
func (s *Snapshot) Present(root *layout.LayoutBox) {
	dc := s.blank()
	p := Convert(root)
	measure(dc, p).draw(dc, padding, padding)

	s.mu.Lock()
	s.context = dc
	s.mu.Unlock()
}

// Image returns the last rendered image.
func (s *Snapshot) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context.Image()
}

func (s *Snapshot) SavePNG(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context.SavePNG(filename)
}

func (s *Snapshot) EncodePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context.EncodePNG(w)
}

// sized is a primitive with its measured extent.
type sized struct {
	p        *Primitive
	w, h     float64
	children []*sized
}

func measure(dc *gg.Context, p *Primitive) *sized {
	s := &sized{p: p}
	for _, c := range p.Children {
		s.children = append(s.children, measure(dc, c))
	}

	switch p.Kind {
	case Label:
		w, _ := dc.MeasureString(p.Text)
		s.w, s.h = w, lineHeight
	case Panel:
		tw, _ := dc.MeasureString(p.Title)
		s.w, s.h = tw, titleHeight
		for _, c := range s.children {
			s.w = max(s.w, c.w)
			s.h += c.h
		}
		s.w += 2 * padding
		s.h += padding
	case Group:
		for i, c := range s.children {
			if i > 0 {
				s.w += groupGap
			}
			s.w += c.w
			s.h = max(s.h, c.h)
		}
	}
	return s
}

func (s *sized) draw(dc *gg.Context, x, y float64) {
	switch s.p.Kind {
	case Label:
		dc.SetRGB(0, 0, 0)
		dc.DrawString(s.p.Text, x, y+lineHeight-4)

	case Panel:
		dc.SetRGB(0.55, 0.55, 0.6)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x+0.5, y+0.5, s.w-1, s.h-1)
		dc.Stroke()
		dc.SetRGB(0.3, 0.3, 0.7)
		dc.DrawString(s.p.Title, x+padding, y+titleHeight-4)
		cy := y + titleHeight
		for _, c := range s.children {
			c.draw(dc, x+padding, cy)
			cy += c.h
		}

	case Group:
		cx := x
		for _, c := range s.children {
			c.draw(dc, cx, y)
			cx += c.w + groupGap
		}
	}
}
