package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"rendertree/pkg/css"
	"rendertree/pkg/html"
	"rendertree/pkg/layout"
	"rendertree/pkg/style"
)

func boxTree(t *testing.T, markup, sheet string) *layout.LayoutBox {
	t.Helper()
	doc, err := html.Parse(markup)
	require.NoError(t, err)
	ss, err := css.ParseStylesheet(sheet)
	require.NoError(t, err)

	var box *layout.LayoutBox
	_ = doc.Read(func(root *html.Node) error {
		box = layout.Build(style.ResolveRoot(root, ss))
		return nil
	})
	return box
}

func TestConvert(t *testing.T) {
	box := boxTree(t, "<body><p>hello\n</p> <em>world</em></body>", `body, p { display: block; }`)
	p := Convert(box)

	assert.Equal(t, Panel, p.Kind)
	assert.Equal(t, "body", p.Title)
	require.Len(t, p.Children, 2)

	para := p.Children[0]
	assert.Equal(t, Panel, para.Kind)
	require.Len(t, para.Children, 1)
	assert.Equal(t, Group, para.Children[0].Kind)
	assert.Equal(t, "hello", para.Children[0].Children[0].Text)

	run := p.Children[1]
	assert.Equal(t, Group, run.Kind)
	require.Len(t, run.Children, 2)
	assert.Equal(t, Placeholder, run.Children[0].Kind, "blank text becomes a placeholder")
	assert.Equal(t, Panel, run.Children[1].Kind)

	assert.Equal(t, []string{"hello", "world"}, p.Texts())
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	assert.Nil(t, m.Current())

	box := boxTree(t, "<div>x</div>", "")
	m.Present(box)
	m.Present(box)
	assert.Same(t, box, m.Current())
	assert.Equal(t, 2, m.Presents())
}

func TestSnapshot(t *testing.T) {
	s := NewSnapshot(200, 100)
	s.Present(boxTree(t, "<body><p>hello</p></body>", `body, p { display: block; }`))

	img := s.Image()
	assert.Equal(t, 200, img.Bounds().Dx())

	painted := false
	for y := 0; y < 40 && !painted; y++ {
		for x := 0; x < 100; x++ {
			if r, g, b, _ := img.At(x, y).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
				painted = true
				break
			}
		}
	}
	assert.True(t, painted, "expected something drawn near the top left")

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestWidget(t *testing.T) {
	test.NewTempApp(t)

	obj := Widget(Convert(boxTree(t, "<body><p>hello</p></body>", `body, p { display: block; }`)))
	card, ok := obj.(*widget.Card)
	require.True(t, ok, "element becomes a card, got %T", obj)
	assert.Equal(t, "body", card.Title)

	inner, ok := card.Content.(*fyne.Container)
	require.True(t, ok)
	require.Len(t, inner.Objects, 1)
	pCard, ok := inner.Objects[0].(*widget.Card)
	require.True(t, ok)
	assert.Equal(t, "p", pCard.Title)

	run := pCard.Content.(*fyne.Container).Objects[0].(*fyne.Container)
	label, ok := run.Objects[0].(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "hello", label.Text)
}

func TestFyneRedrawLoop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := NewFyne()
	applied := make(chan fyne.CanvasObject, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.Run(ctx, func(o fyne.CanvasObject) { applied <- o })
	}()

	f.Present(boxTree(t, "<div>one</div>", ""))
	select {
	case o := <-applied:
		assert.Same(t, f.Current(), o)
	case <-time.After(2 * time.Second):
		t.Fatal("redraw was not applied")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestFynePresentCoalesces(t *testing.T) {
	f := NewFyne()
	box := boxTree(t, "<div>one</div>", "")

	// Nobody is draining; the second request must not block
	f.Present(box)
	f.Present(box)
	assert.Len(t, f.redraw, 1)
	assert.NotNil(t, f.Current())
}

func TestFyneRunAppliesFramePresentedBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := NewFyne()
	f.Present(boxTree(t, "<div>first</div>", ""))

	applied := make(chan fyne.CanvasObject, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.Run(ctx, func(o fyne.CanvasObject) { applied <- o })
	}()

	select {
	case o := <-applied:
		assert.Same(t, f.Current(), o)
	case <-time.After(2 * time.Second):
		t.Fatal("frame presented before Run was not applied")
	}

	cancel()
	<-done
}
