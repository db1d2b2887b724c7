// Package page drives the render pipeline for one document: parse, style,
// box construction and display handoff on load and after every script
// mutation.
package page

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rendertree/pkg/css"
	"rendertree/pkg/html"
	"rendertree/pkg/js"
	"rendertree/pkg/layout"
	"rendertree/pkg/render"
	"rendertree/pkg/style"
)

// State is the lifecycle state of a page.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

var (
	ErrNotLoaded       = errors.New("page: no document loaded")
	ErrAlreadyLoaded   = errors.New("page: document already loaded")
	ErrScriptsExecuted = errors.New("page: scripts already executed")
)

// DefaultScriptLabel names the combined inline script in error messages.
const DefaultScriptLabel = "(inline)"

// Page owns a document and renders it to a backend.
type Page struct {
	backend     render.Backend
	logger      *zap.Logger
	userAgent   string
	scriptLabel string

	state    State
	doc      *html.Document
	engine   *js.Engine
	current  *layout.LayoutBox
	renders  int
	executed bool
}

// Option configures a Page.
type Option func(*Page)

func WithBackend(b render.Backend) Option {
	return func(p *Page) {
		p.backend = b
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Page) {
		p.logger = logger
	}
}

// WithUserAgentStyles appends extra rules to the built-in default
// stylesheet.
func WithUserAgentStyles(text string) Option {
	return func(p *Page) {
		p.userAgent = text
	}
}

func WithScriptLabel(label string) Option {
	return func(p *Page) {
		p.scriptLabel = label
	}
}

// New returns an uninitialized page. Without a backend option, trees are kept
// in memory only.
func New(opts ...Option) *Page {
	p := &Page{
		backend:     render.NewMemory(),
		logger:      zap.NewNop(),
		scriptLabel: DefaultScriptLabel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load parses markup and performs the first render. Markup and stylesheet
// errors are returned and leave the page uninitialized.
func (p *Page) Load(markup string) error {
	if p.state != Uninitialized {
		return ErrAlreadyLoaded
	}
	doc, err := html.Parse(markup)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	p.doc = doc
	if err := p.Rerender(); err != nil {
		p.doc = nil
		return fmt.Errorf("load: %w", err)
	}
	p.engine = js.New(doc,
		js.WithLogger(p.logger.Named("js")),
		js.WithMutationHook(p.Rerender),
	)
	p.state = Ready
	p.logger.Info("page loaded", zap.Int("renders", p.renders))
	return nil
}

// ExecuteScripts runs the text of every script element, joined in document
// order, as a single execution unit. It may be called once per page.
func (p *Page) ExecuteScripts() (string, error) {
	if p.state != Ready {
		return "", ErrNotLoaded
	}
	if p.executed {
		return "", ErrScriptsExecuted
	}
	p.executed = true

	var scripts []string
	_ = p.doc.Read(func(root *html.Node) error {
		scripts = html.CollectTagInners(root, "script")
		return nil
	})
	if len(scripts) == 0 {
		return "", nil
	}

	result, err := p.engine.Execute(p.scriptLabel, strings.Join(scripts, "\n"))
	if err != nil {
		p.logger.Warn("script failed", zap.Error(err))
		return "", err
	}
	return result, nil
}

// Rerender rebuilds style and box trees from the current document and hands
// the result to the backend. If the stylesheet cannot be parsed the error is
// returned and the previous tree stays on display.
func (p *Page) Rerender() error {
	if p.doc == nil {
		return ErrNotLoaded
	}

	var box *layout.LayoutBox
	var unsupported []string
	err := p.doc.Read(func(root *html.Node) error {
		if root == nil {
			panic(html.InvariantViolation{What: "document has no root"})
		}
		sheet, err := css.ParseStylesheet(p.stylesheetText(root))
		if err != nil {
			return err
		}
		unsupported = sheet.Unsupported
		box = layout.Build(style.ResolveRoot(root, sheet))
		return nil
	})
	if err != nil {
		p.logger.Error("rerender failed; keeping previous tree", zap.Error(err))
		return fmt.Errorf("rerender: %w", err)
	}
	if len(unsupported) > 0 {
		p.logger.Warn("ignored unsupported selectors", zap.Strings("selectors", unsupported))
	}

	// The document hold is released; only finished trees leave this point.
	p.current = box
	p.renders++
	p.backend.Present(box)
	p.logger.Debug("rendered", zap.Int("render", p.renders))
	return nil
}

// stylesheetText returns the built-in rules followed by every style
// element's text in document order.
func (p *Page) stylesheetText(root *html.Node) string {
	parts := []string{css.DefaultStylesheetText}
	if p.userAgent != "" {
		parts = append(parts, p.userAgent)
	}
	parts = append(parts, html.CollectTagInners(root, "style")...)
	return strings.Join(parts, "\n")
}

// State returns the lifecycle state.
func (p *Page) State() State {
	return p.state
}

// RenderCount returns the number of completed renders.
func (p *Page) RenderCount() int {
	return p.renders
}

// Tree returns the most recent box tree, or nil before load.
func (p *Page) Tree() *layout.LayoutBox {
	return p.current
}

// Document returns the page's document, or nil before load.
func (p *Page) Document() *html.Document {
	return p.doc
}

// Eval runs source as its own execution unit against the loaded document.
func (p *Page) Eval(label, source string) (string, error) {
	if p.state != Ready {
		return "", ErrNotLoaded
	}
	return p.engine.Execute(label, source)
}
