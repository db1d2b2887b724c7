package js

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"rendertree/pkg/html"
)

// Engine runs guest scripts against a document.
type Engine struct {
	vm   *goja.Runtime
	host *hostContext
}

// Option configures an Engine.
type Option func(*hostContext)

// WithLogger routes console output and engine diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *hostContext) {
		h.logger = logger
	}
}

// WithMutationHook sets the function called once after every innerHTML
// write, after the document hold has been released.
func WithMutationHook(hook func() error) Option {
	return func(h *hostContext) {
		h.onMutate = hook
	}
}

// New creates an engine bound to doc, with the document and console globals
// registered.
func New(doc *html.Document, opts ...Option) *Engine {
	vm := goja.New()
	host := &hostContext{
		vm:     vm,
		doc:    doc,
		table:  newHandleTable(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(host)
	}

	registerConsole(host)
	registerDocument(host)

	return &Engine{vm: vm, host: host}
}

// Execute runs source as one execution unit and returns its completion value
// converted to a string. Element handles obtained during the unit are
// invalidated when it ends. Uncaught guest exceptions come back as
// *ScriptError.
func (e *Engine) Execute(label, source string) (string, error) {
	prg, err := goja.Compile(label, source, false)
	if err != nil {
		return "", newScriptError(label, err)
	}

	e.host.table.begin()
	defer e.host.table.end()

	e.host.logger.Debug("executing script", zap.String("label", label), zap.Int("bytes", len(source)))
	v, err := e.vm.RunProgram(prg)
	if err != nil {
		return "", newScriptError(label, err)
	}
	if v == nil {
		return "undefined", nil
	}
	return v.String(), nil
}

// ScriptError is an uncaught guest exception or a compile failure.
type ScriptError struct {
	Label   string
	Line    int
	Message string
	Err     error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Label, e.Line, e.Message)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

var syntaxLine = regexp.MustCompile(`Line (\d+):\d+`)

func newScriptError(label string, err error) *ScriptError {
	se := &ScriptError{Label: label, Message: err.Error(), Err: err}

	var syntaxErr *goja.CompilerSyntaxError
	var exception *goja.Exception
	switch {
	case errors.As(err, &syntaxErr):
		se.Message = "SyntaxError: " + syntaxErr.Message
		if syntaxErr.File != nil {
			se.Line = syntaxErr.File.Position(syntaxErr.Offset).Line
		} else if m := syntaxLine.FindStringSubmatch(syntaxErr.Message); m != nil {
			// Parser errors arrive without a file; the position is in the text
			se.Line, _ = strconv.Atoi(m[1])
		}
	case errors.As(err, &exception):
		if v := exception.Value(); v != nil {
			se.Message = v.String()
		}
		for _, frame := range exception.Stack() {
			if line := frame.Position().Line; line > 0 {
				se.Line = line
				break
			}
		}
	}
	return se
}
