package js

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"rendertree/pkg/html"
)

// registerDocument sets up the global `document` object.
func registerDocument(h *hostContext) {
	docObj := h.vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(h.vm.NewTypeError("Failed to execute 'getElementById' on 'Document': 1 argument required"))
		}
		id := call.Arguments[0].String()

		var node *html.Node
		_ = h.doc.Read(func(root *html.Node) error {
			node = html.GetElementByID(root, id)
			return nil
		})
		if node == nil {
			return goja.Undefined()
		}
		return h.elementProxy(node)
	})
	h.vm.Set("document", docObj)
}

// elementProxy returns the guest object for node. The object only carries
// the handle; every property access goes back through the table.
func (h *hostContext) elementProxy(node *html.Node) goja.Value {
	return h.table.bind(node, func(handle Handle) goja.Value {
		return h.vm.NewDynamicObject(&elementAccessor{host: h, handle: handle})
	})
}

// elementAccessor implements goja.DynamicObject for element handles.
type elementAccessor struct {
	host   *hostContext
	handle Handle
}

var elementKeys = []string{"tagName", "innerHTML"}

func (e *elementAccessor) Get(key string) goja.Value {
	switch key {
	case "tagName":
		var tag string
		e.host.withNode(e.handle, func(node *html.Node) {
			tag = strings.ToUpper(node.TagName)
		})
		return e.host.vm.ToValue(tag)
	case "innerHTML":
		var markup string
		e.host.withNode(e.handle, func(node *html.Node) {
			markup = node.InnerHTML()
		})
		return e.host.vm.ToValue(markup)
	}
	return nil
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "innerHTML":
		e.setInnerHTML(val.String())
		return true
	}
	// tagName is read-only; unknown keys are not stored
	return false
}

// setInnerHTML parses markup, replaces the element's children under an
// exclusive hold, and only after releasing it reports the mutation.
func (e *elementAccessor) setInnerHTML(markup string) {
	h := e.host
	nodes, err := html.ParseFragment(markup)
	if err != nil {
		h.throw(fmt.Errorf("innerHTML: %w", err))
	}

	err = h.doc.Mutate(func(root *html.Node) error {
		node, err := h.resolve(root, e.handle)
		if err != nil {
			return err
		}
		node.SetChildren(nodes)
		return nil
	})
	if err != nil {
		h.throw(err)
	}

	h.logger.Debug("innerHTML replaced", zap.Uint32("handle", uint32(e.handle)), zap.Int("children", len(nodes)))
	h.notifyMutation()
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}
