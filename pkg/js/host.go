package js

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"rendertree/pkg/html"
)

// hostContext is the state every host function works against. It is passed
// explicitly to the bindings; nothing is looked up from the runtime.
type hostContext struct {
	vm       *goja.Runtime
	doc      *html.Document
	table    *handleTable
	onMutate func() error
	logger   *zap.Logger
}

// throw raises err inside the guest as an Error.
func (h *hostContext) throw(err error) {
	panic(h.vm.NewGoError(err))
}

// resolve looks up a handle. It must be called under a document hold since
// the liveness check walks the tree.
func (h *hostContext) resolve(root *html.Node, handle Handle) (*html.Node, error) {
	node, ok := h.table.lookup(handle)
	if !ok {
		return nil, &StaleHandleError{Handle: handle, Reason: "not issued in the current execution unit"}
	}
	if !html.Contains(root, node) {
		return nil, &StaleHandleError{Handle: handle, Reason: "element is no longer in the document"}
	}
	return node, nil
}

// withNode runs fn on the node behind handle under a read hold.
func (h *hostContext) withNode(handle Handle, fn func(node *html.Node)) {
	err := h.doc.Read(func(root *html.Node) error {
		node, err := h.resolve(root, handle)
		if err != nil {
			return err
		}
		fn(node)
		return nil
	})
	if err != nil {
		h.throw(err)
	}
}

// notifyMutation signals a completed document write. The hold must already
// be released.
func (h *hostContext) notifyMutation() {
	if h.onMutate == nil {
		return
	}
	if err := h.onMutate(); err != nil {
		h.throw(err)
	}
}
