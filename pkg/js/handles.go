package js

import (
	"fmt"

	"github.com/dop251/goja"

	"rendertree/pkg/html"
)

// Handle identifies a bound element inside the guest. Handles are never
// reused, so a handle kept past its execution unit cannot alias a newer one.
type Handle uint32

// StaleHandleError reports access through a handle that is no longer valid.
type StaleHandleError struct {
	Handle Handle
	Reason string
}

func (e *StaleHandleError) Error() string {
	return fmt.Sprintf("stale element handle %d: %s", e.Handle, e.Reason)
}

// handleTable maps guest handles to document nodes for the duration of one
// execution unit.
type handleTable struct {
	next    Handle
	active  bool
	nodes   map[Handle]*html.Node
	proxies map[*html.Node]goja.Value
}

func newHandleTable() *handleTable {
	return &handleTable{
		nodes:   make(map[Handle]*html.Node),
		proxies: make(map[*html.Node]goja.Value),
	}
}

func (t *handleTable) begin() {
	t.active = true
}

// end drops every entry; guest objects still holding handles become stale.
func (t *handleTable) end() {
	t.active = false
	clear(t.nodes)
	clear(t.proxies)
}

// bind returns the guest object for node, creating it on first use in the
// unit so repeated lookups are identical (===).
func (t *handleTable) bind(node *html.Node, create func(Handle) goja.Value) goja.Value {
	if v, ok := t.proxies[node]; ok {
		return v
	}
	t.next++
	h := t.next
	t.nodes[h] = node
	v := create(h)
	t.proxies[node] = v
	return v
}

func (t *handleTable) lookup(h Handle) (*html.Node, bool) {
	if !t.active {
		return nil, false
	}
	n, ok := t.nodes[h]
	return n, ok
}

func (t *handleTable) len() int {
	return len(t.nodes)
}
