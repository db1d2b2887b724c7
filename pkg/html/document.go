package html

import (
	"fmt"
	"sync"
)

// Document owns the node tree. All access goes through a single exclusive
// hold: Mutate for writers, Read for the render pipeline. The hold is never
// waited on. Taking it while it is already held means two holds overlap,
// which can only be a bug in the caller, so it panics instead of blocking.
type Document struct {
	mu   sync.Mutex
	root *Node
}

// NewDocument wraps root into a document.
func NewDocument(root *Node) *Document {
	return &Document{root: root}
}

// Mutate runs fn with exclusive, writable access to the root.
func (d *Document) Mutate(fn func(root *Node) error) error {
	d.acquire("mutate")
	defer d.mu.Unlock()
	return fn(d.root)
}

// Read runs fn with exclusive access to the root. fn must not modify the tree.
func (d *Document) Read(fn func(root *Node) error) error {
	d.acquire("read")
	defer d.mu.Unlock()
	return fn(d.root)
}

func (d *Document) acquire(op string) {
	if !d.mu.TryLock() {
		panic(InvariantViolation{What: fmt.Sprintf("overlapping exclusive hold on document (%s)", op)})
	}
}

// InvariantViolation is the panic value used when a structural invariant of
// the engine is broken. It is never returned as an error.
type InvariantViolation struct {
	What string
}

func (v InvariantViolation) String() string {
	return "invariant violation: " + v.What
}

func (v InvariantViolation) Error() string {
	return v.String()
}
