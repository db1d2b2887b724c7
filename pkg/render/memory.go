package render

import (
	"sync"

	"rendertree/pkg/layout"
)

// Memory keeps the most recent box tree. It backs the dump command and
// tests that need to look at what would have been displayed.
type Memory struct {
	mu       sync.Mutex
	current  *layout.LayoutBox
	presents int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Present(root *layout.LayoutBox) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = root
	m.presents++
}

// Current returns the last presented tree, or nil.
func (m *Memory) Current() *layout.LayoutBox {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Presents returns how many trees have been presented.
func (m *Memory) Presents() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presents
}
