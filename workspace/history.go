// Package workspace keeps successive tree versions for undo/redo and a
// registry of named workspaces.
package workspace

import (
	"sync"

	"github.com/brettbedarf/vfstree"
)

// Op derives a new tree version from the current one. It must not mutate its input.
type Op func(current *vfstree.Node) *vfstree.Node

// History holds the current tree version plus the versions before and after it.
// Versions are stored by reference; this is only correct because every
// filesystem operation returns a new tree instead of mutating.
//
// Concurrent Apply calls are serialized; the last one to run wins.
type History struct {
	mu      sync.Mutex
	past    []*vfstree.Node
	current *vfstree.Node
	future  []*vfstree.Node
	limit   int // max len(past); <= 0 is unbounded
}

func NewHistory(initial *vfstree.Node, limit int) *History {
	return &History{current: initial, limit: limit}
}

// Current returns the current tree version. Treat it as read-only.
func (h *History) Current() *vfstree.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Apply runs op on the current version and makes its result current.
// The redo stack is discarded.
func (h *History) Apply(op Op) *vfstree.Node {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := op(h.current)
	h.past = append(h.past, h.current)
	if h.limit > 0 && len(h.past) > h.limit {
		// drop oldest
		h.past[0] = nil
		h.past = h.past[1:]
	}
	h.current = next
	h.future = nil
	return next
}

// Undo steps back one version. Returns the new current version and whether it moved.
func (h *History) Undo() (*vfstree.Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return h.current, false
	}
	prev := h.past[len(h.past)-1]
	h.past[len(h.past)-1] = nil
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, h.current)
	h.current = prev
	return prev, true
}

// Redo re-applies the most recently undone version.
// Returns the new current version and whether it moved.
func (h *History) Redo() (*vfstree.Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return h.current, false
	}
	next := h.future[len(h.future)-1]
	h.future[len(h.future)-1] = nil
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, h.current)
	h.current = next
	return next, true
}

// Depth returns the number of available undo and redo steps
func (h *History) Depth() (undo, redo int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past), len(h.future)
}
