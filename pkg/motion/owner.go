package motion

import (
	"slices"
	"sync"
)

// Owner tracks dirty nodes that need their channels re-resolved.
//
// All resolution runs synchronously inside FlushRender; the host calls it
// once per frame. Container mutations and subtree invalidations land here
// between frames and are picked up by the next flush, which is what makes
// "reflected by the next paint" hold.
type Owner struct {
	dirty    []*Node
	dirtySet map[*Node]bool
	mu       sync.Mutex

	// OnNeedsFrame is called when a node is newly scheduled, signalling
	// the host that a frame should be rendered. Needed for on-demand
	// frame scheduling where the frame loop is paused until requested.
	OnNeedsFrame func()
}

// NewOwner creates an Owner with no pending work.
func NewOwner() *Owner {
	return &Owner{
		dirtySet: make(map[*Node]bool),
	}
}

// ScheduleRender marks a node as needing re-resolution.
func (o *Owner) ScheduleRender(node *Node) {
	added := func() bool {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.dirtySet[node] {
			return false
		}
		o.dirtySet[node] = true
		o.dirty = append(o.dirty, node)
		return true
	}()

	if added && o.OnNeedsFrame != nil {
		o.OnNeedsFrame()
	}
}

// NeedsWork returns true if any node is waiting to render.
func (o *Owner) NeedsWork() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.dirty) > 0
}

// FlushRender re-resolves all dirty nodes in depth order, repeating until
// no node re-dirties itself (label cascades render parents before
// children within a single flush).
func (o *Owner) FlushRender() {
	for {
		o.mu.Lock()
		if len(o.dirty) == 0 {
			o.mu.Unlock()
			return
		}

		slices.SortFunc(o.dirty, func(a, b *Node) int {
			return a.Depth() - b.Depth()
		})

		dirty := o.dirty
		o.dirty = nil
		clear(o.dirtySet)
		o.mu.Unlock()

		for _, node := range dirty {
			if !node.isMounted() {
				continue
			}
			node.RenderIfNeeded()
		}
	}
}
