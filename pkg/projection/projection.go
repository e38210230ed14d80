// Package projection is the layout-tracking collaborator.
//
// Nodes that participate in layout tracking are assigned a stable identity
// and registered here so layout changes can be measured and animated. The
// decision to register is made upstream by the node tree; a node in static
// mode is never handed to this package, no matter what process-wide state
// says about earlier layout use.
package projection

import (
	"sync"

	"github.com/google/uuid"
)

var (
	layoutUsedMu   sync.Mutex
	layoutEverUsed bool
)

// LayoutEverUsed reports whether any node in the process has ever been
// registered for layout tracking. This flag exists for the host's lazy
// bootstrapping of the measurement loop and must never feed back into
// per-node registration decisions.
func LayoutEverUsed() bool {
	layoutUsedMu.Lock()
	defer layoutUsedMu.Unlock()
	return layoutEverUsed
}

// MarkLayoutUsed records that layout tracking has been exercised.
func MarkLayoutUsed() {
	layoutUsedMu.Lock()
	layoutEverUsed = true
	layoutUsedMu.Unlock()
}

// ResetLayoutUsed clears the process-wide flag. Intended for tests.
func ResetLayoutUsed() {
	layoutUsedMu.Lock()
	layoutEverUsed = false
	layoutUsedMu.Unlock()
}

// NewID allocates a projection identity.
func NewID() string {
	return uuid.NewString()
}

// Registry tracks the set of nodes currently participating in layout
// tracking. Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	nodes map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[string]struct{}),
	}
}

// Register adds a node identity to the registry.
func (r *Registry) Register(id string) {
	r.mu.Lock()
	r.nodes[id] = struct{}{}
	r.mu.Unlock()
	MarkLayoutUsed()
}

// Unregister removes a node identity from the registry.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.nodes, id)
	r.mu.Unlock()
}

// Contains reports whether the identity is currently registered.
func (r *Registry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.nodes[id]
	return ok
}

// Len returns the number of registered identities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nodes)
}
