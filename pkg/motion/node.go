package motion

import (
	"sync"
	"sync/atomic"

	"github.com/atze1210/motion/pkg/animation"
	"github.com/atze1210/motion/pkg/projection"
	"github.com/atze1210/motion/pkg/value"
)

// Animator is the animation-engine collaborator. The node tree only ever
// calls Submit after the transition gate allowed the target through.
// *animation.Engine satisfies it.
type Animator interface {
	Submit(channel string, from, to float64, tr *animation.Transition, apply func(float64))
}

// Registrar is the layout-tracking collaborator. *projection.Registry
// satisfies it.
type Registrar interface {
	Register(id string)
	Unregister(id string)
}

// boundSub is one live channel binding to a reactive value container.
type boundSub struct {
	container *value.Value
	unsub     func()
}

// Node is one visual tree node.
//
// A host mounts the node under a parent (a Scope or another Node), hands
// it fresh Props on every render, and paints from EffectiveValues after
// each Owner flush. All resolution is synchronous within the render pass;
// the only asynchronous inputs are bound container mutations and engine
// callbacks, both of which just schedule the node for the next flush.
type Node struct {
	owner    *Owner
	engine   Animator
	registry Registrar

	parent   TreeNode
	children []TreeNode
	depth    int
	mounted  bool
	dirty    atomic.Bool

	props       Props
	variantHash uint64

	// activeLabels holds the variant label in effect per slot after the
	// last render, own or inherited. Descendants read it while resolving.
	activeLabels [2]string

	applied      Style
	mountInitial Style
	boundSubs    map[string]boundSub
	lastTargets  map[string]float64

	animMu   sync.Mutex
	animated map[string]float64

	lastStatic   bool
	everRendered bool
	projectionID string
}

// NewNode creates an unmounted node. engine and registry may be nil when
// the host wires those subsystems elsewhere; a nil collaborator simply
// never receives submissions or registrations.
func NewNode(owner *Owner, engine Animator, registry Registrar) *Node {
	return &Node{
		owner:     owner,
		engine:    engine,
		registry:  registry,
		boundSubs: make(map[string]boundSub),
	}
}

// Mount attaches the node under parent with its first Props and renders it
// synchronously, so mount-regime values are captured before any update.
func (n *Node) Mount(parent TreeNode, props Props) {
	n.parent = parent
	if parent != nil {
		n.depth = parent.Depth() + 1
		parent.addChild(n)
	}
	n.mounted = true
	n.setProps(props)
	n.dirty.Store(true)
	n.RenderIfNeeded()
}

// Update replaces the node's props and schedules a re-render. The new
// values take effect on the next Owner flush.
func (n *Node) Update(props Props) {
	n.setProps(props)
	n.MarkNeedsRender()
}

// Unmount tears the node down: bindings are unsubscribed, the projection
// registration is removed, and descendant nodes are unmounted.
func (n *Node) Unmount() {
	if !n.mounted {
		return
	}
	n.mounted = false

	for _, child := range n.children {
		if node, ok := child.(*Node); ok {
			node.Unmount()
		}
	}
	n.children = nil

	for ch, sub := range n.boundSubs {
		sub.unsub()
		delete(n.boundSubs, ch)
	}
	if n.projectionID != "" {
		if n.registry != nil {
			n.registry.Unregister(n.projectionID)
		}
		n.projectionID = ""
	}
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
}

func (n *Node) setProps(props Props) {
	n.props = props
	n.variantHash = variantsHash(props.Variants)
}

// MarkNeedsRender schedules the node for the next flush. Safe to call from
// any goroutine; container subscriptions and engine callbacks land here.
func (n *Node) MarkNeedsRender() {
	if !n.dirty.CompareAndSwap(false, true) {
		return
	}
	if n.owner != nil {
		n.owner.ScheduleRender(n)
	}
}

// RenderIfNeeded re-resolves the node's channels if it was scheduled.
func (n *Node) RenderIfNeeded() {
	if !n.mounted || !n.dirty.CompareAndSwap(true, false) {
		return
	}
	n.render()
}

// render is one resolution pass: read the static flag fresh, resolve
// variant labels, re-decide projection if the flag flipped, resolve every
// channel by precedence, then gate animate targets.
func (n *Node) render() {
	static := staticFor(n.parent)

	prevLabels := n.activeLabels
	initialValues := n.resolveTarget(n.props.Initial, slotInitial)
	animateValues := n.resolveTarget(n.props.Animate, slotAnimate)

	if !n.everRendered {
		n.mountInitial = cloneStyle(initialValues)
	}

	if !n.everRendered || static != n.lastStatic {
		n.decideProjection(static)
	}

	n.syncBindings()
	n.pruneAnimated(animateValues)

	n.applied = n.resolveChannels(static, initialValues)
	n.lastStatic = static
	n.everRendered = true

	if n.activeLabels != prevLabels {
		markSubtreeDirty(n)
	}

	n.gateAnimate(static, animateValues)
}

// resolveChannels computes the effective value per channel. Precedence,
// first source wins: bound container, engine-driven value (non-static
// only), initial under its lifecycle regime, style. Channels no source
// declares are simply absent, which is how withdrawal clears them.
func (n *Node) resolveChannels(static bool, initialValues Style) Style {
	effective := make(Style)

	for ch, container := range n.props.Bind {
		if container != nil {
			effective[ch] = container.Get()
		}
	}

	if !static {
		n.animMu.Lock()
		for ch, v := range n.animated {
			if _, ok := effective[ch]; !ok {
				effective[ch] = v
			}
		}
		n.animMu.Unlock()
	}

	if static {
		// Static mode: initial behaves as a live prop, re-read fresh.
		for ch, v := range initialValues {
			if _, ok := effective[ch]; !ok {
				effective[ch] = v
			}
		}
	} else {
		// Normal mode: the mount-time value applies for as long as the
		// current initial still declares the channel. Later changes are
		// ignored; withdrawal falls through to style.
		for ch := range initialValues {
			v, captured := n.mountInitial[ch]
			if !captured {
				continue
			}
			if _, ok := effective[ch]; !ok {
				effective[ch] = v
			}
		}
	}

	for ch, v := range n.props.Style {
		if _, ok := effective[ch]; !ok {
			effective[ch] = v
		}
	}

	return effective
}

// gateAnimate is the transition gate. Static mode never submits,
// regardless of what the descriptor says; the descriptor is not inspected
// at all on that path, so exotic or malformed descriptors cost nothing.
// Non-static mode submits each target that changed since the last
// submission.
func (n *Node) gateAnimate(static bool, targets Style) {
	if static {
		// Targets submitted before the flag flipped are resubmitted if
		// it flips back.
		n.lastTargets = nil
		return
	}
	if n.engine == nil || len(targets) == 0 {
		return
	}
	if n.lastTargets == nil {
		n.lastTargets = make(map[string]float64)
	}
	for ch, target := range targets {
		if last, ok := n.lastTargets[ch]; ok && last == target {
			continue
		}
		n.lastTargets[ch] = target
		from := n.applied[ch]
		n.engine.Submit(ch, from, target, n.props.Transition, func(v float64) {
			n.setAnimated(ch, v)
		})
	}
}

// setAnimated records an engine-produced value and schedules a repaint.
func (n *Node) setAnimated(ch string, v float64) {
	n.animMu.Lock()
	if n.animated == nil {
		n.animated = make(map[string]float64)
	}
	n.animated[ch] = v
	n.animMu.Unlock()
	n.MarkNeedsRender()
}

// pruneAnimated drops engine values for channels the current animate
// target no longer declares, so a withdrawn target withdraws its effect.
func (n *Node) pruneAnimated(targets Style) {
	n.animMu.Lock()
	for ch := range n.animated {
		if !targets.Has(ch) {
			delete(n.animated, ch)
			delete(n.lastTargets, ch)
		}
	}
	n.animMu.Unlock()
}

// decideProjection allocates or tears down the node's projection identity.
// Called once at mount and again only when the effective static flag flips
// across the node's lifetime. Static nodes are never registered, no matter
// what process-wide layout state says.
func (n *Node) decideProjection(static bool) {
	if static {
		if n.projectionID != "" {
			if n.registry != nil {
				n.registry.Unregister(n.projectionID)
			}
			n.projectionID = ""
		}
		return
	}
	if n.projectionID == "" && n.props.Layout && n.registry != nil {
		n.projectionID = projection.NewID()
		n.registry.Register(n.projectionID)
	}
}

// syncBindings reconciles live subscriptions with the current Bind map:
// withdrawn or replaced containers are unsubscribed, new ones subscribed.
func (n *Node) syncBindings() {
	for ch, sub := range n.boundSubs {
		container, ok := n.props.Bind[ch]
		if ok && container == sub.container {
			continue
		}
		sub.unsub()
		delete(n.boundSubs, ch)
	}
	for ch, container := range n.props.Bind {
		if container == nil {
			continue
		}
		if _, ok := n.boundSubs[ch]; ok {
			continue
		}
		unsub := container.Subscribe(func(float64) {
			n.MarkNeedsRender()
		})
		n.boundSubs[ch] = boundSub{container: container, unsub: unsub}
	}
}

// EffectiveValues returns a copy of the resolved channel map from the last
// render. This is what the host paints.
func (n *Node) EffectiveValues() Style {
	return cloneStyle(n.applied)
}

// EffectiveValue returns one resolved channel value and whether the
// channel is currently rendered at all.
func (n *Node) EffectiveValue(channel string) (float64, bool) {
	v, ok := n.applied[channel]
	return v, ok
}

// IsStatic reports the node's effective static flag as of right now,
// walking to the nearest enclosing boundary.
func (n *Node) IsStatic() bool {
	return staticFor(n.parent)
}

// ProjectionID returns the node's projection identity, or "" when the node
// is not registered for layout tracking.
func (n *Node) ProjectionID() string {
	return n.projectionID
}

// Depth returns the node's depth in the tree.
func (n *Node) Depth() int { return n.depth }

func (n *Node) isMounted() bool { return n.mounted }

func (n *Node) parentNode() TreeNode { return n.parent }

func (n *Node) addChild(child TreeNode) {
	n.children = append(n.children, child)
}

func (n *Node) removeChild(child TreeNode) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) visitChildren(visitor func(TreeNode) bool) {
	for _, child := range n.children {
		if !visitor(child) {
			return
		}
	}
}

func cloneStyle(s Style) Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for ch, v := range s {
		out[ch] = v
	}
	return out
}
