package motion

import (
	"github.com/atze1210/motion/pkg/animation"
	"github.com/atze1210/motion/pkg/value"
)

// Style maps channel names to literal values. A channel is one
// independently resolvable visual property slot ("x", "opacity", ...).
type Style map[string]float64

// Has reports whether the style declares the channel.
func (s Style) Has(channel string) bool {
	_, ok := s[channel]
	return ok
}

// Variants maps labels to reusable channel-value maps. Two independently
// declared Variants with equal contents are the same variants map for
// label propagation purposes.
type Variants map[string]Style

// Resolve returns the channel values for a label. A label missing from the
// map contributes no channel values.
func (v Variants) Resolve(label string) Style {
	if label == "" {
		return nil
	}
	return v[label]
}

// Target is the value of an Initial or Animate prop: either a literal
// channel-value map or a variant label. The zero Target means the prop is
// not declared.
type Target struct {
	label  string
	values Style
}

// Values declares a literal target.
func Values(s Style) Target {
	return Target{values: s}
}

// Label declares a variant-label target.
func Label(name string) Target {
	return Target{label: name}
}

// IsZero reports whether the target is undeclared.
func (t Target) IsZero() bool {
	return t.label == "" && t.values == nil
}

// IsLabel reports whether the target is a variant label.
func (t Target) IsLabel() bool {
	return t.label != ""
}

// LabelName returns the variant label, or "" for a literal target.
func (t Target) LabelName() string {
	return t.label
}

// Literal returns the literal channel values, or nil for a label target.
func (t Target) Literal() Style {
	return t.values
}

// Props is the declared configuration of a node for one render.
//
// Props is inert data; all policy lives in the node's render pass.
type Props struct {
	// Style declares literal channel values, live on every render.
	Style Style

	// Bind attaches reactive value containers by channel. The map shape
	// allows at most one container per channel per node.
	Bind map[string]*value.Value

	// Initial declares the channel values a node starts from. Applied
	// once at mount normally; re-applied every render under static mode.
	Initial Target

	// Animate declares target values for the engine. Never painted
	// directly; targets only take effect through the transition gate.
	Animate Target

	// Transition configures how gated targets animate. Inert here.
	Transition *animation.Transition

	// Variants declares the node's label-resolvable value maps.
	Variants Variants

	// Layout opts the node into layout projection tracking. Ignored
	// under static mode.
	Layout bool
}
