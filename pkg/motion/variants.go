package motion

import "github.com/mitchellh/hashstructure/v2"

// targetSlot names which prop a label was declared on. Labels cascade to
// descendants slot for slot: a parent's animate label lands on a child's
// animate slot, never its initial slot.
type targetSlot int

const (
	slotInitial targetSlot = iota
	slotAnimate
)

// variantsHash computes a structural identity for a variants map. Two maps
// with equal labels and channel values hash identically no matter where
// they were declared, which is what lets a parent's label reach a child
// that re-declared the same map instead of sharing a reference.
func variantsHash(v Variants) uint64 {
	if len(v) == 0 {
		return 0
	}
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing map[string]map[string]float64 cannot fail; treat any
		// surprise as "no variants" so propagation just doesn't match.
		return 0
	}
	return h
}

// inheritedLabel walks the ancestor chain for the nearest node whose
// active label on the given slot can cascade to this node: the ancestor
// must declare a structurally identical variants map, and the label must
// exist in this node's map.
func (n *Node) inheritedLabel(slot targetSlot) string {
	if n.variantHash == 0 {
		return ""
	}
	current := n.parent
	for current != nil {
		if ancestor, ok := current.(*Node); ok {
			label := ancestor.activeLabels[slot]
			if label != "" && ancestor.variantHash == n.variantHash {
				if n.props.Variants.Resolve(label) != nil {
					return label
				}
			}
		}
		current = current.parentNode()
	}
	return ""
}

// resolveTarget turns a Target into literal channel values, recording the
// label that ended up active on the slot. Labels resolve against the
// node's own variants map; an undeclared target falls back to the nearest
// propagating ancestor's label for the same slot. Unresolvable labels
// contribute nothing.
func (n *Node) resolveTarget(t Target, slot targetSlot) Style {
	switch {
	case t.IsZero():
		label := n.inheritedLabel(slot)
		n.activeLabels[slot] = label
		return n.props.Variants.Resolve(label)
	case t.IsLabel():
		n.activeLabels[slot] = t.LabelName()
		return n.props.Variants.Resolve(t.LabelName())
	default:
		n.activeLabels[slot] = ""
		return t.Literal()
	}
}
