// Package motion provides the declarative node tree and the static-mode
// gate that decides how each node's visual channels are driven.
//
// # Core Types
//
// Node is one visual tree node. A host mounts a Node with a [Props] value,
// updates it with new Props on every render, and reads the resolved
// channel values back via [Node.EffectiveValues] to paint.
//
// Scope is a configuration boundary. Its [Config] applies to every
// descendant node until a nested Scope overrides it; nodes read the
// nearest enclosing boundary fresh on every render.
//
// # Static Mode
//
// With Config.Static set, a subtree keeps direct value updates but drops
// everything time-based: animate targets never reach the engine, and no
// node is registered for layout projection. Style literals stay live,
// bound containers stay live, and initial values turn into live props
// (re-read every render instead of applying once at mount).
//
// # Channel Resolution
//
// Each channel resolves independently, fresh on every render, in a fixed
// order: a bound [value.Value] always wins; then an engine-driven value
// (non-static only); then the initial literal under its lifecycle regime;
// then the style literal; otherwise the channel is cleared. Withdrawing a
// prop's channel withdraws its rendered effect on the next render.
//
// # Constructor Conventions
//
// Long-lived mutable objects (nodes, scopes, owners) use NewX()
// constructors returning pointers. Props, Style, and Target are plain
// configuration values built with struct literals and the Values/Label
// helpers.
package motion
