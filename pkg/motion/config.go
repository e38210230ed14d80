package motion

// Config is the tree-scoped configuration established by a Scope boundary.
type Config struct {
	// Static disables the animation and layout-projection subsystems for
	// every node in the boundary's subtree. Direct reactive-value and
	// literal-prop updates keep working.
	Static bool
}

// TreeNode is satisfied by anything that can appear in the parent chain:
// nodes and configuration boundaries.
type TreeNode interface {
	parentNode() TreeNode
	addChild(TreeNode)
	removeChild(TreeNode)
	visitChildren(func(TreeNode) bool)
	Depth() int
}

// Scope is a configuration boundary. Every descendant node observes the
// boundary's current Config on each render; a nested Scope overrides it
// for its own subtree.
//
// Scopes hold no channel state of their own. They exist so configuration
// flows through the tree-construction API by reference instead of through
// ambient globals.
type Scope struct {
	parent   TreeNode
	children []TreeNode
	depth    int
	config   Config
}

// NewScope creates a boundary under parent (nil for a root boundary).
func NewScope(parent TreeNode, config Config) *Scope {
	s := &Scope{
		parent: parent,
		config: config,
	}
	if parent != nil {
		s.depth = parent.Depth() + 1
		parent.addChild(s)
	}
	return s
}

// Config returns the boundary's current configuration.
func (s *Scope) Config() Config {
	return s.config
}

// SetConfig replaces the boundary's configuration and re-renders the
// subtree so every descendant observes the new value on its next render.
func (s *Scope) SetConfig(config Config) {
	if s.config == config {
		return
	}
	s.config = config
	markSubtreeDirty(s)
}

// Detach removes the boundary from its parent. Children keep their parent
// references; detaching a boundary mid-lifecycle is a host bug, but the
// method exists so hosts can tear down trees bottom-up.
func (s *Scope) Detach() {
	if s.parent != nil {
		s.parent.removeChild(s)
		s.parent = nil
	}
}

func (s *Scope) parentNode() TreeNode { return s.parent }

func (s *Scope) addChild(child TreeNode) {
	s.children = append(s.children, child)
}

func (s *Scope) removeChild(child TreeNode) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *Scope) visitChildren(visitor func(TreeNode) bool) {
	for _, child := range s.children {
		if !visitor(child) {
			return
		}
	}
}

// Depth returns the boundary's depth in the tree.
func (s *Scope) Depth() int { return s.depth }

// staticFor walks to the nearest enclosing Scope and returns its current
// Static flag. No value is cached between renders: a boundary that
// re-renders with a different flag is observed immediately. Absent any
// boundary, the flag defaults to false.
func staticFor(start TreeNode) bool {
	current := start
	for current != nil {
		if scope, ok := current.(*Scope); ok {
			return scope.config.Static
		}
		current = current.parentNode()
	}
	return false
}

// markSubtreeDirty schedules a re-render for every node below root.
func markSubtreeDirty(root TreeNode) {
	root.visitChildren(func(child TreeNode) bool {
		if node, ok := child.(*Node); ok {
			node.MarkNeedsRender()
		}
		markSubtreeDirty(child)
		return true
	})
}
