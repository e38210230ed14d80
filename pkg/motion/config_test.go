package motion

import "testing"

func TestStatic_DefaultsFalseWithoutBoundary(t *testing.T) {
	owner := NewOwner()
	node := NewNode(owner, &fakeEngine{}, nil)
	node.Mount(nil, Props{})

	if node.IsStatic() {
		t.Error("node without any boundary reports static")
	}
}

func TestStatic_InheritedFromNearestBoundary(t *testing.T) {
	owner := NewOwner()
	outer := NewScope(nil, Config{Static: true})
	parent := NewNode(owner, nil, nil)
	parent.Mount(outer, Props{})
	child := NewNode(owner, nil, nil)
	child.Mount(parent, Props{})

	if !child.IsStatic() {
		t.Error("child did not inherit the enclosing boundary's flag")
	}
}

func TestStatic_NestedBoundaryOverrides(t *testing.T) {
	owner := NewOwner()
	outer := NewScope(nil, Config{Static: true})
	inner := NewScope(outer, Config{Static: false})
	node := NewNode(owner, nil, nil)
	node.Mount(inner, Props{})

	if node.IsStatic() {
		t.Error("node read a flag from beyond its nearest enclosing boundary")
	}
}

func TestSetConfig_DescendantsObserveNewFlagNextRender(t *testing.T) {
	owner := NewOwner()
	scope := NewScope(nil, Config{Static: false})
	node := NewNode(owner, &fakeEngine{}, nil)
	node.Mount(scope, Props{Initial: Values(Style{"opacity": 0.8})})

	scope.SetConfig(Config{Static: true})
	owner.FlushRender()

	// Static regime now applies: a later initial change is live.
	node.Update(Props{Initial: Values(Style{"opacity": 0.2})})
	owner.FlushRender()

	if got, _ := node.EffectiveValue("opacity"); got != 0.2 {
		t.Errorf("opacity = %v, want 0.2 under the new flag", got)
	}
}

func TestSetConfig_SameConfigDoesNotScheduleWork(t *testing.T) {
	owner := NewOwner()
	scope := NewScope(nil, Config{Static: true})
	node := NewNode(owner, nil, nil)
	node.Mount(scope, Props{})
	owner.FlushRender()

	scope.SetConfig(Config{Static: true})
	if owner.NeedsWork() {
		t.Error("unchanged config scheduled a re-render")
	}
}

func TestOwner_OnNeedsFrameFiresOncePerSchedule(t *testing.T) {
	owner := NewOwner()
	frames := 0
	owner.OnNeedsFrame = func() { frames++ }

	node := NewNode(owner, nil, nil)
	node.Mount(nil, Props{})
	owner.FlushRender()

	node.MarkNeedsRender()
	node.MarkNeedsRender()

	if frames != 1 {
		t.Errorf("OnNeedsFrame fired %d times for one dirty node, want 1", frames)
	}
}
