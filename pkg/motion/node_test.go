package motion

import (
	"testing"
	"time"

	"github.com/atze1210/motion/pkg/animation"
	"github.com/atze1210/motion/pkg/projection"
	"github.com/atze1210/motion/pkg/value"
)

// fakeEngine records submissions without running them.
type fakeEngine struct {
	subs []animation.Submission
}

func (e *fakeEngine) Submit(channel string, from, to float64, tr *animation.Transition, apply func(float64)) {
	e.subs = append(e.subs, animation.Submission{
		Channel:    channel,
		From:       from,
		To:         to,
		Transition: tr,
	})
}

// fakeRegistry records registrations.
type fakeRegistry struct {
	registered   []string
	unregistered []string
}

func (r *fakeRegistry) Register(id string)   { r.registered = append(r.registered, id) }
func (r *fakeRegistry) Unregister(id string) { r.unregistered = append(r.unregistered, id) }

func mountNode(t *testing.T, static bool, props Props) (*Owner, *Scope, *Node, *fakeEngine, *fakeRegistry) {
	t.Helper()
	owner := NewOwner()
	scope := NewScope(nil, Config{Static: static})
	engine := &fakeEngine{}
	registry := &fakeRegistry{}
	node := NewNode(owner, engine, registry)
	node.Mount(scope, props)
	return owner, scope, node, engine, registry
}

func TestStyle_LiveOnEveryRender(t *testing.T) {
	for _, static := range []bool{true, false} {
		owner, _, node, _, _ := mountNode(t, static, Props{Style: Style{"x": 100}})

		if got, _ := node.EffectiveValue("x"); got != 100 {
			t.Fatalf("static=%v: mounted x = %v, want 100", static, got)
		}

		node.Update(Props{Style: Style{"x": 200}})
		owner.FlushRender()

		if got, _ := node.EffectiveValue("x"); got != 200 {
			t.Errorf("static=%v: x after style change = %v, want 200", static, got)
		}
	}
}

func TestStyle_WithdrawnChannelIsCleared(t *testing.T) {
	owner, _, node, _, _ := mountNode(t, false, Props{Style: Style{"x": 100, "opacity": 0.5}})

	node.Update(Props{Style: Style{"opacity": 0.5}})
	owner.FlushRender()

	if _, ok := node.EffectiveValue("x"); ok {
		t.Error("withdrawn style channel still rendered")
	}
	if got, _ := node.EffectiveValue("opacity"); got != 0.5 {
		t.Errorf("surviving channel = %v, want 0.5", got)
	}
}

func TestInitial_MountOnlyWhenNotStatic(t *testing.T) {
	owner, _, node, _, _ := mountNode(t, false, Props{Initial: Values(Style{"opacity": 0.8})})

	if got, _ := node.EffectiveValue("opacity"); got != 0.8 {
		t.Fatalf("mounted opacity = %v, want 0.8", got)
	}

	node.Update(Props{Initial: Values(Style{"opacity": 0.3})})
	owner.FlushRender()

	if got, _ := node.EffectiveValue("opacity"); got != 0.8 {
		t.Errorf("opacity after initial change = %v, want mount value 0.8", got)
	}
}

func TestInitial_LiveOnEveryRenderWhenStatic(t *testing.T) {
	owner, _, node, _, _ := mountNode(t, true, Props{Initial: Values(Style{"opacity": 0.8})})

	node.Update(Props{Initial: Values(Style{"opacity": 0.3})})
	owner.FlushRender()

	if got, _ := node.EffectiveValue("opacity"); got != 0.3 {
		t.Errorf("static opacity after initial change = %v, want 0.3", got)
	}
}

func TestInitial_WithdrawnChannelFallsThroughToStyle(t *testing.T) {
	for _, static := range []bool{true, false} {
		owner, _, node, _, _ := mountNode(t, static, Props{
			Initial: Values(Style{"opacity": 0.8}),
			Style:   Style{"opacity": 0.5},
		})

		if got, _ := node.EffectiveValue("opacity"); got != 0.8 {
			t.Fatalf("static=%v: mounted opacity = %v, want initial 0.8", static, got)
		}

		node.Update(Props{Style: Style{"opacity": 0.5}})
		owner.FlushRender()

		if got, _ := node.EffectiveValue("opacity"); got != 0.5 {
			t.Errorf("static=%v: opacity after withdrawing initial = %v, want style 0.5", static, got)
		}
	}
}

func TestBoundContainer_AlwaysWins(t *testing.T) {
	for _, static := range []bool{true, false} {
		_, _, node, _, _ := mountNode(t, static, Props{
			Bind:    map[string]*value.Value{"x": value.New(7)},
			Initial: Values(Style{"x": 1}),
			Style:   Style{"x": 2},
		})

		if got, _ := node.EffectiveValue("x"); got != 7 {
			t.Errorf("static=%v: bound x = %v, want container value 7", static, got)
		}
	}
}

func TestBoundContainer_MutationReflectedNextFlush(t *testing.T) {
	for _, static := range []bool{true, false} {
		container := value.New(0)
		owner, _, node, _, _ := mountNode(t, static, Props{
			Bind: map[string]*value.Value{"x": container},
		})

		// Mutation arrives from outside any boundary, between frames.
		container.Set(42)
		owner.FlushRender()

		if got, _ := node.EffectiveValue("x"); got != 42 {
			t.Errorf("static=%v: x after container mutation = %v, want 42", static, got)
		}
	}
}

func TestBoundContainer_UnsubscribedOnWithdrawAndUnmount(t *testing.T) {
	container := value.New(1)
	owner, _, node, _, _ := mountNode(t, false, Props{
		Bind: map[string]*value.Value{"x": container},
	})

	if container.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount after mount = %d, want 1", container.SubscriberCount())
	}

	node.Update(Props{})
	owner.FlushRender()
	if container.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount after binding withdrawn = %d, want 0", container.SubscriberCount())
	}
	if _, ok := node.EffectiveValue("x"); ok {
		t.Error("withdrawn binding still rendered")
	}

	node.Update(Props{Bind: map[string]*value.Value{"x": container}})
	owner.FlushRender()
	node.Unmount()
	if container.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount after unmount = %d, want 0", container.SubscriberCount())
	}
}

func TestGate_StaticNeverSubmits(t *testing.T) {
	owner, _, node, engine, _ := mountNode(t, true, Props{
		Style:   Style{"x": 5},
		Animate: Values(Style{"x": 100}),
		Transition: &animation.Transition{
			// A "no animation" transition still must not snap the target in.
			Duration: 0,
		},
	})

	node.Update(Props{
		Style:      Style{"x": 5},
		Animate:    Values(Style{"x": 100}),
		Transition: &animation.Transition{Duration: 0},
	})
	owner.FlushRender()

	if len(engine.subs) != 0 {
		t.Fatalf("static gate submitted %d targets, want 0", len(engine.subs))
	}
	if got, _ := node.EffectiveValue("x"); got != 5 {
		t.Errorf("static x = %v, want style value 5 (never the animate target)", got)
	}
}

func TestGate_StaticAnimateNeverReachesValueAfterSettle(t *testing.T) {
	fc := &manualClock{now: time.Unix(0, 0)}
	prev := animation.SetClock(fc)
	defer animation.SetClock(prev)

	owner := NewOwner()
	scope := NewScope(nil, Config{Static: true})
	engine := animation.NewEngine()
	node := NewNode(owner, engine, nil)
	node.Mount(scope, Props{
		Style:      Style{"x": 5},
		Animate:    Values(Style{"x": 100}),
		Transition: &animation.Transition{Duration: 0},
	})

	// Settle: run several frames.
	for i := 0; i < 5; i++ {
		fc.now = fc.now.Add(16 * time.Millisecond)
		animation.StepTickers()
		owner.FlushRender()
	}

	if engine.ActiveCount() != 0 || len(engine.Submissions()) != 0 {
		t.Fatal("engine received work from a static node")
	}
	if got, _ := node.EffectiveValue("x"); got != 5 {
		t.Errorf("settled x = %v, want 5", got)
	}
}

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func TestGate_NonStaticSubmitsFromCurrentValue(t *testing.T) {
	tr := &animation.Transition{Duration: 200 * time.Millisecond, Ease: "easeOut"}
	_, _, _, engine, _ := mountNode(t, false, Props{
		Style:      Style{"x": 10},
		Animate:    Values(Style{"x": 100}),
		Transition: tr,
	})

	if len(engine.subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(engine.subs))
	}
	sub := engine.subs[0]
	if sub.Channel != "x" || sub.From != 10 || sub.To != 100 {
		t.Errorf("submission = %+v, want x from 10 to 100", sub)
	}
	if sub.Transition != tr {
		t.Error("descriptor was not passed through as-is")
	}
}

func TestGate_UnchangedTargetNotResubmitted(t *testing.T) {
	owner, _, node, engine, _ := mountNode(t, false, Props{
		Animate: Values(Style{"x": 100}),
	})

	node.Update(Props{Animate: Values(Style{"x": 100})})
	owner.FlushRender()

	if len(engine.subs) != 1 {
		t.Errorf("submissions after unchanged target = %d, want 1", len(engine.subs))
	}

	node.Update(Props{Animate: Values(Style{"x": 50})})
	owner.FlushRender()

	if len(engine.subs) != 2 {
		t.Errorf("submissions after changed target = %d, want 2", len(engine.subs))
	}
}

func TestGate_ExoticDescriptorTolerated(t *testing.T) {
	exotic := &animation.Transition{
		Type: "inertia",
		Extra: map[string]any{
			"staggerChildren":  0.25,
			"staggerDirection": -1,
			"when":             "afterChildren",
		},
	}

	for _, static := range []bool{true, false} {
		owner, _, node, engine, _ := mountNode(t, static, Props{
			Style:      Style{"x": 1},
			Animate:    Values(Style{"x": 9}),
			Transition: exotic,
		})
		owner.FlushRender()

		if _, ok := node.EffectiveValue("x"); !ok {
			t.Errorf("static=%v: node failed to render with exotic descriptor", static)
		}
		if static {
			if len(engine.subs) != 0 {
				t.Error("static gate submitted an exotic descriptor")
			}
		} else {
			if len(engine.subs) == 0 || engine.subs[0].Transition != exotic {
				t.Error("non-static gate dropped or altered the descriptor")
			}
		}
	}
}

func TestAnimate_NeverConsultedDirectly(t *testing.T) {
	_, _, node, _, _ := mountNode(t, true, Props{
		Style:   Style{"opacity": 0.5},
		Animate: Values(Style{"opacity": 0}),
	})

	if got, _ := node.EffectiveValue("opacity"); got != 0.5 {
		t.Errorf("opacity = %v, want 0.5; animate targets must not leak into resolution", got)
	}
}

func TestProjection_StaticNeverRegisters(t *testing.T) {
	projection.ResetLayoutUsed()
	projection.MarkLayoutUsed() // process-wide flag set beforehand must not matter

	owner, _, node, _, registry := mountNode(t, true, Props{Layout: true})
	owner.FlushRender()

	if node.ProjectionID() != "" {
		t.Errorf("static node got projection id %q", node.ProjectionID())
	}
	if len(registry.registered) != 0 {
		t.Errorf("static node registered with layout tracking")
	}
}

func TestProjection_NonStaticRegistersOnMount(t *testing.T) {
	_, _, node, _, registry := mountNode(t, false, Props{Layout: true})

	if node.ProjectionID() == "" {
		t.Fatal("no projection id assigned")
	}
	if len(registry.registered) != 1 || registry.registered[0] != node.ProjectionID() {
		t.Errorf("registered = %v, want [%s]", registry.registered, node.ProjectionID())
	}
}

func TestProjection_FlagFlipTearsDownAndRebuilds(t *testing.T) {
	owner, scope, node, _, registry := mountNode(t, false, Props{Layout: true})
	id := node.ProjectionID()

	scope.SetConfig(Config{Static: true})
	owner.FlushRender()

	if node.ProjectionID() != "" {
		t.Error("projection id survived the flip to static")
	}
	if len(registry.unregistered) != 1 || registry.unregistered[0] != id {
		t.Errorf("unregistered = %v, want [%s]", registry.unregistered, id)
	}

	scope.SetConfig(Config{Static: false})
	owner.FlushRender()

	if node.ProjectionID() == "" {
		t.Error("projection id not re-allocated after flip back")
	}
	if node.ProjectionID() == id {
		t.Error("stale projection id reused after teardown")
	}
}

func TestProjection_NoOptInNoRegistration(t *testing.T) {
	_, _, node, _, registry := mountNode(t, false, Props{Style: Style{"x": 1}})

	if node.ProjectionID() != "" || len(registry.registered) != 0 {
		t.Error("node without Layout opt-in was registered")
	}
}

func TestUnmount_TearsDownProjection(t *testing.T) {
	_, _, node, _, registry := mountNode(t, false, Props{Layout: true})
	id := node.ProjectionID()

	node.Unmount()

	if len(registry.unregistered) != 1 || registry.unregistered[0] != id {
		t.Errorf("unregistered = %v, want [%s]", registry.unregistered, id)
	}
}
