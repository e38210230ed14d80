// Package motiontest provides an isolated harness for testing node trees
// without a real frame loop.
//
// A Tester wires an Owner, a root configuration Scope, a real animation
// engine, and a projection registry to a fake clock. Tests mount nodes,
// pump frames deterministically, and assert on the resolved channel
// values.
package motiontest

import (
	"errors"
	"testing"
	"time"

	"github.com/atze1210/motion/pkg/animation"
	"github.com/atze1210/motion/pkg/motion"
	"github.com/atze1210/motion/pkg/projection"
)

// DefaultFrame is the frame interval Pump and PumpAndSettle advance by.
const DefaultFrame = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: tree did not settle")

// Tester drives the same resolve and animation phases as a host frame
// loop, against a fake clock instead of real time.
type Tester struct {
	Owner    *motion.Owner
	Scope    *motion.Scope
	Engine   *animation.Engine
	Registry *projection.Registry

	clock     *FakeClock
	prevClock animation.Clock
}

// NewTester creates a harness whose root boundary carries the given
// config. Cleanup is registered with t automatically.
func NewTester(t *testing.T, config motion.Config) *Tester {
	clk := NewFakeClock()
	tester := &Tester{
		Owner:    motion.NewOwner(),
		Engine:   animation.NewEngine(),
		Registry: projection.NewRegistry(),
		clock:    clk,
	}
	tester.prevClock = animation.SetClock(clk)
	tester.Scope = motion.NewScope(nil, config)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup stops outstanding animations and restores the animation clock.
func (t *Tester) Cleanup() {
	t.Engine.StopAll()
	animation.SetClock(t.prevClock)
}

// Clock returns the harness clock for direct manipulation.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// MountNode mounts a node under the root boundary with the harness's
// engine and registry wired in.
func (t *Tester) MountNode(props motion.Props) *motion.Node {
	node := motion.NewNode(t.Owner, t.Engine, t.Registry)
	node.Mount(t.Scope, props)
	return node
}

// MountChild mounts a node under an existing parent.
func (t *Tester) MountChild(parent motion.TreeNode, props motion.Props) *motion.Node {
	node := motion.NewNode(t.Owner, t.Engine, t.Registry)
	node.Mount(parent, props)
	return node
}

// Pump advances one frame: the clock moves by d (DefaultFrame when zero),
// active animations tick, and dirty nodes re-resolve.
func (t *Tester) Pump(d time.Duration) {
	if d == 0 {
		d = DefaultFrame
	}
	t.clock.Advance(d)
	animation.StepTickers()
	t.Owner.FlushRender()
}

// PumpAndSettle pumps frames until no animation is active and no node is
// dirty, or until timeout fake-time has elapsed.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	t.Owner.FlushRender()
	var elapsed time.Duration
	for animation.HasActiveTickers() || t.Owner.NeedsWork() {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.Pump(DefaultFrame)
		elapsed += DefaultFrame
	}
	return nil
}
