package animation

import "sync"

// Engine runs gated channel animations.
//
// Each Submit spawns a [Controller] driving a float64 tween from the
// channel's current value to the target, invoking apply with every
// intermediate value. The engine never decides whether a target should
// animate; that decision already happened upstream.
type Engine struct {
	mu          sync.Mutex
	active      map[*Controller]struct{}
	submissions []Submission
}

// NewEngine creates an engine with no active animations.
func NewEngine() *Engine {
	return &Engine{
		active: make(map[*Controller]struct{}),
	}
}

// Submit starts animating a channel from its current value to target,
// calling apply with each produced value. A nil transition or a zero
// duration snaps to the target on the next frame.
func (e *Engine) Submit(channel string, from, to float64, tr *Transition, apply func(float64)) {
	controller := NewController(0)
	if tr != nil {
		controller.Duration = tr.Duration
		controller.Delay = tr.Delay
		controller.Curve = CurveByName(tr.Ease)
	}

	tween := TweenFloat64(from, to)
	controller.AddListener(func() {
		apply(tween.Transform(controller))
	})
	controller.OnComplete(func() {
		e.mu.Lock()
		delete(e.active, controller)
		e.mu.Unlock()
	})

	e.mu.Lock()
	e.active[controller] = struct{}{}
	e.submissions = append(e.submissions, Submission{
		Channel:    channel,
		From:       from,
		To:         to,
		Transition: tr,
	})
	e.mu.Unlock()

	controller.Start()
}

// ActiveCount returns the number of animations still running.
func (e *Engine) ActiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}

// Submissions returns a copy of every submission the engine has accepted,
// in order.
func (e *Engine) Submissions() []Submission {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Submission, len(e.submissions))
	copy(out, e.submissions)
	return out
}

// StopAll halts every active animation at its current value.
func (e *Engine) StopAll() {
	e.mu.Lock()
	controllers := make([]*Controller, 0, len(e.active))
	for c := range e.active {
		controllers = append(controllers, c)
	}
	e.active = make(map[*Controller]struct{})
	e.mu.Unlock()

	for _, c := range controllers {
		c.Stop()
	}
}
