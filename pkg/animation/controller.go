package animation

import (
	"fmt"
	"time"
)

// Status represents the current state of a controller.
type Status int

const (
	// StatusIdle means the controller has not started.
	StatusIdle Status = iota
	// StatusDelayed means the controller is waiting out a transition delay.
	StatusDelayed
	// StatusRunning means the controller is producing values.
	StatusRunning
	// StatusCompleted means the controller reached its end.
	StatusCompleted
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusDelayed:
		return "delayed"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller drives a single submitted animation by producing values over
// time.
//
// Value progresses from 0.0 to 1.0 over Duration, after an optional Delay,
// with Curve transforming linear progress into eased motion. Use [Tween] to
// map the 0-1 value onto the channel's range.
//
// Always call Dispose when done to stop the ticker and release listeners.
type Controller struct {
	// Value is the current progress, ranging from 0.0 to 1.0.
	Value float64

	// Duration is the length of the animation.
	Duration time.Duration

	// Delay postpones the start of progress after Start is called.
	Delay time.Duration

	// Curve transforms linear progress (optional).
	Curve func(float64) float64

	status         Status
	ticker         *Ticker
	listeners      map[int]func()
	completions    map[int]func()
	nextListenerID int
}

// NewController creates a controller with the given duration.
func NewController(duration time.Duration) *Controller {
	return &Controller{
		Duration:    duration,
		Curve:       LinearCurve,
		status:      StatusIdle,
		listeners:   make(map[int]func()),
		completions: make(map[int]func()),
	}
}

// Start begins producing values. A non-positive duration completes on the
// first tick, which still gives the host one frame to observe the jump.
func (c *Controller) Start() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	if c.Delay > 0 {
		c.setStatus(StatusDelayed)
	} else {
		c.setStatus(StatusRunning)
	}
	c.ticker = NewTicker(func(elapsed time.Duration) {
		c.tick(elapsed)
	})
	c.ticker.Start()
}

func (c *Controller) tick(elapsed time.Duration) {
	if elapsed < c.Delay {
		return
	}
	active := elapsed - c.Delay
	c.setStatus(StatusRunning)

	if c.Duration <= 0 {
		c.Value = 1
		c.notifyListeners()
		c.complete()
		return
	}

	progress := float64(active) / float64(c.Duration)
	if progress >= 1.0 {
		progress = 1.0
	}

	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = eased
	c.notifyListeners()

	if progress >= 1.0 {
		c.complete()
	}
}

func (c *Controller) complete() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	c.setStatus(StatusCompleted)
	for _, fn := range c.completions {
		fn()
	}
}

// Stop halts the animation at its current value.
func (c *Controller) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Status returns the current controller status.
func (c *Controller) Status() Status {
	return c.status
}

// IsAnimating returns true while the controller is delayed or running.
func (c *Controller) IsAnimating() bool {
	return c.status == StatusDelayed || c.status == StatusRunning
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (c *Controller) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// OnComplete adds a callback that fires when the controller reaches its
// end. Returns an unsubscribe function.
func (c *Controller) OnComplete(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.completions[id] = fn
	return func() {
		delete(c.completions, id)
	}
}

func (c *Controller) setStatus(status Status) {
	if c.status == status {
		return
	}
	c.status = status
}

func (c *Controller) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose stops the controller and releases resources.
func (c *Controller) Dispose() {
	c.Stop()
	c.listeners = nil
	c.completions = nil
}
