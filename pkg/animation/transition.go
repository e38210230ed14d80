package animation

import "time"

// Transition describes how a submitted target should be animated.
//
// The node tree treats a Transition as inert data: the gate that decides
// whether a target reaches the engine never reads these fields. Only the
// engine interprets them, and only the fields it understands; anything
// else rides along in Extra untouched. A descriptor full of scheduling
// fields the engine has never heard of is valid input everywhere.
type Transition struct {
	// Duration is the animation length. Zero snaps to the target on the
	// next frame.
	Duration time.Duration

	// Delay postpones the start of the animation.
	Delay time.Duration

	// Ease names the easing curve ("ease", "easeIn", "easeOut",
	// "easeInOut"). Empty or unrecognized names run linearly.
	Ease string

	// Type names the animation style. Only "tween" (the default) is
	// interpreted; other values are tolerated and run as tweens.
	Type string

	// Extra carries descriptor fields the engine does not interpret,
	// such as cross-child stagger timing. They are preserved but never
	// evaluated.
	Extra map[string]any
}

// Submission records one gated target handed to the engine. Exposed so
// hosts and tests can observe what actually reached the engine.
type Submission struct {
	Channel    string
	From       float64
	To         float64
	Transition *Transition
}
