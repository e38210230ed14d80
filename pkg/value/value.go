// Package value provides externally owned, independently mutable value
// containers that nodes bind to by channel.
//
// A Value lives outside the render lifecycle of any node: it can be created
// before the node that reads it and can outlive that node. Any number of
// nodes may bind to the same Value; a Set from anywhere fans out to every
// subscriber, and each bound node reflects the new value on its next render.
package value

import "sync"

// Value is a mutable scalar with subscriber notification.
//
// Value is safe for concurrent use. Writes are last-write-wins; subscribers
// are invoked synchronously from Set, outside the internal lock, with the
// value that was written.
type Value struct {
	mu          sync.Mutex
	current     float64
	subscribers map[int]func(float64)
	nextSubID   int
}

// New creates a Value holding the given initial value.
func New(initial float64) *Value {
	return &Value{
		current:     initial,
		subscribers: make(map[int]func(float64)),
	}
}

// Get returns the current value.
func (v *Value) Get() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set updates the value and notifies all subscribers.
func (v *Value) Set(next float64) {
	v.mu.Lock()
	v.current = next
	fns := make([]func(float64), 0, len(v.subscribers))
	for _, fn := range v.subscribers {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// Subscribe adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (v *Value) Subscribe(fn func(float64)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextSubID
	v.nextSubID++
	v.subscribers[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subscribers, id)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (v *Value) SubscriberCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subscribers)
}
