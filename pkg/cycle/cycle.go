// Package cycle provides bounded index state with wrap-around.
//
// A Cycle steps through a fixed sequence of items, either one at a time or
// by jumping to an explicit index. Indices wrap modulo the sequence length
// in both directions, so Next(-1) selects the last item.
package cycle

// Cycle holds a sequence and the index of the current item. The Cycle and
// its methods keep a stable identity for as long as the sequence is
// unchanged, so a host can hand the same Cycle across renders.
type Cycle[T any] struct {
	items []T
	index int
}

// New creates a cycle over the given items, starting at the first.
func New[T any](items ...T) *Cycle[T] {
	return &Cycle[T]{items: items}
}

// Current returns the item at the current index. The zero value of T is
// returned for an empty sequence.
func (c *Cycle[T]) Current() T {
	if len(c.items) == 0 {
		var zero T
		return zero
	}
	return c.items[c.index]
}

// Index returns the current index.
func (c *Cycle[T]) Index() int {
	return c.index
}

// Len returns the sequence length.
func (c *Cycle[T]) Len() int {
	return len(c.items)
}

// Next advances the cycle and returns the new current item. With no
// argument it advances by one with wrap-around; with an explicit index it
// jumps there, wrapping modulo the sequence length (negative indices wrap
// from the end).
func (c *Cycle[T]) Next(index ...int) T {
	if len(c.items) == 0 {
		var zero T
		return zero
	}
	if len(index) > 0 {
		c.index = wrap(index[0], len(c.items))
	} else {
		c.index = wrap(c.index+1, len(c.items))
	}
	return c.items[c.index]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
