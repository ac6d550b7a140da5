// Package lazy provides the deferred-evaluation cell used by generated lazy
// constructors. A cell runs its producer at most once, even under concurrent
// access, and caches the result forever.
package lazy

import "sync"

// Cell holds a value of type T that is produced on first use.
type Cell[T any] struct {
	once    sync.Once
	produce func() T
	value   T
}

// NewCell returns a cell that will call produce on the first [Cell.Force].
func NewCell[T any](produce func() T) Cell[T] {
	return Cell[T]{produce: produce}
}

// Force returns the cell's value, running the producer if it has not run yet.
// Concurrent calls block until the single producer run completes.
func (c *Cell[T]) Force() T {
	c.once.Do(func() {
		c.value = c.produce()
		c.produce = nil
	})
	return c.value
}
