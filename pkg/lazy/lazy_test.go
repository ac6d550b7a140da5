package lazy

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForceCachesValue(t *testing.T) {
	calls := 0
	cell := NewCell(func() int {
		calls++
		return 42
	})

	assert.Equal(t, 42, cell.Force())
	assert.Equal(t, 42, cell.Force())
	assert.Equal(t, 1, calls)
}

func TestForceIsLazy(t *testing.T) {
	called := false
	cell := NewCell(func() string {
		called = true
		return "value"
	})

	assert.False(t, called)
	assert.Equal(t, "value", cell.Force())
	assert.True(t, called)
}

func TestForceRunsProducerOnceConcurrently(t *testing.T) {
	var calls atomic.Int32
	cell := NewCell(func() int {
		calls.Add(1)
		return 7
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 7, cell.Force())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
