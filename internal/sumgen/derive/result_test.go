package derive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultOK(t *testing.T) {
	r := OK(42)

	assert.True(t, r.Ok())
	v, ok := r.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Nil(t, r.Errs())
	assert.NoError(t, r.Err())
}

func TestResultFail(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")
	r := Fail[int](e1, e2)

	assert.False(t, r.Ok())
	_, ok := r.Get()
	assert.False(t, ok)
	assert.Equal(t, []error{e1, e2}, r.Errs())
	assert.ErrorIs(t, r.Err(), e1)
	assert.ErrorIs(t, r.Err(), e2)
}

func TestResultFailPanicsWithoutDiagnostics(t *testing.T) {
	assert.Panics(t, func() { Fail[int]() })
	assert.Panics(t, func() { Fail[int](nil) })
}

func TestResultMap(t *testing.T) {
	doubled := Map(OK(21), func(v int) int { return v * 2 })
	v, ok := doubled.Get()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	e := errors.New("broken")
	failed := Map(Fail[int](e), func(v int) int { return v * 2 })
	assert.False(t, failed.Ok())
	assert.Equal(t, []error{e}, failed.Errs())
}

func TestResultCollect(t *testing.T) {
	all := Collect([]Result[int]{OK(1), OK(2), OK(3)})
	vs, ok := all.Get()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, vs)

	e1 := errors.New("first")
	e2 := errors.New("second")
	mixed := Collect([]Result[int]{OK(1), Fail[int](e1), Fail[int](e2)})
	assert.False(t, mixed.Ok())
	assert.Equal(t, []error{e1, e2}, mixed.Errs())
}
