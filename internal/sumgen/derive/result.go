package derive

import (
	"errors"
)

// Result is either a derived value or one or more diagnostics. Independent
// derivations fail without aborting their siblings: the dispatcher collects
// every Result of a run and reports all diagnostics at once.
//
// A Result is produced by exactly one derivation step and never mutated after
// creation.
type Result[A any] struct {
	value A
	errs  []error
}

// OK returns a successful result carrying v.
func OK[A any](v A) Result[A] {
	return Result[A]{value: v}
}

// Fail returns a failed result carrying the diagnostics. Panics when called
// with no errors: a failure must explain itself.
func Fail[A any](errs ...error) Result[A] {
	if len(errs) == 0 {
		panic("derive: Fail without diagnostics")
	}
	for _, err := range errs {
		if err == nil {
			panic("derive: Fail with nil diagnostic")
		}
	}
	return Result[A]{errs: errs}
}

// Ok reports whether the result is a success.
func (r Result[A]) Ok() bool { return len(r.errs) == 0 }

// Get returns the derived value. ok is false for a failed result.
func (r Result[A]) Get() (A, bool) {
	return r.value, r.Ok()
}

// Errs returns all diagnostics of a failed result, nil for a success.
func (r Result[A]) Errs() []error { return r.errs }

// Err joins all diagnostics into one error, nil for a success.
func (r Result[A]) Err() error { return errors.Join(r.errs...) }

// Map transforms a successful result's value. Diagnostics pass through
// unchanged.
func Map[A, B any](r Result[A], fn func(A) B) Result[B] {
	if !r.Ok() {
		return Result[B]{errs: r.errs}
	}
	return OK(fn(r.value))
}

// Collect merges independent results without short-circuiting: if any input
// failed, the output carries the concatenation of every input's diagnostics;
// otherwise it carries all values in input order.
func Collect[A any](rs []Result[A]) Result[[]A] {
	var values []A
	var errs []error
	for _, r := range rs {
		if !r.Ok() {
			errs = append(errs, r.errs...)
			continue
		}
		values = append(values, r.value)
	}
	if len(errs) != 0 {
		return Result[[]A]{errs: errs}
	}
	return OK(values)
}
