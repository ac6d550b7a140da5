// Package optic provides minimal functional references for generated code.
// A [Lens] focuses a field shared by every constructor of a sum type, and a
// [Prism] focuses a single constructor. Generated code wires them up from the
// derived getters, setters, and factories.
package optic

// Lens is a pair of functions focusing a value of type A inside S. Get is
// total, so a lens only makes sense for a field every constructor carries.
type Lens[S, A any] struct {
	Get func(S) A
	Set func(A, S) S
}

// Modify applies f to the focused value and writes the result back.
func (l Lens[S, A]) Modify(f func(A) A, s S) S {
	return l.Set(f(l.Get(s)), s)
}

// Prism is a pair of functions focusing one constructor of S. Preview returns
// the constructor's payload in the optional representation O when s was built
// by that constructor, and the empty optional otherwise. Review rebuilds S
// from the payload.
type Prism[S, A, O any] struct {
	Preview func(S) O
	Review  func(A) S
}

// Ptr returns a pointer to v. It is the "present" half of the pointer-based
// optional representation.
func Ptr[T any](v T) *T {
	return &v
}

// FromPtr unwraps a pointer-based optional. The second result reports whether
// the value was present.
func FromPtr[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
