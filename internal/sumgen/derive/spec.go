package derive

import (
	"go/token"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/sumgen/sumgen/internal/codefmt"
)

// Artifact is one generated code fragment identified by name. Top-level
// declarations are named by their identifier; methods by "recv.Method". Two
// derivators of one run must never claim the same name.
type Artifact struct {
	// Name identifies the fragment for collision detection.
	Name string

	// Pos anchors collision diagnostics to the sketch.
	Pos token.Pos

	// Write renders the fragment. It runs only after the whole run
	// succeeded, so it must not fail.
	Write func(w *codefmt.Writer)
}

// CodeSpec is the named bag of code fragments contributed by one derivator,
// or the merge of several derivators' bags. Fragments keep insertion order so
// generated output is reproducible.
type CodeSpec struct {
	arts *linkedhashmap.Map // Name -> Artifact
}

// NewCodeSpec creates an empty bag.
func NewCodeSpec() *CodeSpec {
	return &CodeSpec{arts: linkedhashmap.New()}
}

// Add appends a fragment. It returns false when the name is already claimed,
// leaving the existing fragment in place.
func (s *CodeSpec) Add(a Artifact) bool {
	if _, ok := s.arts.Get(a.Name); ok {
		return false
	}
	s.arts.Put(a.Name, a)
	return true
}

// Len returns the number of fragments.
func (s *CodeSpec) Len() int { return s.arts.Size() }

// Artifacts returns the fragments in insertion order.
func (s *CodeSpec) Artifacts() []Artifact {
	out := make([]Artifact, 0, s.arts.Size())
	for _, v := range s.arts.Values() {
		out = append(out, v.(Artifact))
	}
	return out
}

// Names returns the fragment names in insertion order.
func (s *CodeSpec) Names() []string {
	out := make([]string, 0, s.arts.Size())
	for _, k := range s.arts.Keys() {
		out = append(out, k.(string))
	}
	return out
}
