// Package sumgen provides directives for sum-type code generation.
//
// A sum type is declared once as a "sketch": an interface carrying a single
// exhaustive Match method whose signature encodes the constructors and their
// fields. Sumgen derives everything else mechanically: constructor factories,
// an exhaustive generic matcher, field accessors and updaters, optics, and
// optional structural equality and lazy construction.
//
// To start with Sumgen, add a build constraint to files containing sketches
// and Sumgen directives:
//
//	//go:build sumgen
//
// Then declare a sketch and register it with [ADT]:
//
//	type Shape interface {
//		Match(circle func(radius float64) float64, rect func(w, h float64) float64) float64
//	}
//
//	var _ = sumgen.ADT[Shape]()
//
// After declaring sketches, run the sumgen command. It will generate
// sumgen_gen.go for your package:
//
//	go run github.com/sumgen/sumgen/cmd/sumgen
//
// The generated file carries the inverse build constraint, so the sketch file
// and the generated file never coexist in one build. For the Shape sketch
// above, the generated package exposes:
//
//	Circle(5)                                // factory
//	MatchShape(s, area, area)                // exhaustive generic matcher
//	GetRadius(s)                             // accessor; *float64 since Rect has no radius
//	WithW(9, s)                              // updater; identity on Circle
//
// # Matcher forms
//
// The Match method takes either one function parameter per constructor, as
// above, or a single "visitor" interface with one method per constructor:
//
//	type ShapeVisitor interface {
//		Circle(radius float64) float64
//		Rect(w, h float64) float64
//	}
//
//	type Shape interface {
//		Match(v ShapeVisitor) float64
//	}
//
// Either way, every branch must agree on the matcher's result type, and
// constructor names must be unique. Field names are taken from the declared
// parameter names; when a branch declares unnamed parameters, name its fields
// with [Fields].
//
// # Structural operations
//
// Declaring Equal, Hash, or String abstract on the sketch asks Sumgen to
// derive them structurally:
//
//	type Shape interface {
//		Match(circle func(radius float64) float64, rect func(w, h float64) float64) float64
//		Equal(Shape) bool
//		Hash() uint64
//		String() string
//	}
//
// Two values are equal iff they carry the same constructor and pairwise-equal
// fields. Hash is consistent with Equal. String renders the constructor name
// and the fields in declared order.
//
// # Flavours
//
// Accessors over fields absent from some constructors return an optional
// value. The flavour decides its concrete representation: [FlavourPlain] uses
// a pointer, [FlavourMo] uses mo.Option from github.com/samber/mo. Deriving
// the same sketch under two flavours yields the same behavior; only the
// boundary type differs.
package sumgen

// Option configures a single [ADT] directive. Options are recognized by the
// generator at parse time; their runtime values are never used.
type Option struct{ _ struct{} }

// FlavourID identifies a representation family for optional values in
// generated code. The set of flavours is fixed at build time of Sumgen
// itself.
type FlavourID int

const (
	// FlavourPlain represents optional values with host-standard types:
	// a pointer that is nil when absent.
	FlavourPlain FlavourID = iota

	// FlavourMo represents optional values with mo.Option from
	// github.com/samber/mo.
	FlavourMo
)

// ADT registers the sketch type T for derivation. The returned value carries
// no information; assign it to the blank identifier:
//
//	var _ = sumgen.ADT[Shape](sumgen.Optics())
//
// ADT must be called in a file constrained by the "sumgen" build tag. Calling
// it at runtime is always a bug.
func ADT[T any](opts ...Option) struct{} {
	panic("sumgen: not generated")
}

// Flavour selects the representation family for optional values in the
// generated code. The default is [FlavourPlain].
func Flavour(f FlavourID) Option {
	panic("sumgen: not generated")
}

// Fields names the fields of one constructor explicitly. It is required when
// the constructor's branch declares unnamed parameters, since a bare function
// type carries no field names:
//
//	type Shape interface {
//		Match(circle func(float64) float64, rect func(float64, float64) float64) float64
//	}
//
//	var _ = sumgen.ADT[Shape](
//		sumgen.Fields("Circle", "radius"),
//		sumgen.Fields("Rect", "w", "h"),
//	)
//
// The number of names must equal the branch's parameter count.
func Fields(constructor string, names ...string) Option {
	panic("sumgen: not generated")
}

// Optics opts the sketch into lens and prism derivation. A lens is generated
// for every field present in all constructors; a prism is generated for every
// constructor.
func Optics() Option {
	panic("sumgen: not generated")
}

// Lazy requests a memoized lazy factory:
//
//	LazyShape(func() Shape { return expensive() })
//
// The producer runs at most once, on first match, even under concurrent
// matching; every caller observes the same cached value.
func Lazy() Option {
	panic("sumgen: not generated")
}

// Unexported makes the generated top-level names unexported. Constructor
// structs are unexported regardless.
func Unexported() Option {
	panic("sumgen: not generated")
}
