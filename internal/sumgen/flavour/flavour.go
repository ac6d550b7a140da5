// Package flavour maps abstract capability requests to concrete construction
// recipes for one of the supported representation families. Derivators never
// hard-code an optional or function representation; they resolve it here
// through the derive context.
package flavour

import (
	"github.com/sumgen/sumgen/internal/codefmt"
)

// Flavour identifies one supported representation family. The set is fixed at
// build time of Sumgen itself.
type Flavour int

const (
	// Plain uses host-standard types only: *T for optionals, plain func
	// types, struct{} for unit.
	Plain Flavour = iota

	// Mo uses mo.Option from github.com/samber/mo for optionals.
	Mo
)

func (f Flavour) String() string {
	switch f {
	case Plain:
		return "plain"
	case Mo:
		return "mo"
	}
	return "unknown"
}

// All lists every supported flavour in a stable order.
var All = []Flavour{Plain, Mo}

// Capability is an abstract request a derivator makes of a flavour.
type Capability int

const (
	// OptionalOf is the optional-value wrapper. Recipe args: the element
	// type expression. Wrap args: the present value expression. Unwrap
	// args: the optional expression; the result evaluates to (T, bool).
	OptionalOf Capability = iota

	// Function1 is a 1-ary function. Recipe args: parameter and result type
	// expressions. Wrap args: a func literal or value, returned as-is.
	// Unwrap args: the function expression and its argument.
	Function1

	// Function2 is a 2-ary function. Like Function1 with two parameters.
	Function2

	// UnitValue is the value carried by a field-less construction. No args.
	UnitValue
)

func (c Capability) String() string {
	switch c {
	case OptionalOf:
		return "optionalOf"
	case Function1:
		return "function1"
	case Function2:
		return "function2"
	case UnitValue:
		return "unitValue"
	}
	return "unknown"
}

// opticPath is the runtime package generated plain-flavour code leans on.
const opticPath = "github.com/sumgen/sumgen/pkg/optic"

// moPath is the third-party optional representation behind [Mo].
const moPath = "github.com/samber/mo"

// Recipe emits concrete code for one capability under one flavour. Every
// function takes the writer so it can register imports, and returns a Go
// expression or type string.
type Recipe struct {
	// TypeExpr returns the concrete type for the capability.
	TypeExpr func(w *codefmt.Writer, args ...string) string

	// Wrap returns the constructor expression: wrap a present value, build
	// a function, or produce the unit value.
	Wrap func(w *codefmt.Writer, args ...string) string

	// Empty returns the absent value for OptionalOf. Args: the element type
	// expression. Nil for capabilities without an empty case.
	Empty func(w *codefmt.Writer, args ...string) string

	// Unwrap returns the destructor expression: case-split on presence or
	// apply the function.
	Unwrap func(w *codefmt.Writer, args ...string) string
}

// registry is the static capability table. Populated once; never mutated.
var registry = map[Flavour]map[Capability]Recipe{
	Plain: {
		OptionalOf: {
			TypeExpr: func(w *codefmt.Writer, args ...string) string {
				return "*" + args[0]
			},
			Wrap: func(w *codefmt.Writer, args ...string) string {
				optic := w.Import(opticPath, "optic")
				return optic + ".Ptr(" + args[0] + ")"
			},
			Empty: func(w *codefmt.Writer, args ...string) string {
				return "nil"
			},
			Unwrap: func(w *codefmt.Writer, args ...string) string {
				optic := w.Import(opticPath, "optic")
				return optic + ".FromPtr(" + args[0] + ")"
			},
		},
		Function1: function(1),
		Function2: function(2),
		UnitValue: unit(),
	},
	Mo: {
		OptionalOf: {
			TypeExpr: func(w *codefmt.Writer, args ...string) string {
				mo := w.Import(moPath, "mo")
				return mo + ".Option[" + args[0] + "]"
			},
			Wrap: func(w *codefmt.Writer, args ...string) string {
				mo := w.Import(moPath, "mo")
				return mo + ".Some(" + args[0] + ")"
			},
			Empty: func(w *codefmt.Writer, args ...string) string {
				mo := w.Import(moPath, "mo")
				return mo + ".None[" + args[0] + "]()"
			},
			Unwrap: func(w *codefmt.Writer, args ...string) string {
				return args[0] + ".Get()"
			},
		},
		Function1: function(1),
		Function2: function(2),
		UnitValue: unit(),
	},
}

// function builds the host-standard function recipe shared by all flavours:
// Go func types need no library backing in any representation family.
func function(arity int) Recipe {
	return Recipe{
		TypeExpr: func(w *codefmt.Writer, args ...string) string {
			params := ""
			for i := 0; i < arity; i++ {
				if i != 0 {
					params += ", "
				}
				params += args[i]
			}
			return "func(" + params + ") " + args[arity]
		},
		Wrap: func(w *codefmt.Writer, args ...string) string {
			return args[0]
		},
		Unwrap: func(w *codefmt.Writer, args ...string) string {
			call := args[0] + "("
			for i, arg := range args[1:] {
				if i != 0 {
					call += ", "
				}
				call += arg
			}
			return call + ")"
		},
	}
}

func unit() Recipe {
	return Recipe{
		TypeExpr: func(w *codefmt.Writer, args ...string) string {
			return "struct{}"
		},
		Wrap: func(w *codefmt.Writer, args ...string) string {
			return "struct{}{}"
		},
		Unwrap: func(w *codefmt.Writer, args ...string) string {
			return args[0]
		},
	}
}

// Resolve returns the recipe for the capability under the flavour. Resolution
// is total for supported flavours; ok is false only when the flavour cannot
// supply the capability at all.
func Resolve(f Flavour, c Capability) (Recipe, bool) {
	caps, ok := registry[f]
	if !ok {
		return Recipe{}, false
	}
	r, ok := caps[c]
	return r, ok
}

// Supports reports whether the flavour resolves every given capability.
func Supports(f Flavour, caps ...Capability) bool {
	for _, c := range caps {
		if _, ok := Resolve(f, c); !ok {
			return false
		}
	}
	return true
}

// Supporting returns the flavours that resolve every given capability, in
// [All] order. Derivators use it to declare their supported-flavour set as
// the intersection required by their capabilities.
func Supporting(caps ...Capability) []Flavour {
	var out []Flavour
	for _, f := range All {
		if Supports(f, caps...) {
			out = append(out, f)
		}
	}
	return out
}
