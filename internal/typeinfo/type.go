// Package typeinfo wraps [types.Type] with the classification Sumgen needs
// while inspecting sketch declarations: interfaces for sketches and visitors,
// signatures for matcher branches, and the leaf types of fields.
package typeinfo

import (
	"fmt"
	"go/token"
	"go/types"
)

// Type describes a type from the sketch extractor's perspective.
type Type struct {
	T types.Type

	Basic     *types.Basic
	Struct    *types.Struct
	Interface *types.Interface
	Signature *types.Signature
	Pointer   *types.Pointer
	Named     *types.Named
	TypeParam *types.TypeParam

	Elem *Type
}

func (t Type) Type() types.Type { return t.T }
func (t Type) String() string   { return t.T.String() }

func (t Type) IsBasic() bool     { return t.Basic != nil }
func (t Type) IsStruct() bool    { return t.Struct != nil }
func (t Type) IsInterface() bool { return t.Interface != nil }
func (t Type) IsSignature() bool { return t.Signature != nil }
func (t Type) IsPointer() bool   { return t.Pointer != nil }
func (t Type) IsNamed() bool     { return t.Named != nil }
func (t Type) IsTypeParam() bool { return t.TypeParam != nil }

func (t Type) Identical(u Type) bool { return types.Identical(t.T, u.T) }

// IsComparable reports whether values of the type can be compared with ==.
func (t Type) IsComparable() bool { return types.Comparable(t.T) }

// TypeOf inspects the given type and returns a new [Type].
func TypeOf(t types.Type) Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return Type{T: t, Basic: tt}
	case *types.Struct:
		return Type{T: t, Struct: tt}
	case *types.Interface:
		return Type{T: t, Interface: tt}
	case *types.Signature:
		return Type{T: t, Signature: tt}
	case *types.Pointer:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Pointer: tt, Elem: &elem}
	case *types.TypeParam:
		return Type{T: t, TypeParam: tt}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	case *types.Array, *types.Slice, *types.Map, *types.Chan, *types.Tuple:
		return Type{T: t}
	}
	panic(fmt.Errorf("unknown type: %T", t))
}

// Pkg returns the package where the type is defined. It returns nil if the
// type is not a named type.
func (t Type) Pkg() *types.Package {
	if !t.IsNamed() {
		return nil
	}
	return t.Named.Obj().Pkg()
}

// Pos returns the position where the type is defined. It returns token.NoPos
// if the type is not a named type.
func (t Type) Pos() token.Pos {
	if t.IsNamed() {
		return t.Named.Obj().Pos()
	}
	if t.IsPointer() {
		return t.Elem.Pos()
	}
	return token.NoPos
}

// FreeTypeParams collects the type parameters mentioned anywhere in typ.
func FreeTypeParams(typ types.Type) []*types.TypeParam {
	seen := make(map[*types.TypeParam]bool)
	var out []*types.TypeParam

	var walk func(types.Type)
	walk = func(t types.Type) {
		switch t := types.Unalias(t).(type) {
		case *types.TypeParam:
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		case *types.Pointer:
			walk(t.Elem())
		case *types.Slice:
			walk(t.Elem())
		case *types.Array:
			walk(t.Elem())
		case *types.Chan:
			walk(t.Elem())
		case *types.Map:
			walk(t.Key())
			walk(t.Elem())
		case *types.Signature:
			for i := 0; i < t.Params().Len(); i++ {
				walk(t.Params().At(i).Type())
			}
			for i := 0; i < t.Results().Len(); i++ {
				walk(t.Results().At(i).Type())
			}
		case *types.Named:
			if args := t.TypeArgs(); args != nil {
				for i := 0; i < args.Len(); i++ {
					walk(args.At(i))
				}
			}
		case *types.Struct:
			for i := 0; i < t.NumFields(); i++ {
				walk(t.Field(i).Type())
			}
		}
	}

	walk(typ)
	return out
}
