// Package model holds the canonical representation of an extracted sum type.
// A value is built once by the extractor and read-only afterwards: every
// derivator in a run sees the same immutable model.
package model

import (
	"go/token"
	"go/types"
)

// ADT is a sum type extracted from a sketch declaration. Constructor names
// are unique and the constructor set is closed: the matcher is exhaustive
// over exactly this set.
type ADT struct {
	// Name is the sketch interface's type name.
	Name *types.TypeName

	// Iface is the sketch interface itself.
	Iface *types.Interface

	// TypeParams are the sketch's type parameters in declared order.
	TypeParams []*types.TypeParam

	// Matcher is the abstract match operation.
	Matcher *types.Func

	// Visitor is the visitor interface for visitor-form sketches, nil for
	// func-form sketches.
	Visitor *types.Named

	// Result is the matcher's declared result type. Every branch agrees on
	// it.
	Result types.Type

	// Constructors in declared order.
	Constructors []Constructor

	// Structural operations marked abstract on the sketch.
	WantEqual  bool
	WantHash   bool
	WantString bool
}

// Pos returns the position of the sketch declaration.
func (a *ADT) Pos() token.Pos { return a.Name.Pos() }

// Constructor returns the constructor with the given name.
func (a *ADT) Constructor(name string) (Constructor, bool) {
	for _, c := range a.Constructors {
		if c.Name == name {
			return c, true
		}
	}
	return Constructor{}, false
}

// ConstructorNames returns the constructor names in declared order.
func (a *ADT) ConstructorNames() []string {
	names := make([]string, len(a.Constructors))
	for i, c := range a.Constructors {
		names[i] = c.Name
	}
	return names
}

// Constructor is one named case of the sum type. Field order is significant:
// it matches the order in the matcher branch and in every generated factory
// and accessor.
type Constructor struct {
	Name   string
	Fields []Field

	// Pos points at the matcher branch that declared the constructor.
	Pos token.Pos
}

// Field is one typed field of a constructor.
type Field struct {
	Name string
	Type types.Type

	// Pos points at the parameter that declared the field.
	Pos token.Pos
}

// FieldInfo describes one field name across all constructors of an ADT.
type FieldInfo struct {
	Name string
	Type types.Type

	// Constructors holds the indices (into ADT.Constructors) of the
	// constructors carrying the field.
	Constructors []int

	// Pos points at the field's first declaration.
	Pos token.Pos
}

// Total reports whether the field is present in every constructor of a.
func (fi FieldInfo) Total(a *ADT) bool {
	return len(fi.Constructors) == len(a.Constructors)
}

// Has reports whether the constructor at index i carries the field.
func (fi FieldInfo) Has(i int) bool {
	for _, c := range fi.Constructors {
		if c == i {
			return true
		}
	}
	return false
}

// FieldTable returns one entry per distinct field name, ordered by first
// appearance. The extractor guarantees that a field name shared by several
// constructors has one type, so the table's Type is authoritative.
func (a *ADT) FieldTable() []FieldInfo {
	var table []FieldInfo
	index := make(map[string]int)

	for ci, c := range a.Constructors {
		for _, f := range c.Fields {
			if i, ok := index[f.Name]; ok {
				table[i].Constructors = append(table[i].Constructors, ci)
				continue
			}
			index[f.Name] = len(table)
			table = append(table, FieldInfo{
				Name:         f.Name,
				Type:         f.Type,
				Constructors: []int{ci},
				Pos:          f.Pos,
			})
		}
	}
	return table
}
