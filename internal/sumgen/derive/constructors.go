package derive

import (
	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Constructors emits, per constructor, the backing struct type and a static
// factory taking exactly the constructor's fields in declared order. Matching
// a factory-built value routes to that constructor's branch with the same
// field values, unchanged.
type Constructors struct{}

func (Constructors) Name() string { return "constructors" }

func (Constructors) SupportedFlavours() []flavour.Flavour { return flavour.All }

func (Constructors) Selector() string { return "" }

func (Constructors) Derive(adt *model.ADT, ctx *Context, utils *Utils) Result[*CodeSpec] {
	spec := NewCodeSpec()

	for _, c := range adt.Constructors {
		spec.Add(Artifact{
			Name: implTypeName(adt, c),
			Pos:  c.Pos,
			Write: func(w *codefmt.Writer) {
				writeImplStruct(w, utils, adt, c)
			},
		})

		spec.Add(Artifact{
			Name: factoryName(ctx, c),
			Pos:  c.Pos,
			Write: func(w *codefmt.Writer) {
				writeFactory(w, utils, adt, ctx, c)
			},
		})
	}

	return OK(spec)
}

func writeImplStruct(w *codefmt.Writer, u *Utils, adt *model.ADT, c model.Constructor) {
	w.Printf("type %s%s struct {\n", implTypeName(adt, c), tpDecl(w, adt))
	for _, f := range c.Fields {
		w.Printf("\t%s %t\n", f.Name, f.Type)
	}
	w.Printf("}\n\n")
}

func writeFactory(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, c model.Constructor) {
	name := factoryName(ctx, c)
	w.Printf("// %s constructs a %s with the %s constructor.\n", name, adt.Name.Name(), c.Name)
	w.Printf("func %s%s(%s) %s {\n", name, tpDecl(w, adt), fieldList(w, c.Fields), adtTypeExpr(u, adt))
	w.Printf("\treturn %s{", implTypeExpr(u, adt, c))
	for i, f := range c.Fields {
		if i != 0 {
			w.Printf(", ")
		}
		w.Printf("%s: %s", f.Name, f.Name)
	}
	w.Printf("}\n}\n\n")
}
