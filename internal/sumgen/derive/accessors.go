package derive

import (
	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Accessors emits a getter and a setter per field name of the field table.
// A field carried by every constructor gets a total getter; one carried by
// only some constructors gets a partial getter returning the flavour's
// optional shape. Setters are total either way: on a constructor without the
// field they return the value unchanged.
type Accessors struct{}

func (Accessors) Name() string { return "accessors" }

func (Accessors) SupportedFlavours() []flavour.Flavour {
	return flavour.Supporting(flavour.OptionalOf)
}

func (Accessors) Selector() string { return "" }

func (Accessors) Derive(adt *model.ADT, ctx *Context, utils *Utils) Result[*CodeSpec] {
	spec := NewCodeSpec()

	for _, fi := range adt.FieldTable() {
		spec.Add(Artifact{
			Name: getterName(ctx, fi.Name),
			Pos:  fi.Pos,
			Write: func(w *codefmt.Writer) {
				writeGetter(w, utils, adt, ctx, fi)
			},
		})
		spec.Add(Artifact{
			Name: setterName(ctx, fi.Name),
			Pos:  fi.Pos,
			Write: func(w *codefmt.Writer) {
				writeSetter(w, utils, adt, ctx, fi)
			},
		})
	}

	return OK(spec)
}

func writeGetter(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, fi model.FieldInfo) {
	name := getterName(ctx, fi.Name)
	total := fi.Total(adt)

	ns := branchNS(adt)
	sName := ns.Name("s")

	fieldType := w.Sprintf("%t", fi.Type)
	resultType := fieldType
	var recipe flavour.Recipe
	if !total {
		recipe, _ = flavour.Resolve(ctx.Flavour, flavour.OptionalOf)
		resultType = recipe.TypeExpr(w, fieldType)
	}

	if total {
		w.Printf("// %s returns the %s field, present on every constructor.\n", name, fi.Name)
	} else {
		w.Printf("// %s returns the %s field of constructors carrying it.\n", name, fi.Name)
	}
	w.Printf("func %s%s(%s %s) %s {\n", name, tpDecl(w, adt), sName, adtTypeExpr(u, adt), resultType)

	var cases []switchCase
	for _, i := range fi.Constructors {
		c := adt.Constructors[i]
		cases = append(cases, switchCase{
			typeExpr: implTypeExpr(u, adt, c),
			usesVar:  true,
			body: func(w *codefmt.Writer, varName string) {
				if total {
					w.Printf("\t\treturn %s.%s\n", varName, fi.Name)
				} else {
					w.Printf("\t\treturn %s\n", recipe.Wrap(w, varName+"."+fi.Name))
				}
			},
		})
	}
	if ctx.Lazy {
		cases = append(cases, switchCase{
			typeExpr: "*" + lazyTypeExpr(u, adt),
			usesVar:  true,
			body: func(w *codefmt.Writer, varName string) {
				w.Printf("\t\treturn %s(%s.cell.Force())\n", name, varName)
			},
		})
	}

	writeTypeSwitch(w, "x", sName, cases, func(w *codefmt.Writer) {
		if total {
			writePanicTrailer(w, adt.Name.Name(), sName)
		} else {
			w.Printf("\treturn %s\n", recipe.Empty(w, fieldType))
		}
	})
	w.Printf("}\n\n")
}

func writeSetter(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, fi model.FieldInfo) {
	name := setterName(ctx, fi.Name)

	ns := branchNS(adt)
	vName := ns.Name("v")
	sName := ns.Name("s")

	w.Printf("// %s replaces the %s field where the constructor carries it and\n", name, fi.Name)
	w.Printf("// returns the value unchanged otherwise. The input is never mutated.\n")
	w.Printf("func %s%s(%s %t, %s %s) %s {\n",
		name, tpDecl(w, adt), vName, fi.Type, sName, adtTypeExpr(u, adt), adtTypeExpr(u, adt))

	var cases []switchCase
	for _, i := range fi.Constructors {
		c := adt.Constructors[i]
		cases = append(cases, switchCase{
			typeExpr: implTypeExpr(u, adt, c),
			usesVar:  true,
			body: func(w *codefmt.Writer, varName string) {
				// The case variable is a copy, so assigning the field
				// leaves the input intact.
				w.Printf("\t\t%s.%s = %s\n", varName, fi.Name, vName)
				w.Printf("\t\treturn %s\n", varName)
			},
		})
	}
	if ctx.Lazy {
		cases = append(cases, switchCase{
			typeExpr: "*" + lazyTypeExpr(u, adt),
			usesVar:  true,
			body: func(w *codefmt.Writer, varName string) {
				w.Printf("\t\treturn %s(%s, %s.cell.Force())\n", name, vName, varName)
			},
		})
	}

	writeTypeSwitch(w, "x", sName, cases, func(w *codefmt.Writer) {
		w.Printf("\treturn %s\n", sName)
	})
	w.Printf("}\n\n")
}
