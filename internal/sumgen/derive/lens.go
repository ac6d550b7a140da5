package derive

import (
	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Lenses emits one lens per total field, pairing the field's getter and
// setter. Partial fields get no lens; their focus can be absent, which is the
// prism's territory. Generic sketches get a lens-returning function instead
// of a package variable, since Go has no generic variables.
type Lenses struct{}

func (Lenses) Name() string { return "lenses" }

func (Lenses) SupportedFlavours() []flavour.Flavour { return flavour.All }

func (Lenses) Selector() string { return "optics" }

func (Lenses) Derive(adt *model.ADT, ctx *Context, utils *Utils) Result[*CodeSpec] {
	spec := NewCodeSpec()

	for _, fi := range adt.FieldTable() {
		if !fi.Total(adt) {
			continue
		}
		spec.Add(Artifact{
			Name: lensName(ctx, adt, fi.Name),
			Pos:  fi.Pos,
			Write: func(w *codefmt.Writer) {
				writeLens(w, utils, adt, ctx, fi)
			},
		})
	}

	return OK(spec)
}

func writeLens(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, fi model.FieldInfo) {
	optic := w.Import(opticPath, "optic")
	name := lensName(ctx, adt, fi.Name)
	lensType := w.Sprintf("%s.Lens[%s, %t]", optic, adtTypeExpr(u, adt), fi.Type)
	getter := getterName(ctx, fi.Name)
	setter := setterName(ctx, fi.Name)

	if len(adt.TypeParams) == 0 {
		w.Printf("// %s focuses on the %s field of any %s value.\n", name, fi.Name, adt.Name.Name())
		w.Printf("var %s = %s{\n\tGet: %s,\n\tSet: %s,\n}\n\n", name, lensType, getter, setter)
		return
	}

	args := tpArgs(u, adt)
	w.Printf("// %s returns the lens focusing on the %s field of %s.\n", name, fi.Name, adtTypeExpr(u, adt))
	w.Printf("func %s%s() %s {\n", name, tpDecl(w, adt), lensType)
	w.Printf("\treturn %s{\n\t\tGet: %s%s,\n\t\tSet: %s%s,\n\t}\n}\n\n", lensType, getter, args, setter, args)
}
