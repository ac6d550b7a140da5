package derive

import (
	"strings"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Prisms emits one prism per constructor: preview extracts the constructor's
// payload in the flavour's optional representation, review rebuilds a sketch
// value through the factory. A field-less constructor's payload is the unit
// value. Preview and review are named functions rather than literals so the
// prism variable's initializer cannot form an initialization cycle.
type Prisms struct{}

func (Prisms) Name() string { return "prisms" }

func (Prisms) SupportedFlavours() []flavour.Flavour {
	return flavour.Supporting(flavour.OptionalOf, flavour.UnitValue)
}

func (Prisms) Selector() string { return "optics" }

func (Prisms) Derive(adt *model.ADT, ctx *Context, utils *Utils) Result[*CodeSpec] {
	spec := NewCodeSpec()

	for _, c := range adt.Constructors {
		spec.Add(Artifact{
			Name: previewFuncName(adt, c),
			Pos:  c.Pos,
			Write: func(w *codefmt.Writer) {
				writePreviewFunc(w, utils, adt, ctx, c)
			},
		})
		spec.Add(Artifact{
			Name: reviewFuncName(adt, c),
			Pos:  c.Pos,
			Write: func(w *codefmt.Writer) {
				writeReviewFunc(w, utils, adt, ctx, c)
			},
		})
		spec.Add(Artifact{
			Name: prismName(ctx, adt, c),
			Pos:  c.Pos,
			Write: func(w *codefmt.Writer) {
				writePrism(w, utils, adt, ctx, c)
			},
		})
	}

	return OK(spec)
}

// prismPayload is the prism's focus type expression: the constructor struct,
// or the unit type for field-less constructors.
func prismPayload(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, c model.Constructor) string {
	if len(c.Fields) == 0 {
		unit, _ := flavour.Resolve(ctx.Flavour, flavour.UnitValue)
		return unit.TypeExpr(w)
	}
	return implTypeExpr(u, adt, c)
}

func writePreviewFunc(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, c model.Constructor) {
	opt, _ := flavour.Resolve(ctx.Flavour, flavour.OptionalOf)
	payload := prismPayload(w, u, adt, ctx, c)

	ns := branchNS(adt)
	sName := ns.Name("s")
	name := previewFuncName(adt, c)

	w.Printf("func %s%s(%s %s) %s {\n",
		name, tpDecl(w, adt), sName, adtTypeExpr(u, adt), opt.TypeExpr(w, payload))

	var cases []switchCase
	cases = append(cases, switchCase{
		typeExpr: implTypeExpr(u, adt, c),
		usesVar:  len(c.Fields) > 0,
		body: func(w *codefmt.Writer, varName string) {
			if len(c.Fields) == 0 {
				unit, _ := flavour.Resolve(ctx.Flavour, flavour.UnitValue)
				w.Printf("\t\treturn %s\n", opt.Wrap(w, unit.Wrap(w)))
			} else {
				w.Printf("\t\treturn %s\n", opt.Wrap(w, varName))
			}
		},
	})
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
		w.Printf("\treturn %s\n", opt.Empty(w, payload))
	})
	w.Printf("}\n\n")
}

func writeReviewFunc(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, c model.Constructor) {
	payload := prismPayload(w, u, adt, ctx, c)
	name := reviewFuncName(adt, c)

	if len(c.Fields) == 0 {
		w.Printf("func %s%s(%s) %s {\n", name, tpDecl(w, adt), payload, adtTypeExpr(u, adt))
		w.Printf("\treturn %s%s()\n}\n\n", factoryName(ctx, c), tpArgs(u, adt))
		return
	}

	ns := branchNS(adt)
	aName := ns.Name("a")

	args := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		args[i] = aName + "." + f.Name
	}

	w.Printf("func %s%s(%s %s) %s {\n", name, tpDecl(w, adt), aName, payload, adtTypeExpr(u, adt))
	w.Printf("\treturn %s%s(%s)\n}\n\n", factoryName(ctx, c), tpArgs(u, adt), strings.Join(args, ", "))
}

func writePrism(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, c model.Constructor) {
	optic := w.Import(opticPath, "optic")
	opt, _ := flavour.Resolve(ctx.Flavour, flavour.OptionalOf)
	payload := prismPayload(w, u, adt, ctx, c)

	name := prismName(ctx, adt, c)
	prismType := w.Sprintf("%s.Prism[%s, %s, %s]",
		optic, adtTypeExpr(u, adt), payload, opt.TypeExpr(w, payload))

	if len(adt.TypeParams) == 0 {
		w.Printf("// %s focuses on values built by the %s constructor.\n", name, c.Name)
		w.Printf("var %s = %s{\n\tPreview: %s,\n\tReview: %s,\n}\n\n",
			name, prismType, previewFuncName(adt, c), reviewFuncName(adt, c))
		return
	}

	args := tpArgs(u, adt)
	w.Printf("// %s returns the prism focusing on the %s constructor of %s.\n",
		name, c.Name, adtTypeExpr(u, adt))
	w.Printf("func %s%s() %s {\n", name, tpDecl(w, adt), prismType)
	w.Printf("\treturn %s{\n\t\tPreview: %s%s,\n\t\tReview: %s%s,\n\t}\n}\n\n",
		prismType, previewFuncName(adt, c), args, reviewFuncName(adt, c), args)
}
