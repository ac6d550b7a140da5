package derive

import (
	"strings"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Matcher emits the exhaustive dispatch: the sketch's own Match method on
// every constructor struct, a generic top-level matcher function, and, when
// requested, the memoized lazy factory whose first match forces the producer
// exactly once.
type Matcher struct{}

func (Matcher) Name() string { return "matcher" }

func (Matcher) SupportedFlavours() []flavour.Flavour {
	return flavour.Supporting(flavour.Function1, flavour.Function2)
}

func (Matcher) Selector() string { return "" }

func (Matcher) Derive(adt *model.ADT, ctx *Context, utils *Utils) Result[*CodeSpec] {
	spec := NewCodeSpec()

	for i, c := range adt.Constructors {
		spec.Add(Artifact{
			Name: implTypeName(adt, c) + "." + adt.Matcher.Name(),
			Pos:  c.Pos,
			Write: func(w *codefmt.Writer) {
				writeMatchMethod(w, utils, adt, i)
			},
		})
	}

	spec.Add(Artifact{
		Name: matchFuncName(ctx, adt),
		Pos:  adt.Pos(),
		Write: func(w *codefmt.Writer) {
			writeMatchFunc(w, utils, adt, ctx)
		},
	})

	if ctx.Lazy {
		spec.Add(Artifact{
			Name: lazyTypeName(adt),
			Pos:  adt.Pos(),
			Write: func(w *codefmt.Writer) {
				writeLazyStruct(w, utils, adt)
			},
		})
		spec.Add(Artifact{
			Name: lazyFactoryName(ctx, adt),
			Pos:  adt.Pos(),
			Write: func(w *codefmt.Writer) {
				writeLazyFactory(w, utils, adt, ctx)
			},
		})
		spec.Add(Artifact{
			Name: lazyTypeName(adt) + "." + adt.Matcher.Name(),
			Pos:  adt.Pos(),
			Write: func(w *codefmt.Writer) {
				writeLazyMatchMethod(w, utils, adt)
			},
		})
	}

	return OK(spec)
}

// matcherParams renders the sketch Match method's parameter list as declared:
// either one function per constructor or the single visitor parameter.
// It returns the parameter list, the per-branch invocation heads, and the
// parameter names for forwarding calls.
func matcherParams(w *codefmt.Writer, u *Utils, adt *model.ADT) (params string, heads, names []string) {
	ns := branchNS(adt)

	if adt.Visitor != nil {
		v := ns.Name("v")
		heads = make([]string, len(adt.Constructors))
		for i, c := range adt.Constructors {
			heads[i] = v + "." + c.Name
		}
		params = v + " " + w.Sprintf("%t", adt.Matcher.Signature().Params().At(0).Type())
		return params, heads, []string{v}
	}

	branch := branchParamNames(adt, ns)
	parts := make([]string, len(adt.Constructors))
	for i, c := range adt.Constructors {
		parts[i] = branch[i] + " func(" + fieldList(w, c.Fields) + ") " + w.Sprintf("%t", adt.Result)
	}
	return strings.Join(parts, ", "), branch, branch
}

// branchCall renders the branch invocation routing one constructor's fields,
// e.g. "circle(x.radius)".
func branchCall(head string, varName string, c model.Constructor) string {
	args := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		args[i] = varName + "." + f.Name
	}
	return head + "(" + strings.Join(args, ", ") + ")"
}

func writeMatchMethod(w *codefmt.Writer, u *Utils, adt *model.ADT, i int) {
	c := adt.Constructors[i]
	params, heads, _ := matcherParams(w, u, adt)

	w.Printf("func (x %s) %s(%s) %t {\n", implTypeExpr(u, adt, c), adt.Matcher.Name(), params, adt.Result)
	w.Printf("\treturn %s\n}\n\n", branchCall(heads[i], "x", c))
}

// branchFuncType renders one branch's function type for the generic matcher,
// resolving 1- and 2-ary shapes through the flavour registry.
func branchFuncType(w *codefmt.Writer, f flavour.Flavour, fields []model.Field, rName string) string {
	args := make([]string, 0, len(fields)+1)
	for _, fd := range fields {
		args = append(args, fd.Name+" "+w.Sprintf("%t", fd.Type))
	}
	args = append(args, rName)

	var cap flavour.Capability
	switch len(fields) {
	case 1:
		cap = flavour.Function1
	case 2:
		cap = flavour.Function2
	default:
		return "func(" + strings.Join(args[:len(fields)], ", ") + ") " + rName
	}

	recipe, ok := flavour.Resolve(f, cap)
	if !ok {
		// Unreachable: SupportedFlavours filters first.
		return "func(" + strings.Join(args[:len(fields)], ", ") + ") " + rName
	}
	return recipe.TypeExpr(w, args...)
}

func writeMatchFunc(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context) {
	ns := branchNS(adt)
	branch := branchParamNames(adt, ns)
	rName := ns.Name("R")
	sName := ns.Name("s")
	name := matchFuncName(ctx, adt)

	var tps []string
	for _, tp := range adt.TypeParams {
		tps = append(tps, tp.Obj().Name()+" "+w.Sprintf("%t", tp.Constraint()))
	}
	tps = append(tps, rName+" any")

	w.Printf("// %s dispatches on the constructor of %s: exactly one branch runs.\n", name, sName)
	w.Printf("func %s[%s](%s %s", name, strings.Join(tps, ", "), sName, adtTypeExpr(u, adt))
	for i, c := range adt.Constructors {
		w.Printf(", %s %s", branch[i], branchFuncType(w, ctx.Flavour, c.Fields, rName))
	}
	w.Printf(") %s {\n", rName)

	var cases []switchCase
	for i, c := range adt.Constructors {
		cases = append(cases, switchCase{
			typeExpr: implTypeExpr(u, adt, c),
			usesVar:  len(c.Fields) > 0,
			body: func(w *codefmt.Writer, varName string) {
				w.Printf("\t\treturn %s\n", branchCall(branch[i], varName, c))
			},
		})
	}
	if ctx.Lazy {
		cases = append(cases, switchCase{
			typeExpr: "*" + lazyTypeExpr(u, adt),
			usesVar:  true,
			body: func(w *codefmt.Writer, varName string) {
				w.Printf("\t\treturn %s(%s.cell.Force(), %s)\n", name, varName, strings.Join(branch, ", "))
			},
		})
	}

	writeTypeSwitch(w, "x", sName, cases, func(w *codefmt.Writer) {
		writePanicTrailer(w, adt.Name.Name(), sName)
	})
	w.Printf("}\n\n")
}

func writeLazyStruct(w *codefmt.Writer, u *Utils, adt *model.ADT) {
	lazyPkg := w.Import(lazyPath, "lazy")
	w.Printf("type %s%s struct {\n", lazyTypeName(adt), tpDecl(w, adt))
	w.Printf("\tcell %s.Cell[%s]\n}\n\n", lazyPkg, adtTypeExpr(u, adt))
}

func writeLazyFactory(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context) {
	lazyPkg := w.Import(lazyPath, "lazy")
	name := lazyFactoryName(ctx, adt)
	typ := adtTypeExpr(u, adt)

	w.Printf("// %s constructs a %s that computes itself on first match.\n", name, adt.Name.Name())
	w.Printf("// produce runs at most once; concurrent matchers observe one cached value.\n")
	w.Printf("func %s%s(produce func() %s) %s {\n", name, tpDecl(w, adt), typ, typ)
	w.Printf("\treturn &%s{cell: %s.NewCell(produce)}\n}\n\n", lazyTypeExpr(u, adt), lazyPkg)
}

func writeLazyMatchMethod(w *codefmt.Writer, u *Utils, adt *model.ADT) {
	params, _, names := matcherParams(w, u, adt)

	w.Printf("func (x *%s) %s(%s) %t {\n", lazyTypeExpr(u, adt), adt.Matcher.Name(), params, adt.Result)
	w.Printf("\treturn x.cell.Force().%s(%s)\n}\n\n", adt.Matcher.Name(), strings.Join(names, ", "))
}
