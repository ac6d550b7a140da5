package derive

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Naming shared by the built-in derivators. Cross-references between
// fragments (a lens referring to a getter, Equal referring to the force
// helper) work because every built-in derives names from these functions.

const (
	lazyPath  = "github.com/sumgen/sumgen/pkg/lazy"
	opticPath = "github.com/sumgen/sumgen/pkg/optic"
)

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// implTypeName is the unexported struct type backing one constructor,
// e.g. "shapeCircle". Visibility options never export it.
func implTypeName(adt *model.ADT, c model.Constructor) string {
	return lowerFirst(adt.Name.Name()) + upperFirst(c.Name)
}

// lazyTypeName is the unexported struct backing lazy construction,
// e.g. "shapeLazy".
func lazyTypeName(adt *model.ADT) string {
	return lowerFirst(adt.Name.Name()) + "Lazy"
}

// forceFuncName unwraps lazy values, e.g. "forceShape".
func forceFuncName(adt *model.ADT) string {
	return "force" + upperFirst(adt.Name.Name())
}

func factoryName(ctx *Context, c model.Constructor) string {
	return ctx.Name(upperFirst(c.Name))
}

func matchFuncName(ctx *Context, adt *model.ADT) string {
	return ctx.Name("Match" + upperFirst(adt.Name.Name()))
}

func lazyFactoryName(ctx *Context, adt *model.ADT) string {
	return ctx.Name("Lazy" + upperFirst(adt.Name.Name()))
}

func getterName(ctx *Context, field string) string {
	return ctx.Name("Get" + upperFirst(field))
}

func setterName(ctx *Context, field string) string {
	return ctx.Name("With" + upperFirst(field))
}

func lensName(ctx *Context, adt *model.ADT, field string) string {
	return ctx.Name(upperFirst(adt.Name.Name()) + upperFirst(field) + "Lens")
}

func prismName(ctx *Context, adt *model.ADT, c model.Constructor) string {
	return ctx.Name(upperFirst(adt.Name.Name()) + upperFirst(c.Name) + "Prism")
}

func previewFuncName(adt *model.ADT, c model.Constructor) string {
	return "preview" + upperFirst(adt.Name.Name()) + upperFirst(c.Name)
}

func reviewFuncName(adt *model.ADT, c model.Constructor) string {
	return "review" + upperFirst(adt.Name.Name()) + upperFirst(c.Name)
}

// adtTypeExpr is the sketch type at use sites, e.g. "Shape" or "Box[T]".
func adtTypeExpr(u *Utils, adt *model.ADT) string {
	return adt.Name.Name() + u.Fmt().TypeParamArgs(adt.TypeParams)
}

// implTypeExpr is a constructor struct at use sites, e.g. "shapeCircle" or
// "boxFull[T]".
func implTypeExpr(u *Utils, adt *model.ADT, c model.Constructor) string {
	return implTypeName(adt, c) + u.Fmt().TypeParamArgs(adt.TypeParams)
}

func lazyTypeExpr(u *Utils, adt *model.ADT) string {
	return lazyTypeName(adt) + u.Fmt().TypeParamArgs(adt.TypeParams)
}

// tpDecl is the declaration-site type parameter list, e.g. "[T any]" or "".
// Constraints render through the writer so their packages register as
// imports of the generated file.
func tpDecl(w *codefmt.Writer, adt *model.ADT) string {
	if len(adt.TypeParams) == 0 {
		return ""
	}
	parts := make([]string, len(adt.TypeParams))
	for i, tp := range adt.TypeParams {
		parts[i] = tp.Obj().Name() + " " + w.Sprintf("%t", tp.Constraint())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// tpArgs is the use-site type argument list, e.g. "[T]" or "".
func tpArgs(u *Utils, adt *model.ADT) string {
	return u.Fmt().TypeParamArgs(adt.TypeParams)
}

// branchNS seeds a namespace with the names a matcher-shaped function cannot
// shadow: the sketch's type parameters.
func branchNS(adt *model.ADT) codefmt.NS {
	ns := make(codefmt.NS)
	for _, tp := range adt.TypeParams {
		ns.Reserve(tp.Obj().Name())
	}
	return ns
}

// branchParamNames returns one unique parameter name per constructor, in
// constructor order, drawn from ns.
func branchParamNames(adt *model.ADT, ns codefmt.NS) []string {
	names := make([]string, len(adt.Constructors))
	for i, c := range adt.Constructors {
		names[i] = ns.Name(lowerFirst(c.Name))
	}
	return names
}

// switchCase is one clause of an emitted type switch.
type switchCase struct {
	typeExpr string
	usesVar  bool
	// body writes the clause statements; varName is the bound variable.
	body func(w *codefmt.Writer, varName string)
}

// writeTypeSwitch emits a type switch over scrut. The guard variable is bound
// only when some clause uses it, since a binding unused by every clause does
// not compile.
func writeTypeSwitch(w *codefmt.Writer, varName, scrut string, cases []switchCase, defaultBody func(w *codefmt.Writer)) {
	bind := false
	for _, c := range cases {
		bind = bind || c.usesVar
	}

	if bind {
		w.Printf("\tswitch %s := %s.(type) {\n", varName, scrut)
	} else {
		w.Printf("\tswitch %s.(type) {\n", scrut)
	}
	for _, c := range cases {
		w.Printf("\tcase %s:\n", c.typeExpr)
		c.body(w, varName)
	}
	w.Printf("\t}\n")
	if defaultBody != nil {
		defaultBody(w)
	}
}

// writePanicTrailer writes the unreachable trailer of an exhaustive dispatch:
// a value that is neither a generated constructor nor a lazy wrapper cannot
// originate from generated factories.
func writePanicTrailer(w *codefmt.Writer, adtName, scrut string) {
	fmtName := w.Import("fmt", "fmt")
	w.Printf("\tpanic(%s.Sprintf(\"sumgen: %%T does not belong to %s\", %s))\n", fmtName, adtName, scrut)
}

// fieldList renders "name type, name type" parameter lists.
func fieldList(w *codefmt.Writer, fields []model.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + " " + w.Sprintf("%t", f.Type)
	}
	return strings.Join(parts, ", ")
}
