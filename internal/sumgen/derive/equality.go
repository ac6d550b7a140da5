package derive

import (
	"go/types"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Structural emits the Equal, Hash and String methods the sketch declares
// abstract. Equality is same constructor plus pairwise == on fields, hashing
// is FNV-1a over the constructor tag and fields, and String renders the tag
// with fields in declared order. Hash and String stay consistent with Equal:
// equal values hash alike and print alike.
type Structural struct{}

func (Structural) Name() string { return "structural" }

func (Structural) SupportedFlavours() []flavour.Flavour { return flavour.All }

func (Structural) Selector() string { return "" }

func (Structural) Derive(adt *model.ADT, ctx *Context, utils *Utils) Result[*CodeSpec] {
	spec := NewCodeSpec()

	if adt.WantEqual {
		var errs []error
		for _, c := range adt.Constructors {
			for _, f := range c.Fields {
				if !utils.Comparable(f.Type) {
					errs = append(errs, utils.Errorf(codefmt.Pos(f.Pos),
						"field %s of constructor %s has non-comparable type %s, so Equal cannot be derived",
						f.Name, c.Name, utils.Fmt().Type(f.Type)))
				}
			}
		}
		if len(errs) != 0 {
			return Fail[*CodeSpec](errs...)
		}
	}

	for _, c := range adt.Constructors {
		if adt.WantEqual {
			spec.Add(Artifact{
				Name: implTypeName(adt, c) + ".Equal",
				Pos:  c.Pos,
				Write: func(w *codefmt.Writer) {
					writeEqualMethod(w, utils, adt, ctx, c)
				},
			})
		}
		if adt.WantHash {
			spec.Add(Artifact{
				Name: implTypeName(adt, c) + ".Hash",
				Pos:  c.Pos,
				Write: func(w *codefmt.Writer) {
					writeHashMethod(w, utils, adt, c)
				},
			})
		}
		if adt.WantString {
			spec.Add(Artifact{
				Name: implTypeName(adt, c) + ".String",
				Pos:  c.Pos,
				Write: func(w *codefmt.Writer) {
					writeStringMethod(w, utils, adt, c)
				},
			})
		}
	}

	if ctx.Lazy {
		if adt.WantEqual {
			// Equal is the only consumer of the force helper, so it is
			// emitted here rather than with the lazy factory.
			spec.Add(Artifact{
				Name: forceFuncName(adt),
				Pos:  adt.Pos(),
				Write: func(w *codefmt.Writer) {
					writeForceFunc(w, utils, adt)
				},
			})
			spec.Add(Artifact{
				Name: lazyTypeName(adt) + ".Equal",
				Pos:  adt.Pos(),
				Write: func(w *codefmt.Writer) {
					writeLazyDelegate(w, utils, adt, "Equal",
						"other "+adtTypeExpr(utils, adt), "bool", "other")
				},
			})
		}
		if adt.WantHash {
			spec.Add(Artifact{
				Name: lazyTypeName(adt) + ".Hash",
				Pos:  adt.Pos(),
				Write: func(w *codefmt.Writer) {
					writeLazyDelegate(w, utils, adt, "Hash", "", "uint64", "")
				},
			})
		}
		if adt.WantString {
			spec.Add(Artifact{
				Name: lazyTypeName(adt) + ".String",
				Pos:  adt.Pos(),
				Write: func(w *codefmt.Writer) {
					writeLazyDelegate(w, utils, adt, "String", "", "string", "")
				},
			})
		}
	}

	return OK(spec)
}

func writeEqualMethod(w *codefmt.Writer, u *Utils, adt *model.ADT, ctx *Context, c model.Constructor) {
	impl := implTypeExpr(u, adt, c)

	// A lazy wrapper must compare equal to the value it produces, so the
	// comparand is forced down to a constructor struct first.
	other := "other"
	if ctx.Lazy {
		other = forceFuncName(adt) + "(other)"
	}

	w.Printf("func (x %s) Equal(other %s) bool {\n", impl, adtTypeExpr(u, adt))
	if len(c.Fields) == 0 {
		w.Printf("\t_, ok := %s.(%s)\n\treturn ok\n}\n\n", other, impl)
		return
	}
	w.Printf("\to, ok := %s.(%s)\n", other, impl)
	w.Printf("\treturn ok")
	for _, f := range c.Fields {
		w.Printf(" && x.%s == o.%s", f.Name, f.Name)
	}
	w.Printf("\n}\n\n")
}

func writeHashMethod(w *codefmt.Writer, u *Utils, adt *model.ADT, c model.Constructor) {
	fnvPkg := w.Import("hash/fnv", "fnv")
	ioPkg := w.Import("io", "io")

	w.Printf("func (x %s) Hash() uint64 {\n", implTypeExpr(u, adt, c))
	w.Printf("\th := %s.New64a()\n", fnvPkg)
	w.Printf("\t%s.WriteString(h, %q)\n", ioPkg, upperFirst(c.Name))
	if len(c.Fields) > 0 {
		fmtPkg := w.Import("fmt", "fmt")
		for _, f := range c.Fields {
			writeHashField(w, fmtPkg, f)
		}
	}
	w.Printf("\treturn h.Sum64()\n}\n\n")
}

// writeHashField hashes one field into h. Floating-point fields hash their
// IEEE bit pattern with negative zero folded to positive zero, keeping Hash
// consistent with Equal, where 0.0 == -0.0 holds but "%v" renders the two
// apart.
func writeHashField(w *codefmt.Writer, fmtPkg string, f model.Field) {
	if b, ok := f.Type.Underlying().(*types.Basic); ok {
		switch b.Kind() {
		case types.Float32:
			mathPkg := w.Import("math", "math")
			w.Printf("\t%s.Fprintf(h, \"/%%v\", %s.Float32bits(float32(x.%s)+0))\n", fmtPkg, mathPkg, f.Name)
			return
		case types.Float64:
			mathPkg := w.Import("math", "math")
			w.Printf("\t%s.Fprintf(h, \"/%%v\", %s.Float64bits(float64(x.%s)+0))\n", fmtPkg, mathPkg, f.Name)
			return
		case types.Complex64, types.Complex128:
			mathPkg := w.Import("math", "math")
			w.Printf("\t%s.Fprintf(h, \"/%%v/%%v\", %s.Float64bits(real(complex128(x.%s))+0), %s.Float64bits(imag(complex128(x.%s))+0))\n",
				fmtPkg, mathPkg, f.Name, mathPkg, f.Name)
			return
		}
	}
	w.Printf("\t%s.Fprintf(h, \"/%%v\", x.%s)\n", fmtPkg, f.Name)
}

func writeStringMethod(w *codefmt.Writer, u *Utils, adt *model.ADT, c model.Constructor) {
	w.Printf("func (x %s) String() string {\n", implTypeExpr(u, adt, c))
	if len(c.Fields) == 0 {
		w.Printf("\treturn %q\n}\n\n", upperFirst(c.Name)+"()")
		return
	}

	fmtPkg := w.Import("fmt", "fmt")
	format := upperFirst(c.Name) + "("
	args := ""
	for i, f := range c.Fields {
		if i != 0 {
			format += ", "
			args += ","
		}
		format += "%v"
		args += " " + stringArgExpr(f)
	}
	format += ")"
	w.Printf("\treturn %s.Sprintf(%q,%s)\n}\n\n", fmtPkg, format, args)
}

// stringArgExpr returns the expression String renders for one field. Negative
// zero prints as "-0", so floating-point fields fold it before rendering,
// keeping String consistent with Equal.
func stringArgExpr(f model.Field) string {
	if b, ok := f.Type.Underlying().(*types.Basic); ok {
		switch b.Kind() {
		case types.Float32, types.Float64, types.Complex64, types.Complex128:
			return "x." + f.Name + "+0"
		}
	}
	return "x." + f.Name
}

func writeLazyDelegate(w *codefmt.Writer, u *Utils, adt *model.ADT, method, params, result, args string) {
	w.Printf("func (x *%s) %s(%s) %s {\n", lazyTypeExpr(u, adt), method, params, result)
	w.Printf("\treturn x.cell.Force().%s(%s)\n}\n\n", method, args)
}

func writeForceFunc(w *codefmt.Writer, u *Utils, adt *model.ADT) {
	name := forceFuncName(adt)
	typ := adtTypeExpr(u, adt)

	w.Printf("// %s unwraps lazy wrappers until a constructor value surfaces.\n", name)
	w.Printf("func %s%s(s %s) %s {\n", name, tpDecl(w, adt), typ, typ)
	w.Printf("\tif l, ok := s.(*%s); ok {\n", lazyTypeExpr(u, adt))
	w.Printf("\t\treturn %s(l.cell.Force())\n\t}\n", name)
	w.Printf("\treturn s\n}\n\n")
}
