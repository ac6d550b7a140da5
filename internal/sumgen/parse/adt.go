package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/lcs"
	"github.com/sumgen/sumgen/internal/sumgen/model"
	"github.com/sumgen/sumgen/internal/typeinfo"
)

// Decl is one parsed ADT directive: the extracted sum type plus the options
// that configure its derivation.
type Decl struct {
	ADT    *model.ADT
	Config Config

	// Pos is the position of the directive's variable identifier.
	Pos token.Pos
}

// normalizeCtor normalizes a constructor name for matching: "circle" in a
// func-form sketch and "Circle" in a Fields option name the same constructor.
func normalizeCtor(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// ParseADTs finds and parses all sumgen.ADT directives in the tagged files.
// Every malformed directive is reported; well-formed siblings still parse.
func (p *Parser) ParseADTs() ([]*Decl, error) {
	var errs error
	var decls []*Decl

	for _, file := range p.SumgenGoFiles() {
		for id, call := range p.FindADTs(file) {
			decl, err := p.ParseADT(id, call)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			decls = append(decls, decl)
		}
	}

	return decls, errs
}

// FindADTs collects and iterates package-level [sumgen.ADT] calls.
func (p *Parser) FindADTs(file *ast.File) iter.Seq2[*ast.Ident, *ast.CallExpr] {
	return func(yield func(*ast.Ident, *ast.CallExpr) bool) {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gen.Specs {
				val, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}

				for i, id := range val.Names {
					if len(val.Values) <= i {
						break
					}

					call, ok := ast.Unparen(val.Values[i]).(*ast.CallExpr)
					if !ok || !p.IsDirective(call, "ADT") {
						continue
					}

					if !yield(id, call) {
						return
					}
				}
			}
		}
	}
}

// ParseADT parses one sumgen.ADT directive into a declaration.
func (p *Parser) ParseADT(id *ast.Ident, call *ast.CallExpr) (*Decl, error) {
	var errs error

	cfg := DefaultConfig()
	if err := p.ParseConfig(&cfg, call.Args); err != nil {
		errs = errors.Join(errs, err)
	}

	named, err := p.sketchArg(call)
	if err != nil {
		return nil, errors.Join(errs, err)
	}

	adt, err := p.extractADT(named, cfg)
	if err != nil {
		errs = errors.Join(errs, err)
	}
	if errs != nil {
		return nil, errs
	}

	return &Decl{ADT: adt, Config: cfg, Pos: id.Pos()}, nil
}

// sketchArg resolves the explicit type argument of an ADT call.
func (p *Parser) sketchArg(call *ast.CallExpr) (*types.Named, error) {
	fun := ast.Unparen(call.Fun)
	switch f := fun.(type) {
	case *ast.IndexExpr:
		fun = f.X
	case *ast.IndexListExpr:
		fun = f.X
	default:
		return nil, codefmt.Errorf(p, call, "ADT requires an explicit type argument")
	}

	id, ok := tailIdent(fun)
	if !ok {
		return nil, codefmt.Errorf(p, call, "ADT requires an explicit type argument")
	}

	inst, ok := p.Pkg().TypesInfo.Instances[id]
	if !ok || inst.TypeArgs.Len() != 1 {
		return nil, codefmt.Errorf(p, call, "ADT requires an explicit type argument")
	}

	targ := typeinfo.TypeOf(inst.TypeArgs.At(0))
	if !targ.IsNamed() || !targ.IsInterface() {
		return nil, codefmt.Errorf(p, call, "%t is not an interface sketch", inst.TypeArgs.At(0))
	}
	return targ.Named, nil
}

// extractADT builds the sum-type model from the sketch interface.
func (p *Parser) extractADT(named *types.Named, cfg Config) (*model.ADT, error) {
	var errs error

	obj := named.Obj()
	iface := named.Underlying().(*types.Interface)
	adt := &model.ADT{Name: obj, Iface: iface}

	if tps := named.TypeParams(); tps != nil {
		for i := 0; i < tps.Len(); i++ {
			adt.TypeParams = append(adt.TypeParams, tps.At(i))
		}
	}

	if iface.NumEmbeddeds() != 0 {
		return nil, codefmt.Errorf(p, obj, "sketch %t cannot embed other interfaces", named)
	}

	var matchers []*types.Func
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		m := iface.ExplicitMethod(i)
		switch m.Name() {
		case "Equal":
			if !isEqualMarker(m, named) {
				err := codefmt.Errorf(p, m, "Equal must have signature Equal(%t) bool", named)
				errs = errors.Join(errs, err)
				continue
			}
			adt.WantEqual = true
		case "Hash":
			if !isHashMarker(m) {
				err := codefmt.Errorf(p, m, "Hash must have signature Hash() uint64")
				errs = errors.Join(errs, err)
				continue
			}
			adt.WantHash = true
		case "String":
			if !isStringMarker(m) {
				err := codefmt.Errorf(p, m, "String must have signature String() string")
				errs = errors.Join(errs, err)
				continue
			}
			adt.WantString = true
		default:
			matchers = append(matchers, m)
		}
	}

	if len(matchers) != 1 {
		err := codefmt.Errorf(p, obj, "sketch %t must declare exactly one matcher method, found %d",
			named, len(matchers))
		return nil, errors.Join(errs, err)
	}

	adt.Matcher = matchers[0]
	sig := adt.Matcher.Signature()

	if sig.Results().Len() != 1 {
		err := codefmt.Errorf(p, adt.Matcher, "matcher %s must return exactly one result", adt.Matcher.Name())
		return nil, errors.Join(errs, err)
	}
	adt.Result = sig.Results().At(0).Type()

	if err := p.extractConstructors(adt, cfg); err != nil {
		errs = errors.Join(errs, err)
	}
	if errs != nil {
		return nil, errs
	}
	return adt, nil
}

// extractConstructors reads the matcher's parameter list as the constructor
// set, in either func form or visitor form.
func (p *Parser) extractConstructors(adt *model.ADT, cfg Config) error {
	var errs error
	sig := adt.Matcher.Signature()

	if v, ok := visitorParam(sig); ok {
		adt.Visitor = v
		viface := v.Underlying().(*types.Interface)
		for i := 0; i < viface.NumExplicitMethods(); i++ {
			m := viface.ExplicitMethod(i)
			msig := m.Signature()
			if msig.Results().Len() != 1 || !types.Identical(msig.Results().At(0).Type(), adt.Result) {
				err := codefmt.Errorf(p, m, "visitor branch %s must return %t, the matcher's result",
					m.Name(), adt.Result)
				errs = errors.Join(errs, err)
				continue
			}
			if err := p.addConstructor(adt, cfg, m.Name(), msig, m.Pos()); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	} else {
		for i := 0; i < sig.Params().Len(); i++ {
			param := sig.Params().At(i)
			fsig, ok := param.Type().Underlying().(*types.Signature)
			if !ok {
				err := codefmt.Errorf(p, param, "matcher parameter %s must be a branch function or a visitor interface",
					param.Name())
				errs = errors.Join(errs, err)
				continue
			}
			if param.Name() == "" || param.Name() == "_" {
				err := codefmt.Errorf(p, param, "branch parameter must be named, the name becomes the constructor")
				errs = errors.Join(errs, err)
				continue
			}
			if fsig.Results().Len() != 1 || !types.Identical(fsig.Results().At(0).Type(), adt.Result) {
				err := codefmt.Errorf(p, param, "branch %s must return %t, the matcher's result",
					param.Name(), adt.Result)
				errs = errors.Join(errs, err)
				continue
			}
			if err := p.addConstructor(adt, cfg, param.Name(), fsig, param.Pos()); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}

	if len(adt.Constructors) == 0 && errs == nil {
		errs = codefmt.Errorf(p, adt.Name, "sketch %t declares no constructors", adt.Name.Type())
	}

	if err := p.checkFieldsOptions(adt, cfg); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := p.checkSharedFields(adt); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

// visitorParam reports whether the matcher takes a single interface parameter
// naming the constructors as methods.
func visitorParam(sig *types.Signature) (*types.Named, bool) {
	if sig.Params().Len() != 1 {
		return nil, false
	}
	t := typeinfo.TypeOf(sig.Params().At(0).Type())
	if !t.IsNamed() {
		return nil, false
	}
	if _, ok := t.Named.Underlying().(*types.Interface); !ok {
		return nil, false
	}
	return t.Named, true
}

// addConstructor appends one constructor extracted from a branch signature,
// validating names, field types, and uniqueness.
func (p *Parser) addConstructor(adt *model.ADT, cfg Config, name string, fsig *types.Signature, pos token.Pos) error {
	var errs error

	if fsig.Variadic() {
		return codefmt.Errorf(p, codefmt.Pos(pos), "branch %s cannot be variadic", name)
	}

	for _, prev := range adt.Constructors {
		if normalizeCtor(prev.Name) == normalizeCtor(name) {
			return codefmt.Errorf(p, codefmt.Pos(pos), "duplicate constructor %s", name)
		}
	}

	override := cfg.FieldNames[normalizeCtor(name)]
	if override != nil && len(override) != fsig.Params().Len() {
		return codefmt.Errorf(p, cfg.FieldPoss[normalizeCtor(name)],
			"Fields names %d fields but constructor %s has %d", len(override), name, fsig.Params().Len())
	}

	c := model.Constructor{Name: name, Pos: pos}
	seen := make(map[string]bool)
	for j := 0; j < fsig.Params().Len(); j++ {
		fp := fsig.Params().At(j)

		fieldName := fp.Name()
		if override != nil {
			fieldName = override[j]
		}
		if fieldName == "" || fieldName == "_" {
			err := codefmt.Errorf(p, fp, "constructor %s has unnamed fields, name them with sumgen.Fields", name)
			errs = errors.Join(errs, err)
			continue
		}
		if !token.IsIdentifier(fieldName) {
			err := codefmt.Errorf(p, cfg.FieldPoss[normalizeCtor(name)], "%q is not a valid field name", fieldName)
			errs = errors.Join(errs, err)
			continue
		}
		if seen[fieldName] {
			err := codefmt.Errorf(p, fp, "duplicate field %s in constructor %s", fieldName, name)
			errs = errors.Join(errs, err)
			continue
		}
		seen[fieldName] = true

		if err := p.checkResolvable(adt, name, fieldName, fp); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		c.Fields = append(c.Fields, model.Field{Name: fieldName, Type: fp.Type(), Pos: fp.Pos()})
	}

	if errs != nil {
		return errs
	}
	adt.Constructors = append(adt.Constructors, c)
	return nil
}

// checkResolvable rejects field types mentioning type parameters the sketch
// does not bind: generated top-level declarations could not name them.
func (p *Parser) checkResolvable(adt *model.ADT, ctor, field string, fp *types.Var) error {
	free := typeinfo.FreeTypeParams(fp.Type())

outer:
	for _, tp := range free {
		for _, bound := range adt.TypeParams {
			if tp.Obj() == bound.Obj() {
				continue outer
			}
		}
		return codefmt.Errorf(p, fp, "field %s of constructor %s mentions type parameter %s not bound by %t",
			field, ctor, tp.Obj().Name(), adt.Name.Type())
	}
	return nil
}

// checkFieldsOptions reports Fields options naming no constructor, with a
// suggestion when a close name exists.
func (p *Parser) checkFieldsOptions(adt *model.ADT, cfg Config) error {
	var errs error

	known := make(map[string]bool)
	var names []string
	for _, c := range adt.Constructors {
		known[normalizeCtor(c.Name)] = true
		names = append(names, c.Name)
	}

	for key, expr := range cfg.FieldPoss {
		if known[key] {
			continue
		}
		var err error
		if suggestion := lcs.Suggest(key, names); suggestion != "" {
			err = codefmt.Errorf(p, expr, "unknown constructor %q in Fields, did you mean %q?", key, suggestion)
		} else {
			err = codefmt.Errorf(p, expr, "unknown constructor %q in Fields", key)
		}
		errs = errors.Join(errs, err)
	}
	return errs
}

// checkSharedFields requires a field name shared across constructors to keep
// one type, so the shared accessor has a single signature.
func (p *Parser) checkSharedFields(adt *model.ADT) error {
	var errs error

	first := make(map[string]model.Field)
	firstCtor := make(map[string]string)
	for _, c := range adt.Constructors {
		for _, f := range c.Fields {
			prev, ok := first[f.Name]
			if !ok {
				first[f.Name] = f
				firstCtor[f.Name] = c.Name
				continue
			}
			if !types.Identical(prev.Type, f.Type) {
				err := codefmt.Errorf(p, codefmt.Pos(f.Pos),
					"field %s has type %t in %s but %t in %s, shared fields must keep one type",
					f.Name, prev.Type, firstCtor[f.Name], f.Type, c.Name)
				errs = errors.Join(errs, err)
			}
		}
	}
	return errs
}

func isEqualMarker(m *types.Func, named *types.Named) bool {
	sig := m.Signature()
	if sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return false
	}
	if b, ok := sig.Results().At(0).Type().(*types.Basic); !ok || b.Kind() != types.Bool {
		return false
	}
	pn, ok := types.Unalias(sig.Params().At(0).Type()).(*types.Named)
	return ok && pn.Obj() == named.Obj()
}

func isHashMarker(m *types.Func) bool {
	sig := m.Signature()
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	b, ok := sig.Results().At(0).Type().(*types.Basic)
	return ok && b.Kind() == types.Uint64
}

func isStringMarker(m *types.Func) bool {
	sig := m.Signature()
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	b, ok := sig.Results().At(0).Type().(*types.Basic)
	return ok && b.Kind() == types.String
}
