package derive

import (
	"go/token"
	"go/types"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"golang.org/x/tools/go/packages"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
)

// Context is the per-run configuration shared by every derivator of one
// derivation. Created once per directive and read-only thereafter.
type Context struct {
	// Flavour is the chosen representation family.
	Flavour flavour.Flavour

	// Exported decides the visibility of generated top-level names.
	Exported bool

	// Lazy requests the memoized lazy factory.
	Lazy bool

	// selectors are the selector strings the directive explicitly asked
	// for.
	selectors *linkedhashset.Set

	// pos is the directive position, the anchor for run-level diagnostics.
	pos token.Pos
}

// NewContext creates a run configuration. selectors lists the selector
// strings explicitly requested on the directive.
func NewContext(f flavour.Flavour, exported, lazy bool, selectors []string, pos token.Pos) *Context {
	set := linkedhashset.New()
	for _, s := range selectors {
		set.Add(s)
	}
	return &Context{
		Flavour:   f,
		Exported:  exported,
		Lazy:      lazy,
		selectors: set,
		pos:       pos,
	}
}

// Requested reports whether the directive explicitly asked for the selector.
func (c *Context) Requested(selector string) bool {
	return c.selectors.Contains(selector)
}

// Selectors returns the requested selectors in declaration order.
func (c *Context) Selectors() []string {
	out := make([]string, 0, c.selectors.Size())
	for _, v := range c.selectors.Values() {
		out = append(out, v.(string))
	}
	return out
}

// Pos returns the directive position.
func (c *Context) Pos() token.Pos { return c.pos }

// Name applies the visibility policy to a generated top-level name.
func (c *Context) Name(base string) string {
	r, size := utf8.DecodeRuneInString(base)
	if c.Exported {
		return string(unicode.ToUpper(r)) + base[size:]
	}
	return string(unicode.ToLower(r)) + base[size:]
}

// Utils is the capability facade derivators use to reason about the host type
// system. It is owned by the run and shared read-only.
type Utils struct {
	pkg *packages.Package
	fmt codefmt.Formatter
}

// NewUtils creates the facade for the package under derivation.
func NewUtils(pkg *packages.Package) *Utils {
	return &Utils{pkg: pkg, fmt: codefmt.New(pkg)}
}

// Pkg returns the package under derivation.
func (u *Utils) Pkg() *packages.Package { return u.pkg }

// Fmt returns the code formatter for the package under derivation.
func (u *Utils) Fmt() codefmt.Formatter { return u.fmt }

// Errorf formats a positioned diagnostic.
func (u *Utils) Errorf(poser codefmt.Poser, format string, args ...any) error {
	return u.fmt.Errorf(poser, format, args...)
}

// Identical reports whether two types are identical.
func (u *Utils) Identical(a, b types.Type) bool {
	return types.Identical(a, b)
}

// Comparable reports whether == on values of the type is defined and never
// panics. Interface-typed operands compare by dynamic type and panic on
// non-comparable dynamic values, so interfaces are excluded even though Go
// permits the operator on them.
func (u *Utils) Comparable(t types.Type) bool {
	switch ut := t.Underlying().(type) {
	case *types.Basic:
		return ut.Kind() != types.Invalid
	case *types.Pointer, *types.Chan:
		return true
	case *types.Struct:
		for i := 0; i < ut.NumFields(); i++ {
			if !u.Comparable(ut.Field(i).Type()) {
				return false
			}
		}
		return true
	case *types.Array:
		return u.Comparable(ut.Elem())
	}
	return false
}

// Substitute replaces type parameters in t according to bind. Types outside
// bind's domain are returned unchanged.
func (u *Utils) Substitute(t types.Type, bind map[*types.TypeParam]types.Type) types.Type {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		if to, ok := bind[t]; ok {
			return to
		}
		return t

	case *types.Pointer:
		return types.NewPointer(u.Substitute(t.Elem(), bind))

	case *types.Slice:
		return types.NewSlice(u.Substitute(t.Elem(), bind))

	case *types.Array:
		return types.NewArray(u.Substitute(t.Elem(), bind), t.Len())

	case *types.Chan:
		return types.NewChan(t.Dir(), u.Substitute(t.Elem(), bind))

	case *types.Map:
		return types.NewMap(u.Substitute(t.Key(), bind), u.Substitute(t.Elem(), bind))

	case *types.Signature:
		params := make([]*types.Var, t.Params().Len())
		for i := range params {
			p := t.Params().At(i)
			params[i] = types.NewParam(p.Pos(), p.Pkg(), p.Name(), u.Substitute(p.Type(), bind))
		}
		results := make([]*types.Var, t.Results().Len())
		for i := range results {
			r := t.Results().At(i)
			results[i] = types.NewParam(r.Pos(), r.Pkg(), r.Name(), u.Substitute(r.Type(), bind))
		}
		return types.NewSignatureType(nil, nil, nil,
			types.NewTuple(params...), types.NewTuple(results...), t.Variadic())

	case *types.Named:
		args := t.TypeArgs()
		if args == nil || args.Len() == 0 {
			return t
		}
		newArgs := make([]types.Type, args.Len())
		changed := false
		for i := range newArgs {
			newArgs[i] = u.Substitute(args.At(i), bind)
			changed = changed || newArgs[i] != args.At(i)
		}
		if !changed {
			return t
		}
		inst, err := types.Instantiate(nil, t.Origin(), newArgs, false)
		if err != nil {
			return t
		}
		return inst
	}

	return t
}
