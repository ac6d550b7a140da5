package derive

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// typecheckFixture parses and typechecks src as a single-file package and
// wraps it the way the loader would.
func typecheckFixture(t *testing.T, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
	}
	// The source importer resolves std imports without installed .a files.
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	tpkg, err := conf.Check("example.com/fixture", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return &packages.Package{
		PkgPath:   tpkg.Path(),
		Name:      tpkg.Name(),
		Fset:      fset,
		Types:     tpkg,
		TypesInfo: info,
		Syntax:    []*ast.File{file},
	}
}

// fixtureADT builds a model from a func-form sketch interface, bypassing the
// directive parser. Methods named Equal, Hash, or String toggle the
// structural flags; the remaining method is the matcher.
func fixtureADT(t *testing.T, pkg *packages.Package, name string) *model.ADT {
	t.Helper()

	obj, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName)
	require.True(t, ok, "fixture has no type %s", name)
	named := obj.Type().(*types.Named)
	iface := named.Underlying().(*types.Interface)

	adt := &model.ADT{Name: obj, Iface: iface}
	if tps := named.TypeParams(); tps != nil {
		for i := 0; i < tps.Len(); i++ {
			adt.TypeParams = append(adt.TypeParams, tps.At(i))
		}
	}

	for i := 0; i < iface.NumExplicitMethods(); i++ {
		m := iface.ExplicitMethod(i)
		switch m.Name() {
		case "Equal":
			adt.WantEqual = true
		case "Hash":
			adt.WantHash = true
		case "String":
			adt.WantString = true
		default:
			adt.Matcher = m
		}
	}
	require.NotNil(t, adt.Matcher, "fixture %s has no matcher method", name)

	sig := adt.Matcher.Signature()
	adt.Result = sig.Results().At(0).Type()
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		fsig := p.Type().(*types.Signature)
		c := model.Constructor{Name: p.Name(), Pos: p.Pos()}
		for j := 0; j < fsig.Params().Len(); j++ {
			fp := fsig.Params().At(j)
			c.Fields = append(c.Fields, model.Field{Name: fp.Name(), Type: fp.Type(), Pos: fp.Pos()})
		}
		adt.Constructors = append(adt.Constructors, c)
	}
	return adt
}

// render writes every artifact of the spec into one string.
func render(t *testing.T, pkg *packages.Package, spec *CodeSpec) string {
	t.Helper()

	var b strings.Builder
	w := codefmt.NewWriter(&b, pkg)
	for _, a := range spec.Artifacts() {
		a.Write(w)
	}
	return b.String()
}

const shapeSrc = `package fixture

type Shape interface {
	Match(circle func(radius float64) float64, rect func(w, h float64) float64) float64
}
`

const trafficSrc = `package fixture

type Signal interface {
	Match(green func() string, blink func(hz int) string) string
	Equal(other Signal) bool
	Hash() uint64
	String() string
}
`

const boxSrc = `package fixture

type Box[T any] interface {
	Match(full func(value T) int, empty func() int) int
}
`
