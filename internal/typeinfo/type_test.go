package typeinfo_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumgen/sumgen/internal/typeinfo"
)

func parse(code string) (*ast.File, *types.Info, *types.Package, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", code, parser.AllErrors)
	if err != nil {
		return nil, nil, nil, err
	}

	info := &types.Info{Types: make(map[ast.Expr]types.TypeAndValue)}
	pkg, err := (&types.Config{}).Check("pkg", fset, []*ast.File{file}, info)
	if err != nil {
		return nil, nil, nil, err
	}

	return file, info, pkg, nil
}

func parseType(typeExpr string) (types.Type, error) {
	_, _, pkg, err := parse(fmt.Sprintf("package p; var x %s", typeExpr))
	if err != nil {
		return nil, err
	}
	x := pkg.Scope().Lookup("x")
	return x.Type(), nil
}

func TestTypeOfSignature(t *testing.T) {
	ty, err := parseType("func(radius float64) float64")
	require.NoError(t, err)

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsSignature())
	assert.False(t, ti.IsInterface())
}

func TestTypeOfInterface(t *testing.T) {
	ty, err := parseType("interface{ Circle(radius float64) float64 }")
	require.NoError(t, err)

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsInterface())
}

func TestTypeOfNamedKeepsUnderlying(t *testing.T) {
	_, _, pkg, err := parse("package p; type Shape interface{ Match(circle func() int) int }")
	require.NoError(t, err)

	obj := pkg.Scope().Lookup("Shape")
	ti := typeinfo.TypeOf(obj.Type())
	assert.True(t, ti.IsNamed())
	assert.True(t, ti.IsInterface())
	assert.Equal(t, pkg, ti.Pkg())
}

func TestTypeIdentical(t *testing.T) {
	ty1, err := parseType("float64")
	require.NoError(t, err)
	ty2, err := parseType("float64")
	require.NoError(t, err)

	assert.True(t, typeinfo.TypeOf(ty1).Identical(typeinfo.TypeOf(ty2)))
}

func TestTypeComparable(t *testing.T) {
	ty, err := parseType("[]int")
	require.NoError(t, err)
	assert.False(t, typeinfo.TypeOf(ty).IsComparable())

	ty, err = parseType("struct{ a int }")
	require.NoError(t, err)
	assert.True(t, typeinfo.TypeOf(ty).IsComparable())
}

func TestFreeTypeParams(t *testing.T) {
	_, _, pkg, err := parse("package p; type Box[T any] interface{ Match(full func(v T) any, empty func() any) any }")
	require.NoError(t, err)

	named := pkg.Scope().Lookup("Box").Type().(*types.Named)
	match := named.Underlying().(*types.Interface).Method(0)
	full := match.Signature().Params().At(0).Type().(*types.Signature)

	tps := typeinfo.FreeTypeParams(full.Params().At(0).Type())
	require.Len(t, tps, 1)
	assert.Equal(t, "T", tps[0].Obj().Name())
}
