package flavour

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumgen/sumgen/internal/codefmt"
	"golang.org/x/tools/go/packages"

	"go/token"
	"go/types"
)

func testWriter() (*codefmt.Writer, *strings.Builder) {
	var b strings.Builder
	pkg := &packages.Package{
		PkgPath: "example.com/fixture",
		Name:    "fixture",
		Fset:    token.NewFileSet(),
		Types:   types.NewPackage("example.com/fixture", "fixture"),
	}
	return codefmt.NewWriter(&b, pkg), &b
}

func TestPlainOptional(t *testing.T) {
	w, _ := testWriter()
	r, ok := Resolve(Plain, OptionalOf)
	require.True(t, ok)

	assert.Equal(t, "*float64", r.TypeExpr(w, "float64"))
	assert.Equal(t, "optic.Ptr(x.radius)", r.Wrap(w, "x.radius"))
	assert.Equal(t, "nil", r.Empty(w, "float64"))
	assert.Equal(t, "optic.FromPtr(opt)", r.Unwrap(w, "opt"))
}

func TestMoOptional(t *testing.T) {
	w, _ := testWriter()
	r, ok := Resolve(Mo, OptionalOf)
	require.True(t, ok)

	assert.Equal(t, "mo.Option[float64]", r.TypeExpr(w, "float64"))
	assert.Equal(t, "mo.Some(x.radius)", r.Wrap(w, "x.radius"))
	assert.Equal(t, "mo.None[float64]()", r.Empty(w, "float64"))
	assert.Equal(t, "opt.Get()", r.Unwrap(w, "opt"))
}

func TestOptionalRegistersImport(t *testing.T) {
	w, _ := testWriter()
	r, _ := Resolve(Plain, OptionalOf)
	r.Wrap(w, "x")

	var paths []string
	for _, imp := range w.Imports() {
		paths = append(paths, imp.Path())
	}
	assert.Contains(t, paths, "github.com/sumgen/sumgen/pkg/optic")
}

func TestFunctionRecipes(t *testing.T) {
	w, _ := testWriter()

	f1, ok := Resolve(Plain, Function1)
	require.True(t, ok)
	assert.Equal(t, "func(radius float64) R", f1.TypeExpr(w, "radius float64", "R"))
	assert.Equal(t, "branch(x.radius)", f1.Unwrap(w, "branch", "x.radius"))

	f2, ok := Resolve(Mo, Function2)
	require.True(t, ok)
	assert.Equal(t, "func(w float64, h float64) R", f2.TypeExpr(w, "w float64", "h float64", "R"))
	assert.Equal(t, "branch(x.w, x.h)", f2.Unwrap(w, "branch", "x.w", "x.h"))
}

func TestUnitRecipe(t *testing.T) {
	w, _ := testWriter()
	u, ok := Resolve(Plain, UnitValue)
	require.True(t, ok)

	assert.Equal(t, "struct{}", u.TypeExpr(w))
	assert.Equal(t, "struct{}{}", u.Wrap(w))
}

func TestSupporting(t *testing.T) {
	assert.Equal(t, All, Supporting(OptionalOf, Function1, Function2, UnitValue))
	assert.True(t, Supports(Mo, OptionalOf))
	assert.False(t, Supports(Flavour(99), OptionalOf))
	assert.Equal(t, All, Supporting())
}

func TestFlavourString(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "mo", Mo.String())
	assert.Equal(t, "unknown", Flavour(99).String())
	assert.Equal(t, "optionalOf", OptionalOf.String())
}
