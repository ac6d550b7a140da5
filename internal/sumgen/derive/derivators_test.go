package derive

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
)

const tempSrc = `package fixture

type Temp interface {
	Match(celsius func(deg float64) string, fahrenheit func(deg float64) string) string
}
`

func TestBuiltinsPlain(t *testing.T) {
	pkg := typecheckFixture(t, shapeSrc)
	adt := fixtureADT(t, pkg, "Shape")
	ctx := NewContext(flavour.Plain, true, false, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	assert.Equal(t, []string{
		"shapeCircle", "Circle",
		"shapeRect", "Rect",
		"shapeCircle.Match", "shapeRect.Match", "MatchShape",
		"GetRadius", "WithRadius",
		"GetW", "WithW",
		"GetH", "WithH",
	}, spec.Names())

	code := render(t, pkg, spec)

	assert.Contains(t, code, "type shapeCircle struct {\n\tradius float64\n}")
	assert.Contains(t, code, "func Circle(radius float64) Shape {\n\treturn shapeCircle{radius: radius}\n}")
	assert.Contains(t, code,
		"func (x shapeCircle) Match(circle func(radius float64) float64, rect func(w float64, h float64) float64) float64 {\n"+
			"\treturn circle(x.radius)\n}")
	assert.Contains(t, code,
		"func MatchShape[R any](s Shape, circle func(radius float64) R, rect func(w float64, h float64) R) R {")
	assert.Contains(t, code, "case shapeRect:\n\t\treturn rect(x.w, x.h)")
	assert.Contains(t, code, `panic(fmt.Sprintf("sumgen: %T does not belong to Shape", s))`)

	// No constructor carries every field, so getters are partial.
	assert.Contains(t, code, "func GetRadius(s Shape) *float64 {")
	assert.Contains(t, code, "return optic.Ptr(x.radius)")
	assert.Contains(t, code, "\treturn nil\n}")
	assert.Contains(t, code, "func WithW(v float64, s Shape) Shape {")
	assert.Contains(t, code, "x.w = v\n\t\treturn x")
	assert.Contains(t, code, "\treturn s\n}")

	assert.NotContains(t, code, "Lens", "optics run only when requested")
	assert.NotContains(t, code, "Prism", "optics run only when requested")
}

func TestBuiltinsMoOptionals(t *testing.T) {
	pkg := typecheckFixture(t, shapeSrc)
	adt := fixtureADT(t, pkg, "Shape")
	ctx := NewContext(flavour.Mo, true, false, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	code := render(t, pkg, spec)
	assert.Contains(t, code, "func GetRadius(s Shape) mo.Option[float64] {")
	assert.Contains(t, code, "return mo.Some(x.radius)")
	assert.Contains(t, code, "return mo.None[float64]()")
}

func TestBuiltinsLazy(t *testing.T) {
	pkg := typecheckFixture(t, shapeSrc)
	adt := fixtureADT(t, pkg, "Shape")
	ctx := NewContext(flavour.Plain, true, true, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	names := spec.Names()
	assert.Contains(t, names, "shapeLazy")
	assert.Contains(t, names, "LazyShape")
	assert.Contains(t, names, "shapeLazy.Match")
	// The force helper rides with Equal, which Shape does not declare.
	assert.NotContains(t, names, "forceShape")

	code := render(t, pkg, spec)
	assert.Contains(t, code, "type shapeLazy struct {\n\tcell lazy.Cell[Shape]\n}")
	assert.Contains(t, code, "func LazyShape(produce func() Shape) Shape {\n\treturn &shapeLazy{cell: lazy.NewCell(produce)}\n}")
	assert.Contains(t, code,
		"func (x *shapeLazy) Match(circle func(radius float64) float64, rect func(w float64, h float64) float64) float64 {\n"+
			"\treturn x.cell.Force().Match(circle, rect)\n}")
	assert.Contains(t, code, "case *shapeLazy:\n\t\treturn MatchShape(x.cell.Force(), circle, rect)")
	assert.NotContains(t, code, "func forceShape")
	assert.Contains(t, code, "case *shapeLazy:\n\t\treturn GetRadius(x.cell.Force())")
}

func TestBuiltinsUnexported(t *testing.T) {
	pkg := typecheckFixture(t, shapeSrc)
	adt := fixtureADT(t, pkg, "Shape")
	ctx := NewContext(flavour.Plain, false, false, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	names := spec.Names()
	assert.Contains(t, names, "circle")
	assert.Contains(t, names, "matchShape")
	assert.Contains(t, names, "getRadius")
	assert.NotContains(t, names, "Circle")
}

func TestLensesRequireTotalField(t *testing.T) {
	pkg := typecheckFixture(t, tempSrc)
	adt := fixtureADT(t, pkg, "Temp")
	ctx := NewContext(flavour.Plain, true, false, []string{"optics"}, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	assert.Contains(t, spec.Names(), "TempDegLens")

	code := render(t, pkg, spec)
	assert.Contains(t, code,
		"var TempDegLens = optic.Lens[Temp, float64]{\n\tGet: GetDeg,\n\tSet: WithDeg,\n}")
	// deg is total, so its getter is direct and exhaustive.
	assert.Contains(t, code, "func GetDeg(s Temp) float64 {")
	assert.Contains(t, code, "case tempCelsius:\n\t\treturn x.deg")

	// No lens for Shape: no field spans both constructors.
	shapePkg := typecheckFixture(t, shapeSrc)
	shape := fixtureADT(t, shapePkg, "Shape")
	res = Dispatch(shape, NewContext(flavour.Plain, true, false, []string{"optics"}, shape.Pos()),
		NewUtils(shapePkg), Builtins())
	spec, ok = res.Get()
	require.True(t, ok)
	for _, name := range spec.Names() {
		assert.NotContains(t, name, "Lens")
	}
}

func TestPrisms(t *testing.T) {
	pkg := typecheckFixture(t, shapeSrc)
	adt := fixtureADT(t, pkg, "Shape")
	ctx := NewContext(flavour.Plain, true, false, []string{"optics"}, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	names := spec.Names()
	assert.Contains(t, names, "ShapeCirclePrism")
	assert.Contains(t, names, "previewShapeCircle")
	assert.Contains(t, names, "reviewShapeCircle")

	code := render(t, pkg, spec)
	assert.Contains(t, code, "func previewShapeCircle(s Shape) *shapeCircle {")
	assert.Contains(t, code, "return optic.Ptr(x)")
	assert.Contains(t, code, "func reviewShapeCircle(a shapeCircle) Shape {\n\treturn Circle(a.radius)\n}")
	assert.Contains(t, code,
		"var ShapeCirclePrism = optic.Prism[Shape, shapeCircle, *shapeCircle]{\n"+
			"\tPreview: previewShapeCircle,\n\tReview: reviewShapeCircle,\n}")
}

func TestPrismUnitPayload(t *testing.T) {
	pkg := typecheckFixture(t, trafficSrc)
	adt := fixtureADT(t, pkg, "Signal")
	ctx := NewContext(flavour.Plain, true, false, []string{"optics"}, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	code := render(t, pkg, spec)
	assert.Contains(t, code, "func previewSignalGreen(s Signal) *struct{} {")
	assert.Contains(t, code, "return optic.Ptr(struct{}{})")
	assert.Contains(t, code, "func reviewSignalGreen(struct{}) Signal {\n\treturn Green()\n}")
}

func TestStructuralMethods(t *testing.T) {
	pkg := typecheckFixture(t, trafficSrc)
	adt := fixtureADT(t, pkg, "Signal")
	require.True(t, adt.WantEqual)
	require.True(t, adt.WantHash)
	require.True(t, adt.WantString)

	ctx := NewContext(flavour.Plain, true, false, nil, adt.Pos())
	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	code := render(t, pkg, spec)

	assert.Contains(t, code,
		"func (x signalBlink) Equal(other Signal) bool {\n"+
			"\to, ok := other.(signalBlink)\n\treturn ok && x.hz == o.hz\n}")
	assert.Contains(t, code,
		"func (x signalGreen) Equal(other Signal) bool {\n\t_, ok := other.(signalGreen)\n\treturn ok\n}")

	assert.Contains(t, code, "h := fnv.New64a()")
	assert.Contains(t, code, `io.WriteString(h, "Blink")`)
	assert.Contains(t, code, `fmt.Fprintf(h, "/%v", x.hz)`)

	assert.Contains(t, code, "func (x signalGreen) String() string {\n\treturn \"Green()\"\n}")
	assert.Contains(t, code, `return fmt.Sprintf("Blink(%v)", x.hz)`)
}

func TestStructuralEqualDelegatesThroughForce(t *testing.T) {
	pkg := typecheckFixture(t, trafficSrc)
	adt := fixtureADT(t, pkg, "Signal")
	ctx := NewContext(flavour.Plain, true, true, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	assert.Contains(t, spec.Names(), "forceSignal")

	code := render(t, pkg, spec)
	assert.Contains(t, code, "func forceSignal(s Signal) Signal {")
	assert.Contains(t, code, "o, ok := forceSignal(other).(signalBlink)")
	assert.Contains(t, code, "func (x *signalLazy) Equal(other Signal) bool {\n\treturn x.cell.Force().Equal(other)\n}")
	assert.Contains(t, code, "func (x *signalLazy) Hash() uint64 {\n\treturn x.cell.Force().Hash()\n}")
	assert.Contains(t, code, "func (x *signalLazy) String() string {\n\treturn x.cell.Force().String()\n}")
}

func TestStructuralHashFoldsNegativeZero(t *testing.T) {
	src := `package fixture

type Reading interface {
	Match(sample func(deg float64, gain float32) string) string
	Hash() uint64
	String() string
}
`
	pkg := typecheckFixture(t, src)
	adt := fixtureADT(t, pkg, "Reading")
	ctx := NewContext(flavour.Plain, true, false, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	// Floats hash their bit pattern, not their rendering: "%v" prints 0.0
	// and -0.0 apart although they compare equal.
	code := render(t, pkg, spec)
	assert.Contains(t, code, `fmt.Fprintf(h, "/%v", math.Float64bits(float64(x.deg)+0))`)
	assert.Contains(t, code, `fmt.Fprintf(h, "/%v", math.Float32bits(float32(x.gain)+0))`)

	// String folds it too, so equal values print alike.
	assert.Contains(t, code, `return fmt.Sprintf("Sample(%v, %v)", x.deg+0, x.gain+0)`)

	// Adding zero folds the sign, so both spellings feed one bit pattern.
	negZero := math.Copysign(0, -1)
	assert.Equal(t, math.Float64bits(0.0+0), math.Float64bits(negZero+0))
}

func TestStructuralRejectsNonComparableField(t *testing.T) {
	src := `package fixture

type Bag interface {
	Match(items func(values []int) int) int
	Equal(other Bag) bool
}
`
	pkg := typecheckFixture(t, src)
	adt := fixtureADT(t, pkg, "Bag")
	ctx := NewContext(flavour.Plain, true, false, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	require.False(t, res.Ok())
	assert.ErrorContains(t, res.Err(), "non-comparable type []int")
}

func TestStructuralRejectsInterfaceField(t *testing.T) {
	src := `package fixture

type Outcome interface {
	Match(failed func(cause error) int, done func() int) int
	Equal(other Outcome) bool
}
`
	pkg := typecheckFixture(t, src)
	adt := fixtureADT(t, pkg, "Outcome")
	ctx := NewContext(flavour.Plain, true, false, nil, adt.Pos())

	// Go permits == on interfaces, but it panics when the dynamic values are
	// not comparable, so Equal refuses interface fields.
	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	require.False(t, res.Ok())
	assert.ErrorContains(t, res.Err(), "non-comparable type error")
}

func TestBuiltinsGeneric(t *testing.T) {
	pkg := typecheckFixture(t, boxSrc)
	adt := fixtureADT(t, pkg, "Box")
	ctx := NewContext(flavour.Plain, true, false, []string{"optics"}, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	code := render(t, pkg, spec)

	assert.Contains(t, code, "type boxFull[T any] struct {\n\tvalue T\n}")
	assert.Contains(t, code, "func Full[T any](value T) Box[T] {\n\treturn boxFull[T]{value: value}\n}")
	assert.Contains(t, code,
		"func MatchBox[T any, R any](s Box[T], full func(value T) R, empty func() R) R {")
	assert.Contains(t, code, "case boxFull[T]:\n\t\treturn full(x.value)")
	assert.Contains(t, code, "func GetValue[T any](s Box[T]) *T {")

	// Go has no generic package variables, so optics come out as functions.
	assert.Contains(t, code, "func BoxFullPrism[T any]() optic.Prism[Box[T], boxFull[T], *boxFull[T]] {")
	assert.Contains(t, code, "Preview: previewBoxFull[T],")
	assert.NotContains(t, code, "var BoxFullPrism")
}

func TestGenericConstraintImports(t *testing.T) {
	src := `package fixture

import "io"

type Track[T io.Reader] interface {
	Match(open func(src T) string, closed func() string) string
}
`
	pkg := typecheckFixture(t, src)
	adt := fixtureADT(t, pkg, "Track")
	ctx := NewContext(flavour.Plain, true, false, nil, adt.Pos())

	res := Dispatch(adt, ctx, NewUtils(pkg), Builtins())
	spec, ok := res.Get()
	require.True(t, ok, "unexpected diagnostics: %v", res.Err())

	var b strings.Builder
	w := codefmt.NewWriter(&b, pkg)
	for _, a := range spec.Artifacts() {
		a.Write(w)
	}

	assert.Contains(t, b.String(), "type trackOpen[T io.Reader] struct {")
	assert.Contains(t, b.String(), "func MatchTrack[T io.Reader, R any](s Track[T]")

	// The constraint's package must register on the writer itself, not only
	// appear in the rendered text, or the framed file misses the import.
	_, ok = w.Imports()["io"]
	assert.True(t, ok, "io not registered: %v", w.Imports())
}
