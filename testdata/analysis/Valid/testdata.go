//go:build sumgen

package testdata

import "github.com/sumgen/sumgen"

type ShapeVisitor interface {
	Circle(radius float64) float64
	Rect(w, h float64) float64
}

type Shape interface {
	Match(v ShapeVisitor) float64 // ok
	Equal(other Shape) bool
	String() string
}

var _ = sumgen.ADT[Shape](sumgen.Optics(), sumgen.Lazy())
