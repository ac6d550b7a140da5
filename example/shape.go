//go:build sumgen

package main

import "github.com/sumgen/sumgen"

// Shape is a closed set of geometric figures.
type Shape interface {
	Match(circle func(radius float64) float64, rect func(w, h float64) float64) float64
	Equal(other Shape) bool
	String() string
}

var _ = sumgen.ADT[Shape](sumgen.Optics())

// Signal is a traffic light state, evaluated on demand.
type Signal interface {
	Match(green func() string, blink func(hz int) string) string
	Hash() uint64
	String() string
}

var _ = sumgen.ADT[Signal](sumgen.Flavour(sumgen.FlavourMo), sumgen.Lazy())
