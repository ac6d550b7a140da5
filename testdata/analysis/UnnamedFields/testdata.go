//go:build sumgen

package testdata

import "github.com/sumgen/sumgen"

type Shape interface {
	Match(circle func(float64) float64) float64 // want `constructor circle has unnamed fields, name them with sumgen\.Fields`
}

var _ = sumgen.ADT[Shape]()
