//go:build sumgen

package testdata

import "github.com/sumgen/sumgen"

type Shape interface {
	Match(circle func(size float64) float64, rect func(size int) float64) float64 // want `field size has type float64 in circle but int in rect, shared fields must keep one type`
}

var _ = sumgen.ADT[Shape]()
