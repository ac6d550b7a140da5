//go:build sumgen

package testdata

import "github.com/sumgen/sumgen"

type Shape interface {
	Match(circle func(radius float64) float64) float64 // want `generated name Circle conflicts with an existing declaration`
}

// Circle collides with the factory the directive wants to generate.
func Circle() {}

var _ = sumgen.ADT[Shape]()
