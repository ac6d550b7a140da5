//go:build sumgen

package testdata

import "github.com/sumgen/sumgen"

type Shape interface { // want `sketch Shape must declare exactly one matcher method, found 2`
	Match(circle func(radius float64) float64) float64
	Fold(circle func(radius float64) float64) float64
}

var _ = sumgen.ADT[Shape]()
