//go:build sumgen

package testdata

import "github.com/sumgen/sumgen"

var _ = sumgen.ADT[int]() // want `int is not an interface sketch`
