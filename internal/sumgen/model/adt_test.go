package model

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testADT() *ADT {
	f64 := types.Typ[types.Float64]
	return &ADT{
		Constructors: []Constructor{
			{Name: "circle", Fields: []Field{{Name: "radius", Type: f64}}},
			{Name: "rect", Fields: []Field{{Name: "w", Type: f64}, {Name: "h", Type: f64}}},
			{Name: "square", Fields: []Field{{Name: "w", Type: f64}}},
		},
	}
}

func TestConstructorLookup(t *testing.T) {
	adt := testADT()

	c, ok := adt.Constructor("rect")
	require.True(t, ok)
	assert.Equal(t, "rect", c.Name)
	assert.Len(t, c.Fields, 2)

	_, ok = adt.Constructor("triangle")
	assert.False(t, ok)

	assert.Equal(t, []string{"circle", "rect", "square"}, adt.ConstructorNames())
}

func TestFieldTableOrderAndSharing(t *testing.T) {
	adt := testADT()
	table := adt.FieldTable()

	require.Len(t, table, 3)
	assert.Equal(t, "radius", table[0].Name)
	assert.Equal(t, "w", table[1].Name)
	assert.Equal(t, "h", table[2].Name)

	// w is shared by rect and square, first declared by rect.
	assert.Equal(t, []int{1, 2}, table[1].Constructors)
	assert.True(t, table[1].Has(1))
	assert.False(t, table[1].Has(0))
	assert.False(t, table[1].Total(adt))

	assert.Equal(t, []int{0}, table[0].Constructors)
}

func TestFieldTableTotal(t *testing.T) {
	f64 := types.Typ[types.Float64]
	adt := &ADT{
		Constructors: []Constructor{
			{Name: "celsius", Fields: []Field{{Name: "deg", Type: f64}}},
			{Name: "fahrenheit", Fields: []Field{{Name: "deg", Type: f64}}},
		},
	}

	table := adt.FieldTable()
	require.Len(t, table, 1)
	assert.True(t, table[0].Total(adt))
}
