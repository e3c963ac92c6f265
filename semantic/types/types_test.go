package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualStructural(t *testing.T) {
	assert.True(t, Equal(Integer(false, 32), Integer(false, 32)))
	assert.False(t, Equal(Integer(false, 32), Integer(true, 32)))
	assert.False(t, Equal(Integer(false, 32), Integer(false, 64)))
	assert.True(t, Equal(Array(Field, 3), Array(Field, 3)))
	assert.False(t, Equal(Array(Field, 3), Array(Field, 4)))
	assert.True(t, Equal(Tuple([]*Type{Bool, Field}), Tuple([]*Type{Bool, Field})))
}

func TestEqualNominal(t *testing.T) {
	a := Struct("Point", []StructField{{Name: "x", Type: Field}, {Name: "y", Type: Field}})
	b := Struct("Point", []StructField{{Name: "x", Type: Field}, {Name: "y", Type: Field}})
	c := Struct("Other", []StructField{{Name: "x", Type: Field}, {Name: "y", Type: Field}})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestIsScalarAndNumeric(t *testing.T) {
	assert.True(t, Bool.IsScalar())
	assert.False(t, Bool.IsNumeric())
	assert.True(t, Integer(false, 8).IsScalar())
	assert.True(t, Integer(false, 8).IsNumeric())
	assert.False(t, Array(Field, 2).IsScalar())
}

func TestFlatWireCount(t *testing.T) {
	assert.Equal(t, 0, Unit.FlatWireCount())
	assert.Equal(t, 1, Field.FlatWireCount())
	assert.Equal(t, 3, Array(Field, 3).FlatWireCount())
	point := Struct("Point", []StructField{{Name: "x", Type: Field}, {Name: "y", Type: Field}})
	assert.Equal(t, 2, point.FlatWireCount())
	nested := Tuple([]*Type{point, Array(Bool, 4)})
	assert.Equal(t, 6, nested.FlatWireCount())
}

func TestString(t *testing.T) {
	assert.Equal(t, "u32", Integer(false, 32).String())
	assert.Equal(t, "i8", Integer(true, 8).String())
	assert.Equal(t, "[field; 3]", Array(Field, 3).String())
	assert.Equal(t, "(bool, field)", Tuple([]*Type{Bool, Field}).String())
}
