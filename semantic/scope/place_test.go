package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/semantic/types"
)

func TestFlatOffsetStruct(t *testing.T) {
	point := types.Struct("Point", []types.StructField{
		{Name: "x", Type: types.Field},
		{Name: "y", Type: types.Field},
	})
	base := Place{Root: "p", Type: point}
	y := base.Field("y", types.Field)

	offset, err := y.FlatOffset(point)
	require.NoError(t, err)
	assert.Equal(t, 1, offset)
}

func TestFlatOffsetArrayConstIndex(t *testing.T) {
	arr := types.Array(types.Field, 4)
	base := Place{Root: "xs", Type: arr}
	el := base.Index(2, types.Field)

	offset, err := el.FlatOffset(arr)
	require.NoError(t, err)
	assert.Equal(t, 2, offset)
}

func TestFlatOffsetUnknownIndexErrors(t *testing.T) {
	arr := types.Array(types.Field, 4)
	base := Place{Root: "xs", Type: arr}
	el := base.Index(-1, types.Field)

	_, err := el.FlatOffset(arr)
	assert.Error(t, err)
}

func TestFlatOffsetNestedArrayOfStruct(t *testing.T) {
	point := types.Struct("Point", []types.StructField{
		{Name: "x", Type: types.Field},
		{Name: "y", Type: types.Field},
	})
	arr := types.Array(point, 3)
	base := Place{Root: "pts", Type: arr}
	place := base.Index(1, point).Field("y", types.Field)

	offset, err := place.FlatOffset(arr)
	require.NoError(t, err)
	assert.Equal(t, 3, offset) // index 1 * 2 wires + field y at offset 1
}

func TestFlatOffsetTupleField(t *testing.T) {
	tup := types.Tuple([]*types.Type{types.Bool, types.Field, types.Field})
	base := Place{Root: "t", Type: tup}
	place := base.TupleField(2, types.Field)

	offset, err := place.FlatOffset(tup)
	require.NoError(t, err)
	assert.Equal(t, 2, offset)
}
