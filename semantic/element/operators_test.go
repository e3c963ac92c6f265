package element

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

var noLoc diagnostics.Location

func TestBinaryResultTypeArithmeticRequiresMatchingTypes(t *testing.T) {
	_, err := BinaryResultType(syntax.OpAdd, types.Integer(false, 32), types.Integer(false, 64), noLoc)
	assert.Error(t, err)

	result, err := BinaryResultType(syntax.OpAdd, types.Field, types.Field, noLoc)
	assert.NoError(t, err)
	assert.True(t, types.Equal(result, types.Field))
}

func TestBinaryResultTypeComparisonReturnsBool(t *testing.T) {
	result, err := BinaryResultType(syntax.OpLt, types.Integer(false, 8), types.Integer(false, 8), noLoc)
	assert.NoError(t, err)
	assert.True(t, types.Equal(result, types.Bool))
}

func TestBinaryResultTypeLogicalRequiresBool(t *testing.T) {
	_, err := BinaryResultType(syntax.OpAnd, types.Integer(false, 8), types.Bool, noLoc)
	assert.Error(t, err)
	result, err := BinaryResultType(syntax.OpAnd, types.Bool, types.Bool, noLoc)
	assert.NoError(t, err)
	assert.True(t, types.Equal(result, types.Bool))
}

func TestUnaryResultTypeRejectsNegatingUnsigned(t *testing.T) {
	_, err := UnaryResultType(syntax.OpNeg, types.Integer(false, 32), noLoc)
	assert.Error(t, err)
	result, err := UnaryResultType(syntax.OpNeg, types.Integer(true, 32), noLoc)
	assert.NoError(t, err)
	assert.True(t, types.Equal(result, types.Integer(true, 32)))
}

func TestCastAllowed(t *testing.T) {
	assert.True(t, CastAllowed(types.Integer(false, 8), types.Bool))
	assert.False(t, CastAllowed(types.Integer(true, 8), types.Bool))
	assert.True(t, CastAllowed(types.Bool, types.Integer(false, 1)))
	assert.False(t, CastAllowed(types.Array(types.Field, 2), types.Field))

	enumType := types.Enum("Color", types.Integer(false, 8))
	assert.True(t, CastAllowed(enumType, types.Integer(false, 8)))
	assert.True(t, CastAllowed(types.Integer(false, 8), enumType))
	assert.False(t, CastAllowed(types.Integer(false, 16), enumType))
}
