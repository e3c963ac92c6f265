package element

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ingzkp/zinc/semantic/types"
)

func TestFieldArithmetic(t *testing.T) {
	a := FieldFromUint64(5)
	b := FieldFromUint64(3)
	assert.True(t, a.Add(b).Equal(FieldFromUint64(8)))
	assert.True(t, a.Sub(b).Equal(FieldFromUint64(2)))
	assert.True(t, a.Mul(b).Equal(FieldFromUint64(15)))
}

func TestFieldDivByZero(t *testing.T) {
	a := FieldFromUint64(5)
	_, ok := a.Div(FieldFromUint64(0))
	assert.False(t, ok)
}

func TestFieldDiv(t *testing.T) {
	a := FieldFromUint64(6)
	b := FieldFromUint64(3)
	q, ok := a.Div(b)
	assert.True(t, ok)
	assert.True(t, q.Equal(FieldFromUint64(2)))
}

func TestConstInRangeUnsigned(t *testing.T) {
	c := Const{Type: types.Integer(false, 8), Field: FieldFromUint64(255)}
	assert.True(t, c.InRange())
	c = Const{Type: types.Integer(false, 8), Field: FieldFromUint64(256)}
	assert.False(t, c.InRange())
}

func TestConstInRangeSigned(t *testing.T) {
	pos := Const{Type: types.Integer(true, 8), Field: FieldFromUint64(127)}
	assert.True(t, pos.InRange())

	tooBig := Const{Type: types.Integer(true, 8), Field: FieldFromUint64(128)}
	assert.False(t, tooBig.InRange())

	negOne := Const{Type: types.Integer(true, 8), Field: FieldFromUint64(1).Neg()}
	assert.True(t, negOne.InRange())

	negHalf := Const{Type: types.Integer(true, 8), Field: FieldFromBigInt(big.NewInt(-128))}
	assert.True(t, negHalf.InRange())

	tooNegative := Const{Type: types.Integer(true, 8), Field: FieldFromBigInt(big.NewInt(-129))}
	assert.False(t, tooNegative.InRange())
}
