// Package element holds the values semantic analysis manipulates while
// folding constants and resolving places: typed constants, the field
// element representation backing `field`-typed arithmetic, and the
// operator admissibility tables that decide whether a binary or unary
// operator applies to a given pair of types.
package element

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/ingzkp/zinc/semantic/types"
)

// Field wraps a bn254 scalar-field element, the representation every
// `field`-typed constant and every integer-typed constant is lowered to
// once it reaches the bytecode layer (the VM's arithmetic is field
// arithmetic throughout; integers are range-checked field elements).
type Field struct {
	v fr.Element
}

// FieldFromUint64 builds a Field from a small non-negative constant.
func FieldFromUint64(n uint64) Field {
	var f Field
	f.v.SetUint64(n)
	return f
}

// FieldFromBigInt reduces an arbitrary-precision integer into the field.
func FieldFromBigInt(n *big.Int) Field {
	var f Field
	f.v.SetBigInt(n)
	return f
}

// FieldFromDecimal parses a base-10 digit string.
func FieldFromDecimal(digits string) (Field, bool) {
	var f Field
	_, ok := f.v.SetString(digits)
	return f, ok == nil
}

func (a Field) Add(b Field) Field { var r Field; r.v.Add(&a.v, &b.v); return r }
func (a Field) Sub(b Field) Field { var r Field; r.v.Sub(&a.v, &b.v); return r }
func (a Field) Mul(b Field) Field { var r Field; r.v.Mul(&a.v, &b.v); return r }
func (a Field) Neg() Field        { var r Field; r.v.Neg(&a.v); return r }

// Div is field division: multiplication by the modular inverse. It
// returns ok=false for b == 0 instead of calling Inverse, which returns
// zero for a zero input and would mask a division by zero as a zero
// result.
func (a Field) Div(b Field) (Field, bool) {
	if b.IsZero() {
		return Field{}, false
	}
	var inv, r Field
	inv.v.Inverse(&b.v)
	r.v.Mul(&a.v, &inv.v)
	return r, true
}

func (a Field) IsZero() bool      { return a.v.IsZero() }
func (a Field) Equal(b Field) bool { return a.v.Equal(&b.v) }

// Cmp orders two field elements by their canonical non-negative integer
// representative. Ordering a field is only meaningful for the VM's
// bounded-range comparisons; the field itself has no inherent order.
func (a Field) Cmp(b Field) int {
	ab, bb := a.BigInt(), b.BigInt()
	return ab.Cmp(bb)
}

func (a Field) BigInt() *big.Int {
	var out big.Int
	a.v.BigInt(&out)
	return &out
}

func (a Field) String() string { return a.v.String() }

// Const is a fully-evaluated constant value, tagged with the semantic type
// it was produced with. Every arm but Bool/Str is stored as a field
// element since that is the VM's only native representation; Type
// remembers the width/signedness overlaid on top for range checking and
// formatting.
type Const struct {
	Type  *types.Type
	Bool  bool
	Field Field
	Str   string

	// Array/Tuple/Struct constants
	Elements []Const
}

// InRange reports whether this constant's field value fits the bit width
// and signedness of its integer type. Unsigned: 0 <= v < 2^Bits. Signed:
// -2^(Bits-1) <= v < 2^(Bits-1), represented in two's-complement modulo
// the field's characteristic.
func (c Const) InRange() bool {
	if c.Type.Kind != types.KindInteger {
		return true
	}
	v := c.Field.BigInt()
	max := new(big.Int).Lsh(big.NewInt(1), uint(c.Type.Bits))
	if !c.Type.Signed {
		return v.Sign() >= 0 && v.Cmp(max) < 0
	}
	half := new(big.Int).Rsh(max, 1)
	// A negative value (produced by Neg/Sub) is stored as its field
	// wraparound, modulus - |x|; fold values past the modulus's midpoint
	// back to a signed magnitude before comparing against the window.
	modulus := fr.Modulus()
	signedV := new(big.Int).Set(v)
	if v.Cmp(new(big.Int).Rsh(modulus, 1)) > 0 {
		signedV.Sub(v, modulus)
	}
	neg := new(big.Int).Neg(half)
	return signedV.Cmp(neg) >= 0 && signedV.Cmp(half) < 0
}
