package element

import (
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// operandMismatch builds a KindOperatorOperandExpected diagnostic carrying
// the operator's own symbol, which operand (first/second) failed, the
// type the operator required there, and the type actually found - the
// identity and position a bare "type mismatch" string loses.
func operandMismatch(loc diagnostics.Location, op fmt.Stringer, operand, expected string, found *types.Type) error {
	msg := fmt.Sprintf("operator %s expects its %s operand to be %s, found %s", op, operand, expected, found)
	return diagnostics.New(diagnostics.CategoryElement, diagnostics.KindOperatorOperandExpected, loc, msg).
		With("operator", op.String()).
		With("operand", operand).
		With("expected", expected).
		With("found", found.String())
}

// BinaryResultType reports the type a binary operator produces when
// applied to the given operand types, or a diagnostic describing why the
// combination is inadmissible. Both operands of an arithmetic or bitwise
// operator must already be the same numeric/integer type; there is no
// implicit widening, matching the source language's explicit-cast-only
// conversion rule. loc anchors the diagnostic at the operator expression
// itself rather than the enclosing statement.
func BinaryResultType(op syntax.BinaryOp, left, right *types.Type, loc diagnostics.Location) (*types.Type, error) {
	switch op {
	case syntax.OpAdd, syntax.OpSub, syntax.OpMul, syntax.OpDiv, syntax.OpRem:
		if !left.IsNumeric() {
			return nil, operandMismatch(loc, op, "first", "numeric", left)
		}
		if !types.Equal(left, right) {
			return nil, operandMismatch(loc, op, "second", left.String(), right)
		}
		return left, nil

	case syntax.OpBitAnd, syntax.OpBitOr, syntax.OpBitXor:
		if left.Kind != types.KindInteger {
			return nil, operandMismatch(loc, op, "first", "integer", left)
		}
		if !types.Equal(left, right) {
			return nil, operandMismatch(loc, op, "second", left.String(), right)
		}
		return left, nil

	case syntax.OpEq, syntax.OpNotEq:
		if !types.Equal(left, right) {
			return nil, operandMismatch(loc, op, "second", left.String(), right)
		}
		return types.Bool, nil

	case syntax.OpLt, syntax.OpLtEq, syntax.OpGt, syntax.OpGtEq:
		if !left.IsNumeric() {
			return nil, operandMismatch(loc, op, "first", "integer", left)
		}
		if !types.Equal(left, right) {
			return nil, operandMismatch(loc, op, "second", left.String(), right)
		}
		return types.Bool, nil

	case syntax.OpAnd, syntax.OpOr, syntax.OpXor:
		if left.Kind != types.KindBool {
			return nil, operandMismatch(loc, op, "first", "bool", left)
		}
		if right.Kind != types.KindBool {
			return nil, operandMismatch(loc, op, "second", "bool", right)
		}
		return types.Bool, nil

	case syntax.OpRangeExclusive, syntax.OpRangeInclusive:
		if left.Kind != types.KindInteger {
			return nil, operandMismatch(loc, op, "first", "integer", left)
		}
		if !types.Equal(left, right) {
			return nil, operandMismatch(loc, op, "second", left.String(), right)
		}
		return left, nil

	case syntax.OpAssign:
		if !types.Equal(left, right) {
			return nil, operandMismatch(loc, op, "second", left.String(), right)
		}
		return types.Unit, nil

	default:
		return nil, diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, loc, "unrecognized binary operator")
	}
}

// UnaryResultType reports the type a unary operator produces applied to
// operand, or a diagnostic.
func UnaryResultType(op syntax.UnaryOp, operand *types.Type, loc diagnostics.Location) (*types.Type, error) {
	switch op {
	case syntax.OpNeg:
		if !operand.IsNumeric() {
			return nil, operandMismatch(loc, op, "only", "numeric", operand)
		}
		if operand.Kind == types.KindInteger && !operand.Signed {
			msg := fmt.Sprintf("cannot negate an unsigned value of type %s", operand)
			return nil, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindSignedUnsignedMismatch, loc, msg).
				With("operator", op.String()).With("found", operand.String())
		}
		return operand, nil
	case syntax.OpNot:
		if operand.Kind != types.KindBool {
			return nil, operandMismatch(loc, op, "only", "bool", operand)
		}
		return operand, nil
	default:
		return nil, diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, loc, "unrecognized unary operator")
	}
}

// CastAllowed reports whether from can be explicitly cast to to: among
// bool, integers, field, and enum representations. Casts never change the
// number of wires a value occupies (there is no casting into or out of
// array/tuple/struct), so this only ever holds between scalar types.
func CastAllowed(from, to *types.Type) bool {
	if !from.IsScalar() || !to.IsScalar() {
		return false
	}
	// bool casts only to/from unsigned integers of any width, matching a
	// boolean's 0/1 field representation.
	if from.Kind == types.KindBool {
		return to.Kind == types.KindBool || (to.Kind == types.KindInteger && !to.Signed)
	}
	if to.Kind == types.KindBool {
		return from.Kind == types.KindInteger && !from.Signed
	}
	if from.Kind == types.KindEnum {
		return types.Equal(from.Repr, to) || types.Equal(from, to)
	}
	if to.Kind == types.KindEnum {
		return types.Equal(to.Repr, from)
	}
	return from.Kind == types.KindInteger || from.Kind == types.KindField
}
