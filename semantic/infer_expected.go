package semantic

import (
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/element"
	"github.com/ingzkp/zinc/semantic/scope"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// inferExprExpected type-checks expr against an already-known target type,
// the way a declared let/const type, a function parameter, or a struct
// field's declared type narrows an otherwise-untyped integer literal. A
// bare literal has no type of its own until something around it demands
// one; this is where that demand is applied. expected == nil means no
// such context exists, so the expression is left to infer freely.
func (a *Analyzer) inferExprExpected(expr syntax.Expr, sc *scope.Scope, expected *types.Type) (*types.Type, error) {
	if expected == nil {
		return a.inferExpr(expr, sc)
	}

	switch e := expr.(type) {
	case *syntax.LiteralExpr:
		if e.Kind == syntax.LiteralInteger && (expected.Kind == types.KindInteger || expected.Kind == types.KindField) {
			if _, err := a.literalIntegerAs(e, expected); err != nil {
				return nil, err
			}
			a.program.ExprTypes[expr] = expected
			return expected, nil
		}

	case *syntax.UnaryExpr:
		if e.Op == syntax.OpNeg && isNegatableInExpectedContext(expected) {
			if lit, ok := e.Operand.(*syntax.LiteralExpr); ok && lit.Kind == syntax.LiteralInteger {
				c, err := a.literalIntegerAs(lit, expected)
				if err != nil {
					return nil, err
				}
				c.Field = c.Field.Neg()
				if !c.InRange() {
					return nil, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindIntegerOverflow, lit.Location,
						fmt.Sprintf("constant value does not fit in %s", expected))
				}
				a.program.ExprTypes[lit] = expected
				a.program.ExprTypes[expr] = expected
				return expected, nil
			}
		}

	case *syntax.ArrayExpr:
		if expected.Kind == types.KindArray {
			return a.inferArrayExpected(e, sc, expected)
		}

	case *syntax.TupleExpr:
		if expected.Kind == types.KindTuple && len(expected.Elements) == len(e.Elements) {
			for i, el := range e.Elements {
				if _, err := a.inferExprExpected(el, sc, expected.Elements[i]); err != nil {
					return nil, err
				}
			}
			a.program.ExprTypes[expr] = expected
			return expected, nil
		}
	}

	got, err := a.inferExpr(expr, sc)
	if err != nil {
		return nil, err
	}
	if !types.Equal(got, expected) {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentType, expr.Loc(),
			fmt.Sprintf("expected type %s, got %s", expected, got)).With("expected", expected.String()).With("found", got.String())
	}
	return expected, nil
}

// evalConstExprExpected folds expr to a constant, same as evalConstExpr,
// but lets expected narrow a bare (or negated) integer literal instead of
// defaulting it to field and then rejecting the declared type as a
// mismatch.
func (a *Analyzer) evalConstExprExpected(expr syntax.Expr, sc *scope.Scope, expected *types.Type) (element.Const, error) {
	if expected != nil {
		if lit, ok := expr.(*syntax.LiteralExpr); ok && lit.Kind == syntax.LiteralInteger {
			return a.literalIntegerAs(lit, expected)
		}
		if un, ok := expr.(*syntax.UnaryExpr); ok && un.Op == syntax.OpNeg && isNegatableInExpectedContext(expected) {
			if lit, ok := un.Operand.(*syntax.LiteralExpr); ok && lit.Kind == syntax.LiteralInteger {
				c, err := a.literalIntegerAs(lit, expected)
				if err != nil {
					return element.Const{}, err
				}
				c.Field = c.Field.Neg()
				if !c.InRange() {
					return element.Const{}, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindIntegerOverflow, lit.Location,
						fmt.Sprintf("constant value does not fit in %s", expected))
				}
				return c, nil
			}
		}
	}

	c, err := a.evalConstExpr(expr, sc)
	if err != nil {
		return element.Const{}, err
	}
	if expected != nil && !types.Equal(c.Type, expected) {
		return element.Const{}, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentType, expr.Loc(),
			fmt.Sprintf("declared type %s does not match initializer type %s", expected, c.Type)).
			With("expected", expected.String()).With("found", c.Type.String())
	}
	return c, nil
}

func isNegatableInExpectedContext(expected *types.Type) bool {
	return expected.Kind == types.KindField || (expected.Kind == types.KindInteger && expected.Signed)
}

func (a *Analyzer) literalIntegerAs(e *syntax.LiteralExpr, target *types.Type) (element.Const, error) {
	f, ok := element.FieldFromDecimal(decodeIntegerLiteral(e.Integer))
	if !ok {
		return element.Const{}, diagnostics.New(diagnostics.CategoryLexical, diagnostics.KindInvalidIntegerLiteral, e.Location,
			fmt.Sprintf("invalid integer literal %q", e.Integer.Digits))
	}
	c := element.Const{Type: target, Field: f}
	if !c.InRange() {
		return element.Const{}, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindIntegerOverflow, e.Location,
			fmt.Sprintf("integer literal %s does not fit in %s", e.Integer.Digits, target)).With("type", target.String())
	}
	return c, nil
}

func (a *Analyzer) inferArrayExpected(e *syntax.ArrayExpr, sc *scope.Scope, expected *types.Type) (*types.Type, error) {
	if e.Repeat != nil {
		if _, err := a.inferExprExpected(e.Repeat.Value, sc, expected.Element); err != nil {
			return nil, err
		}
		count, err := a.evalConstExpr(e.Repeat.Count, sc)
		if err != nil {
			return nil, err
		}
		n := int(count.Field.BigInt().Int64())
		if n != expected.Size {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArrayNewLengthInvalid, e.Repeat.Count.Loc(),
				fmt.Sprintf("array length mismatch: expected %d, got %d", expected.Size, n))
		}
		a.program.ExprTypes[e] = expected
		return expected, nil
	}

	if len(e.Elements) != expected.Size {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArrayNewLengthInvalid, e.Location,
			fmt.Sprintf("array length mismatch: expected %d, got %d", expected.Size, len(e.Elements)))
	}
	for _, el := range e.Elements {
		if _, err := a.inferExprExpected(el, sc, expected.Element); err != nil {
			return nil, err
		}
	}
	a.program.ExprTypes[e] = expected
	return expected, nil
}

// isIntegerLiteralish reports whether expr is a bare integer literal or its
// negation - the only expression shapes with no type of their own, whose
// type a binary operator's other, already-typed operand can supply.
func isIntegerLiteralish(expr syntax.Expr) bool {
	switch e := expr.(type) {
	case *syntax.LiteralExpr:
		return e.Kind == syntax.LiteralInteger
	case *syntax.UnaryExpr:
		return e.Op == syntax.OpNeg && isIntegerLiteralish(e.Operand)
	}
	return false
}

// inferBinaryOperandTypes infers a binary expression's two operand types,
// letting a concretely-typed operand supply the expected type for a bare
// (untyped) integer-literal peer on the other side.
func (a *Analyzer) inferBinaryOperandTypes(e *syntax.BinaryExpr, sc *scope.Scope) (*types.Type, *types.Type, error) {
	leftIsLit := isIntegerLiteralish(e.Left)
	rightIsLit := isIntegerLiteralish(e.Right)

	switch {
	case !leftIsLit && rightIsLit:
		left, err := a.inferExpr(e.Left, sc)
		if err != nil {
			return nil, nil, err
		}
		right, err := a.inferExprExpected(e.Right, sc, left)
		if err != nil {
			return nil, nil, err
		}
		return left, right, nil

	case leftIsLit && !rightIsLit:
		right, err := a.inferExpr(e.Right, sc)
		if err != nil {
			return nil, nil, err
		}
		left, err := a.inferExprExpected(e.Left, sc, right)
		if err != nil {
			return nil, nil, err
		}
		return left, right, nil

	default:
		left, err := a.inferExpr(e.Left, sc)
		if err != nil {
			return nil, nil, err
		}
		right, err := a.inferExpr(e.Right, sc)
		if err != nil {
			return nil, nil, err
		}
		return left, right, nil
	}
}

// defaultLoopIndexType is the width an unannotated `for i in 0..10 {}`
// loop variable takes when neither bound carries a concrete type of its
// own: wide enough for any realistic iteration count without forcing
// every loop to spell out a bound's width.
var defaultLoopIndexType = types.Integer(false, 32)

// inferForBoundsTypes infers a for loop's low/high bound types, letting a
// concretely-typed bound supply the expected type for a bare literal on
// the other side; when both bounds are bare literals, they default to
// defaultLoopIndexType together.
func (a *Analyzer) inferForBoundsTypes(s *syntax.ForStmt, sc *scope.Scope) (*types.Type, *types.Type, error) {
	lowIsLit := isIntegerLiteralish(s.Low)
	highIsLit := isIntegerLiteralish(s.High)

	switch {
	case lowIsLit && highIsLit:
		if _, err := a.inferExprExpected(s.Low, sc, defaultLoopIndexType); err != nil {
			return nil, nil, err
		}
		if _, err := a.inferExprExpected(s.High, sc, defaultLoopIndexType); err != nil {
			return nil, nil, err
		}
		return defaultLoopIndexType, defaultLoopIndexType, nil

	case !lowIsLit && highIsLit:
		low, err := a.inferExpr(s.Low, sc)
		if err != nil {
			return nil, nil, err
		}
		high, err := a.inferExprExpected(s.High, sc, low)
		if err != nil {
			return nil, nil, err
		}
		return low, high, nil

	case lowIsLit && !highIsLit:
		high, err := a.inferExpr(s.High, sc)
		if err != nil {
			return nil, nil, err
		}
		low, err := a.inferExprExpected(s.Low, sc, high)
		if err != nil {
			return nil, nil, err
		}
		return low, high, nil

	default:
		low, err := a.inferExpr(s.Low, sc)
		if err != nil {
			return nil, nil, err
		}
		high, err := a.inferExpr(s.High, sc)
		if err != nil {
			return nil, nil, err
		}
		return low, high, nil
	}
}
