package semantic

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/lexical"
	"github.com/ingzkp/zinc/semantic/element"
	"github.com/ingzkp/zinc/semantic/scope"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// evalConstExpr folds expr to a compile-time constant: the literal/const
// subset the language allows in array sizes, const/static initializers,
// and enum discriminants. Only module-level constants (Program.Constants)
// fold; sc is consulted to tell a name bound in scope, such as a `let`
// variable or a block-local `const`, from an undeclared one, and such a
// name is reported as not a compile-time constant.
func (a *Analyzer) evalConstExpr(expr syntax.Expr, sc *scope.Scope) (element.Const, error) {
	switch e := expr.(type) {
	case *syntax.LiteralExpr:
		return a.evalLiteral(e)

	case *syntax.IdentifierExpr:
		c, ok := a.program.Constants[e.Name]
		if ok {
			return c, nil
		}
		if _, ok := sc.Lookup(e.Name); ok {
			return element.Const{}, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindNonConstantElement, e.Location,
				fmt.Sprintf("%q is not a compile-time constant", e.Name)).With("name", e.Name)
		}
		return element.Const{}, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, e.Location,
			fmt.Sprintf("undeclared constant %q", e.Name)).With("name", e.Name)

	case *syntax.PathExpr:
		name := strings.Join(e.Segments, "::")
		c, ok := a.program.Constants[name]
		if !ok {
			loc := e.Location
			if n := len(e.SegmentLocations); n > 0 {
				loc = e.SegmentLocations[n-1]
			}
			return element.Const{}, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, loc,
				fmt.Sprintf("undeclared constant %q", name)).With("name", name)
		}
		return c, nil

	case *syntax.UnaryExpr:
		operand, err := a.evalConstExpr(e.Operand, sc)
		if err != nil {
			return element.Const{}, err
		}
		if _, err := element.UnaryResultType(e.Op, operand.Type, e.Location); err != nil {
			return element.Const{}, err
		}
		switch e.Op {
		case syntax.OpNeg:
			operand.Field = operand.Field.Neg()
			return operand, nil
		case syntax.OpNot:
			operand.Bool = !operand.Bool
			return operand, nil
		}
		return element.Const{}, diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, e.Location,
			"unsupported constant unary operator")

	case *syntax.BinaryExpr:
		left, err := a.evalConstExpr(e.Left, sc)
		if err != nil {
			return element.Const{}, err
		}
		right, err := a.evalConstExpr(e.Right, sc)
		if err != nil {
			return element.Const{}, err
		}
		return a.evalConstBinary(e.Op, left, right, e.Location)

	case *syntax.CastExpr:
		operand, err := a.evalConstExpr(e.Operand, sc)
		if err != nil {
			return element.Const{}, err
		}
		target, err := a.resolveTypeExpr(e.Target)
		if err != nil {
			return element.Const{}, err
		}
		if !element.CastAllowed(operand.Type, target) {
			return element.Const{}, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindCastToNonInteger, e.Location,
				fmt.Sprintf("cannot cast %s to %s", operand.Type, target)).With("from", operand.Type.String()).With("to", target.String())
		}
		operand.Type = target
		if !operand.InRange() {
			return element.Const{}, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindIntegerOverflow, e.Location,
				fmt.Sprintf("value does not fit in %s", target)).With("type", target.String())
		}
		return operand, nil

	case *syntax.ArrayExpr:
		return a.evalConstArray(e, sc)

	case *syntax.TupleExpr:
		elems := make([]element.Const, len(e.Elements))
		elemTypes := make([]*types.Type, len(e.Elements))
		for i, el := range e.Elements {
			c, err := a.evalConstExpr(el, sc)
			if err != nil {
				return element.Const{}, err
			}
			elems[i] = c
			elemTypes[i] = c.Type
		}
		return element.Const{Type: types.Tuple(elemTypes), Elements: elems}, nil

	default:
		return element.Const{}, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindNonConstantElement, expr.Loc(),
			"expression is not a compile-time constant")
	}
}

func (a *Analyzer) evalLiteral(e *syntax.LiteralExpr) (element.Const, error) {
	switch e.Kind {
	case syntax.LiteralBoolean:
		return element.Const{Type: types.Bool, Bool: e.Boolean}, nil
	case syntax.LiteralString:
		return element.Const{Type: types.String, Str: e.String}, nil
	case syntax.LiteralInteger:
		f, ok := element.FieldFromDecimal(decodeIntegerLiteral(e.Integer))
		if !ok {
			return element.Const{}, diagnostics.New(diagnostics.CategoryLexical, diagnostics.KindInvalidIntegerLiteral, e.Location,
				fmt.Sprintf("invalid integer literal %q", e.Integer.Digits))
		}
		// An un-annotated literal defaults to field; a surrounding
		// let/const type annotation or binary-operator peer type narrows
		// it to a concrete integer width during type checking.
		return element.Const{Type: types.Field, Field: f}, nil
	default:
		return element.Const{}, diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, e.Location,
			"unrecognized literal kind")
	}
}

func (a *Analyzer) evalConstArray(e *syntax.ArrayExpr, sc *scope.Scope) (element.Const, error) {
	if e.Repeat != nil {
		val, err := a.evalConstExpr(e.Repeat.Value, sc)
		if err != nil {
			return element.Const{}, err
		}
		count, err := a.evalConstExpr(e.Repeat.Count, sc)
		if err != nil {
			return element.Const{}, err
		}
		n := int(count.Field.BigInt().Int64())
		elems := make([]element.Const, n)
		for i := range elems {
			elems[i] = val
		}
		return element.Const{Type: types.Array(val.Type, n), Elements: elems}, nil
	}

	elems := make([]element.Const, len(e.Elements))
	var elemType *types.Type
	for i, el := range e.Elements {
		c, err := a.evalConstExpr(el, sc)
		if err != nil {
			return element.Const{}, err
		}
		if elemType == nil {
			elemType = c.Type
		} else if !types.Equal(elemType, c.Type) {
			return element.Const{}, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, el.Loc(),
				fmt.Sprintf("array elements must share a type: %s vs %s", elemType, c.Type)).
				With("expected", elemType.String()).With("found", c.Type.String())
		}
		elems[i] = c
	}
	if elemType == nil {
		return element.Const{}, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArrayNewLengthInvalid, e.Location,
			"cannot infer the type of an empty array literal")
	}
	return element.Const{Type: types.Array(elemType, len(elems)), Elements: elems}, nil
}

func (a *Analyzer) evalConstBinary(op syntax.BinaryOp, left, right element.Const, loc diagnostics.Location) (element.Const, error) {
	resultType, err := element.BinaryResultType(op, left.Type, right.Type, loc)
	if err != nil {
		return element.Const{}, err
	}
	switch op {
	case syntax.OpAdd:
		return element.Const{Type: resultType, Field: left.Field.Add(right.Field)}, checkRange(resultType, left.Field.Add(right.Field), loc)
	case syntax.OpSub:
		return element.Const{Type: resultType, Field: left.Field.Sub(right.Field)}, checkRange(resultType, left.Field.Sub(right.Field), loc)
	case syntax.OpMul:
		return element.Const{Type: resultType, Field: left.Field.Mul(right.Field)}, checkRange(resultType, left.Field.Mul(right.Field), loc)
	case syntax.OpDiv:
		q, ok := left.Field.Div(right.Field)
		if !ok {
			return element.Const{}, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindDivisionByZero, loc,
				"division by zero in a compile-time constant expression")
		}
		return element.Const{Type: resultType, Field: q}, nil
	case syntax.OpEq:
		return element.Const{Type: types.Bool, Bool: left.Field.Equal(right.Field)}, nil
	case syntax.OpNotEq:
		return element.Const{Type: types.Bool, Bool: !left.Field.Equal(right.Field)}, nil
	case syntax.OpLt:
		return element.Const{Type: types.Bool, Bool: left.Field.Cmp(right.Field) < 0}, nil
	case syntax.OpLtEq:
		return element.Const{Type: types.Bool, Bool: left.Field.Cmp(right.Field) <= 0}, nil
	case syntax.OpGt:
		return element.Const{Type: types.Bool, Bool: left.Field.Cmp(right.Field) > 0}, nil
	case syntax.OpGtEq:
		return element.Const{Type: types.Bool, Bool: left.Field.Cmp(right.Field) >= 0}, nil
	case syntax.OpAnd:
		return element.Const{Type: types.Bool, Bool: left.Bool && right.Bool}, nil
	case syntax.OpOr:
		return element.Const{Type: types.Bool, Bool: left.Bool || right.Bool}, nil
	case syntax.OpXor:
		return element.Const{Type: types.Bool, Bool: left.Bool != right.Bool}, nil
	default:
		return element.Const{}, diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, loc,
			"operator is not supported in a constant expression")
	}
}

func checkRange(t *types.Type, f element.Field, loc diagnostics.Location) error {
	c := element.Const{Type: t, Field: f}
	if !c.InRange() {
		return diagnostics.New(diagnostics.CategoryElement, diagnostics.KindIntegerOverflow, loc,
			fmt.Sprintf("constant value does not fit in %s", t)).With("type", t.String())
	}
	return nil
}

// decodeIntegerLiteral converts a lexed integer literal (any radix) to a
// base-10 digit string element.FieldFromDecimal can parse.
func decodeIntegerLiteral(lit lexical.IntegerLiteral) string {
	n := new(big.Int)
	n.SetString(lit.Digits, int(lit.Radix))
	return n.String()
}
