package semantic

import (
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/scope"
	"github.com/ingzkp/zinc/semantic/stdlib"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// resolveTypeExpr lowers a parsed TypeExpr into the semantic type model,
// resolving named types (struct, enum, alias, String) against the root
// scope.
func (a *Analyzer) resolveTypeExpr(t syntax.TypeExpr) (*types.Type, error) {
	switch tt := t.(type) {
	case *syntax.UnitType:
		return types.Unit, nil
	case *syntax.BoolType:
		return types.Bool, nil
	case *syntax.IntegerTypeExpr:
		return types.Integer(tt.Signed, tt.Bits), nil
	case *syntax.FieldType:
		return types.Field, nil
	case *syntax.ArrayTypeExpr:
		elem, err := a.resolveTypeExpr(tt.Element)
		if err != nil {
			return nil, err
		}
		size, err := a.evalConstExpr(tt.Size, a.root)
		if err != nil {
			return nil, err
		}
		n := int(size.Field.BigInt().Int64())
		if n < 0 {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArrayNewLengthInvalid, tt.Size.Loc(),
				fmt.Sprintf("array size must be non-negative, got %d", n))
		}
		return types.Array(elem, n), nil
	case *syntax.TupleTypeExpr:
		elems := make([]*types.Type, len(tt.Elements))
		for i, e := range tt.Elements {
			et, err := a.resolveTypeExpr(e)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return types.Tuple(elems), nil
	case *syntax.PathTypeExpr:
		return a.resolveNamedType(tt)
	default:
		return nil, diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, t.Loc(),
			"unrecognized type expression")
	}
}

func (a *Analyzer) resolveNamedType(t *syntax.PathTypeExpr) (*types.Type, error) {
	name := t.Path.Segments[len(t.Path.Segments)-1]
	if st, ok := stdlib.IsStdlibType(name); ok {
		return st, nil
	}
	item, ok := a.root.Lookup(name)
	if !ok || item.Kind != scope.ItemType {
		return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, t.Path.Loc(),
			fmt.Sprintf("undeclared type %q", name)).With("name", name)
	}
	return item.Type, nil
}
