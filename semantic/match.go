package semantic

import (
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/scope"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// inferMatch type-checks a match expression's scrutinee and every arm,
// requires every arm's body share a single type, and checks the arm
// patterns exhaustively cover the scrutinee's type.
func (a *Analyzer) inferMatch(e *syntax.MatchExpr, sc *scope.Scope) (*types.Type, error) {
	scrutineeType, err := a.inferExpr(e.Scrutinee, sc)
	if err != nil {
		return nil, err
	}
	if len(e.Arms) == 0 {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindNonExhaustiveMatch, e.Loc(),
			"match must have at least one arm")
	}

	var resultType *types.Type
	hasWildcard := false
	coveredBools := map[bool]bool{}
	coveredVariants := map[string]bool{}

	for _, arm := range e.Arms {
		armScope := sc.Child()
		if err := a.checkPatternAgainst(arm.Pattern, scrutineeType, armScope); err != nil {
			return nil, err
		}
		switch p := arm.Pattern.(type) {
		case *syntax.WildcardPattern, *syntax.BindingPattern:
			if hasWildcard {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindDuplicateMatchPattern, arm.Pattern.Loc(),
					"a wildcard or binding arm already covers every remaining case")
			}
			hasWildcard = true
		case *syntax.LiteralPattern:
			if p.Literal.Kind == syntax.LiteralBoolean {
				if coveredBools[p.Literal.Boolean] {
					return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindDuplicateMatchPattern, arm.Pattern.Loc(),
						fmt.Sprintf("duplicate match arm for %v", p.Literal.Boolean)).With("pattern", fmt.Sprintf("%v", p.Literal.Boolean))
				}
				coveredBools[p.Literal.Boolean] = true
			}
		case *syntax.PathPattern:
			name := pathString(p.Path)
			if coveredVariants[name] {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindDuplicateMatchPattern, arm.Pattern.Loc(),
					fmt.Sprintf("duplicate match arm for %s", name)).With("pattern", name)
			}
			coveredVariants[name] = true
		}

		bodyType, err := a.inferExpr(arm.Body, armScope)
		if err != nil {
			return nil, err
		}
		if resultType == nil {
			resultType = bodyType
		} else if !types.Equal(resultType, bodyType) {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, arm.Body.Loc(),
				fmt.Sprintf("match arms have different types: %s and %s", resultType, bodyType)).
				With("expected", resultType.String()).With("found", bodyType.String())
		}
	}

	if !hasWildcard {
		switch scrutineeType.Kind {
		case types.KindBool:
			if !coveredBools[true] || !coveredBools[false] {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindNonExhaustiveMatch, e.Loc(),
					"match over bool is not exhaustive: missing true or false arm")
			}
		case types.KindEnum:
			missing := a.missingEnumVariants(scrutineeType.Name, coveredVariants)
			if len(missing) > 0 {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindNonExhaustiveMatch, e.Loc(),
					fmt.Sprintf("match over %s is not exhaustive: missing variants %v", scrutineeType.Name, missing)).
					With("enumeration", scrutineeType.Name)
			}
		default:
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindNonExhaustiveMatch, e.Loc(),
				fmt.Sprintf("match over %s requires a wildcard or binding arm to be exhaustive", scrutineeType))
		}
	}

	return resultType, nil
}

// missingEnumVariants diffs the variants declared on enumName (tracked as
// "EnumName::Variant" keys in Program.Constants) against the ones a
// match's arms covered.
func (a *Analyzer) missingEnumVariants(enumName string, covered map[string]bool) []string {
	prefix := enumName + "::"
	var missing []string
	for name := range a.program.Constants {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix && !covered[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// checkPatternAgainst validates pattern against scrutineeType and binds
// any names it introduces into armScope.
func (a *Analyzer) checkPatternAgainst(pattern syntax.Pattern, scrutineeType *types.Type, armScope *scope.Scope) error {
	switch p := pattern.(type) {
	case *syntax.WildcardPattern:
		return nil
	case *syntax.BindingPattern:
		return armScope.Declare(&scope.Item{Kind: scope.ItemVariable, Name: p.Name, Type: scrutineeType})
	case *syntax.LiteralPattern:
		c, err := a.evalLiteral(p.Literal)
		if err != nil {
			return err
		}
		if !types.Equal(c.Type, scrutineeType) && !(c.Type.Kind == types.KindField && scrutineeType.Kind == types.KindInteger) {
			return diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, p.Location,
				fmt.Sprintf("pattern type %s does not match scrutinee type %s", c.Type, scrutineeType)).
				With("expected", scrutineeType.String()).With("found", c.Type.String())
		}
		return nil
	case *syntax.PathPattern:
		name := pathString(p.Path)
		c, ok := a.program.Constants[name]
		if !ok {
			return diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, p.Path.Loc(),
				fmt.Sprintf("undeclared pattern %q", name)).With("name", name)
		}
		if !types.Equal(c.Type, scrutineeType) {
			return diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, p.Path.Loc(),
				fmt.Sprintf("pattern %s does not match scrutinee type %s", name, scrutineeType)).
				With("expected", scrutineeType.String()).With("found", c.Type.String())
		}
		return nil
	case *syntax.RangePattern:
		if scrutineeType.Kind != types.KindInteger {
			return diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, p.Location,
				fmt.Sprintf("range pattern requires an integer scrutinee, got %s", scrutineeType)).
				With("expected", "integer").With("found", scrutineeType.String())
		}
		if _, err := a.evalConstExpr(p.Low, armScope); err != nil {
			return err
		}
		if _, err := a.evalConstExpr(p.High, armScope); err != nil {
			return err
		}
		return nil
	default:
		return diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, pattern.Loc(),
			"unrecognized pattern")
	}
}
