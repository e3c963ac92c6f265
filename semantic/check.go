package semantic

import (
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic/element"
	"github.com/ingzkp/zinc/semantic/scope"
	"github.com/ingzkp/zinc/semantic/stdlib"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// checkFunctionBodies type-checks every function and const-fn body in the
// module, including those nested in impl blocks.
func (a *Analyzer) checkFunctionBodies(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *syntax.FnStmt:
			a.checkFunction(s.Name, s)
		case *syntax.ImplStmt:
			for _, item := range s.Items {
				if fn, ok := item.(*syntax.FnStmt); ok {
					a.checkFunction(s.Target+"::"+fn.Name, fn)
				}
			}
		}
	}
}

func (a *Analyzer) checkFunction(name string, s *syntax.FnStmt) {
	fn, ok := a.program.Functions[name]
	if !ok {
		return
	}
	a.currentFn = fn
	fnScope := a.root.Child()
	for _, p := range fn.Params {
		if err := fnScope.Declare(&scope.Item{Kind: scope.ItemVariable, Name: p.Name, Type: p.Type}); err != nil {
			a.redeclared(s.Loc(), err)
		}
	}

	bodyType, err := a.inferBlock(s.Body, fnScope)
	if err != nil {
		a.report(s.Loc(), err)
	} else if !types.Equal(bodyType, fn.ReturnType) && !blockDiverges(s.Body) {
		a.errorf(s.Body.Loc(), "function %s returns %s but its body has type %s", name, fn.ReturnType, bodyType)
	}
	a.currentFn = nil
}

// blockDiverges reports whether a block's tail is a `return`, so a type
// mismatch between its nominal block type and the function's declared
// return type is not actually an error (every path already returned).
func blockDiverges(b *syntax.BlockExpr) bool {
	_, ok := b.Tail.(*syntax.ReturnExpr)
	return ok
}

// inferBlock type-checks a block's statements in a child scope and
// returns the type of its tail expression (Unit if there is none).
func (a *Analyzer) inferBlock(b *syntax.BlockExpr, parent *scope.Scope) (*types.Type, error) {
	blockScope := parent.Child()
	for _, stmt := range b.Statements {
		if err := a.checkStmt(stmt, blockScope); err != nil {
			return nil, err
		}
	}
	if b.Tail == nil {
		return types.Unit, nil
	}
	return a.inferExpr(b.Tail, blockScope)
}

func (a *Analyzer) checkStmt(stmt syntax.Stmt, sc *scope.Scope) error {
	switch s := stmt.(type) {
	case *syntax.LetStmt:
		var declared *types.Type
		if s.Type != nil {
			dt, err := a.resolveTypeExpr(s.Type)
			if err != nil {
				return err
			}
			declared = dt
		}
		valType, err := a.inferExprExpected(s.Value, sc, declared)
		if err != nil {
			return err
		}
		if declared == nil {
			declared = valType
		}
		return sc.Declare(&scope.Item{Kind: scope.ItemVariable, Name: s.Name, Type: declared, Mutable: s.Mutable})

	case *syntax.ConstStmt:
		var declared *types.Type
		if s.Type != nil {
			dt, err := a.resolveTypeExpr(s.Type)
			if err != nil {
				return err
			}
			declared = dt
		}
		c, err := a.evalConstExprExpected(s.Value, sc, declared)
		if err != nil {
			return err
		}
		return sc.Declare(&scope.Item{Kind: scope.ItemConstant, Name: s.Name, Type: c.Type})

	case *syntax.ForStmt:
		lowType, highType, err := a.inferForBoundsTypes(s, sc)
		if err != nil {
			return err
		}
		if lowType.Kind != types.KindInteger || !types.Equal(lowType, highType) {
			return diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, s.Low.Loc(),
				fmt.Sprintf("for loop bounds must be the same integer type, got %s and %s", lowType, highType))
		}
		loopScope := sc.Child()
		if err := loopScope.Declare(&scope.Item{Kind: scope.ItemVariable, Name: s.Variable, Type: lowType}); err != nil {
			return err
		}
		if s.While != nil {
			whileType, err := a.inferExpr(s.While, loopScope)
			if err != nil {
				return err
			}
			if whileType.Kind != types.KindBool {
				return diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, s.While.Loc(),
					fmt.Sprintf("for loop while-condition must be bool, got %s", whileType))
			}
		}
		_, err = a.inferBlock(s.Body, loopScope)
		return err

	case *syntax.ExpressionStmt:
		_, err := a.inferExpr(s.Expr, sc)
		return err

	case *syntax.TypeStmt, *syntax.StructStmt, *syntax.EnumStmt, *syntax.UseStmt, *syntax.ModStmt, *syntax.StaticStmt, *syntax.FnStmt, *syntax.ImplStmt:
		// Already handled in the declaration passes; nested occurrences of
		// these inside a function body are not part of this language.
		return nil

	default:
		return fmt.Errorf("unrecognized statement")
	}
}

// inferExpr type-checks expr, records its resolved type in
// Program.ExprTypes, and returns that type.
func (a *Analyzer) inferExpr(expr syntax.Expr, sc *scope.Scope) (*types.Type, error) {
	t, err := a.inferExprUncached(expr, sc)
	if err != nil {
		return nil, err
	}
	a.program.ExprTypes[expr] = t
	return t, nil
}

func (a *Analyzer) inferExprUncached(expr syntax.Expr, sc *scope.Scope) (*types.Type, error) {
	switch e := expr.(type) {
	case *syntax.LiteralExpr:
		c, err := a.evalLiteral(e)
		if err != nil {
			return nil, err
		}
		return c.Type, nil

	case *syntax.IdentifierExpr:
		item, ok := sc.Lookup(e.Name)
		if ok {
			return item.Type, nil
		}
		if c, ok := a.program.Constants[e.Name]; ok {
			return c.Type, nil
		}
		return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, e.Location,
			fmt.Sprintf("undeclared identifier %q", e.Name)).With("name", e.Name)

	case *syntax.PathExpr:
		return a.inferPath(e, sc)

	case *syntax.BlockExpr:
		return a.inferBlock(e, sc)

	case *syntax.ConditionalExpr:
		return a.inferConditional(e, sc)

	case *syntax.MatchExpr:
		return a.inferMatch(e, sc)

	case *syntax.ArrayExpr:
		return a.inferArray(e, sc)

	case *syntax.TupleExpr:
		elems := make([]*types.Type, len(e.Elements))
		for i, el := range e.Elements {
			t, err := a.inferExpr(el, sc)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return types.Tuple(elems), nil

	case *syntax.StructExpr:
		return a.inferStructLiteral(e, sc)

	case *syntax.BinaryExpr:
		if e.Op == syntax.OpAssign {
			left, err := a.inferExpr(e.Left, sc)
			if err != nil {
				return nil, err
			}
			right, err := a.inferExprExpected(e.Right, sc, left)
			if err != nil {
				return nil, err
			}
			return a.checkAssignment(e.Left, left, right, sc)
		}
		left, right, err := a.inferBinaryOperandTypes(e, sc)
		if err != nil {
			return nil, err
		}
		return element.BinaryResultType(e.Op, left, right, e.Location)

	case *syntax.UnaryExpr:
		operand, err := a.inferExpr(e.Operand, sc)
		if err != nil {
			return nil, err
		}
		return element.UnaryResultType(e.Op, operand, e.Location)

	case *syntax.CastExpr:
		operand, err := a.inferExpr(e.Operand, sc)
		if err != nil {
			return nil, err
		}
		target, err := a.resolveTypeExpr(e.Target)
		if err != nil {
			return nil, err
		}
		if !element.CastAllowed(operand, target) {
			msg := fmt.Sprintf("cannot cast %s to %s", operand, target)
			return nil, diagnostics.New(diagnostics.CategoryElement, diagnostics.KindCastToNonInteger, e.Location, msg).
				With("from", operand.String()).With("to", target.String())
		}
		return target, nil

	case *syntax.FieldExpr:
		return a.inferField(e, sc)

	case *syntax.IndexExpr:
		operand, err := a.inferExpr(e.Operand, sc)
		if err != nil {
			return nil, err
		}
		idxType, err := a.inferExpr(e.Index, sc)
		if err != nil {
			return nil, err
		}
		if operand.Kind != types.KindArray {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, e.Location,
				fmt.Sprintf("cannot index a value of type %s", operand))
		}
		// A bare integer literal index has no type of its own and infers as
		// field; it is accepted as a constant index.
		_, litIndex := e.Index.(*syntax.LiteralExpr)
		if idxType.Kind != types.KindInteger && !(litIndex && idxType.Kind == types.KindField) {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, e.Index.Loc(),
				fmt.Sprintf("array index must be an integer, got %s", idxType))
		}
		return operand.Element, nil

	case *syntax.CallExpr:
		return a.inferCall(e, sc)

	case *syntax.LoopExpr:
		if _, err := a.inferBlock(e.Body, sc); err != nil {
			return nil, err
		}
		return types.Unit, nil

	case *syntax.BreakExpr, *syntax.ContinueExpr:
		return types.Unit, nil

	case *syntax.ReturnExpr:
		var retType *types.Type = types.Unit
		if e.Value != nil {
			var err error
			retType, err = a.inferExpr(e.Value, sc)
			if err != nil {
				return nil, err
			}
		}
		if a.currentFn != nil && !types.Equal(retType, a.currentFn.ReturnType) {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, e.Location,
				fmt.Sprintf("return type %s does not match function return type %s", retType, a.currentFn.ReturnType))
		}
		return types.Unit, nil

	default:
		return nil, fmt.Errorf("unrecognized expression")
	}
}

func (a *Analyzer) checkAssignment(target syntax.Expr, targetType, valueType *types.Type, sc *scope.Scope) (*types.Type, error) {
	if !types.Equal(targetType, valueType) {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, target.Loc(),
			fmt.Sprintf("cannot assign a value of type %s to a place of type %s", valueType, targetType))
	}
	root := assignmentRoot(target)
	if root == "" {
		return types.Unit, nil
	}
	item, ok := sc.Lookup(root)
	if ok && item.Kind == scope.ItemVariable && !item.Mutable {
		return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindInvalidDescriptor, target.Loc(),
			fmt.Sprintf("cannot assign to immutable variable %q", root)).With("name", root)
	}
	return types.Unit, nil
}

func assignmentRoot(e syntax.Expr) string {
	for {
		switch t := e.(type) {
		case *syntax.IdentifierExpr:
			return t.Name
		case *syntax.FieldExpr:
			e = t.Operand
		case *syntax.IndexExpr:
			e = t.Operand
		default:
			return ""
		}
	}
}

func (a *Analyzer) inferPath(e *syntax.PathExpr, sc *scope.Scope) (*types.Type, error) {
	name := pathString(e)
	if c, ok := a.program.Constants[name]; ok {
		return c.Type, nil
	}
	if item, ok := a.root.Lookup(name); ok {
		return item.Type, nil
	}
	if len(e.Segments) == 1 {
		return a.inferExpr(&syntax.IdentifierExpr{Location: e.Location, Name: e.Segments[0]}, sc)
	}
	if len(e.Segments) == 2 {
		if enumType, ok := a.program.Enums[e.Segments[0]]; ok {
			loc := e.Location
			if len(e.SegmentLocations) == 2 {
				loc = e.SegmentLocations[1]
			}
			msg := fmt.Sprintf("enumeration %q has no variant %q", enumType.Name, e.Segments[1])
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindEnumerationVariantNotExists, loc, msg).
				With("enumeration", enumType.Name).With("variant", e.Segments[1])
		}
	}
	loc := e.Location
	if n := len(e.SegmentLocations); n > 0 {
		loc = e.SegmentLocations[n-1]
	}
	return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, loc,
		fmt.Sprintf("undeclared path %q", name)).With("name", name)
}

func pathString(e *syntax.PathExpr) string {
	out := e.Segments[0]
	for _, s := range e.Segments[1:] {
		out += "::" + s
	}
	return out
}

func (a *Analyzer) inferConditional(e *syntax.ConditionalExpr, sc *scope.Scope) (*types.Type, error) {
	condType, err := a.inferExpr(e.Condition, sc)
	if err != nil {
		return nil, err
	}
	if condType.Kind != types.KindBool {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, e.Condition.Loc(),
			fmt.Sprintf("if condition must be bool, got %s", condType))
	}
	thenType, err := a.inferBlock(e.Then, sc)
	if err != nil {
		return nil, err
	}
	if e.Else == nil {
		if thenType.Kind != types.KindUnit {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, e.Then.Loc(),
				fmt.Sprintf("if without else must have a unit-valued branch, got %s", thenType))
		}
		return types.Unit, nil
	}
	elseType, err := a.inferExpr(e.Else, sc)
	if err != nil {
		return nil, err
	}
	if !types.Equal(thenType, elseType) {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, e.Else.Loc(),
			fmt.Sprintf("if/else branches have different types: %s and %s", thenType, elseType))
	}
	return thenType, nil
}

func (a *Analyzer) inferArray(e *syntax.ArrayExpr, sc *scope.Scope) (*types.Type, error) {
	if e.Repeat != nil {
		valType, err := a.inferExpr(e.Repeat.Value, sc)
		if err != nil {
			return nil, err
		}
		count, err := a.evalConstExpr(e.Repeat.Count, sc)
		if err != nil {
			return nil, err
		}
		return types.Array(valType, int(count.Field.BigInt().Int64())), nil
	}
	var elemType *types.Type
	for _, el := range e.Elements {
		t, err := a.inferExpr(el, sc)
		if err != nil {
			return nil, err
		}
		if elemType == nil {
			elemType = t
		} else if !types.Equal(elemType, t) {
			return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindTypeMismatch, el.Loc(),
				fmt.Sprintf("array elements must share a type: %s vs %s", elemType, t))
		}
	}
	if elemType == nil {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArrayNewLengthInvalid, e.Location,
			"cannot infer the type of an empty array literal")
	}
	return types.Array(elemType, len(e.Elements)), nil
}

func (a *Analyzer) inferStructLiteral(e *syntax.StructExpr, sc *scope.Scope) (*types.Type, error) {
	name := pathString(e.Path)
	st, ok := a.program.Structs[name]
	if !ok {
		return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, e.Path.Loc(),
			fmt.Sprintf("undeclared struct %q", name)).With("name", name)
	}
	if len(e.Fields) != len(st.Fields) {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentCount, e.Location,
			fmt.Sprintf("struct %s requires %d fields, got %d", name, len(st.Fields), len(e.Fields)))
	}
	for i, f := range e.Fields {
		want := st.Fields[i]
		if f.Name != want.Name {
			return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindStructureFieldDoesNotExist, e.Location,
				fmt.Sprintf("struct %s field %d: expected %q, got %q", name, i, want.Name, f.Name)).With("field", f.Name)
		}
		if _, err := a.inferExprExpected(f.Value, sc, want.Type); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (a *Analyzer) inferField(e *syntax.FieldExpr, sc *scope.Scope) (*types.Type, error) {
	operand, err := a.inferExpr(e.Operand, sc)
	if err != nil {
		return nil, err
	}
	if e.IsTupleField {
		if operand.Kind != types.KindTuple || e.TupleIndex >= len(operand.Elements) {
			return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindTupleFieldDoesNotExist, e.Location,
				fmt.Sprintf("type %s has no tuple field .%d", operand, e.TupleIndex))
		}
		return operand.Elements[e.TupleIndex], nil
	}
	if operand.Kind != types.KindStruct {
		return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindStructureFieldDoesNotExist, e.Location,
			fmt.Sprintf("type %s has no field %q", operand, e.FieldName)).With("field", e.FieldName)
	}
	for _, f := range operand.Fields {
		if f.Name == e.FieldName {
			return f.Type, nil
		}
	}
	return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindStructureFieldDoesNotExist, e.Location,
		fmt.Sprintf("struct %s has no field %q", operand.Name, e.FieldName)).With("field", e.FieldName)
}

func (a *Analyzer) inferCall(e *syntax.CallExpr, sc *scope.Scope) (*types.Type, error) {
	var name string
	switch callee := e.Callee.(type) {
	case *syntax.IdentifierExpr:
		name = callee.Name
		if intr, ok := stdlib.Lookup(name); ok {
			return a.checkIntrinsicCall(intr, e, sc)
		}
	case *syntax.PathExpr:
		// Target::method(args), a const fn attached via an impl block, or
		// a std::/zksync:: library call.
		name = pathString(callee)
		if lib, ok := stdlib.LookupLibrary(name); ok {
			return a.checkLibraryCall(lib, e, sc)
		}
	default:
		return nil, diagnostics.New(diagnostics.CategoryInvariant, diagnostics.KindInvariantViolation, e.Location,
			"callee must be a named function")
	}

	item, ok := sc.Lookup(name)
	if !ok || item.Kind != scope.ItemFunction {
		return nil, diagnostics.New(diagnostics.CategoryScope, diagnostics.KindItemUndeclared, e.Location,
			fmt.Sprintf("undeclared function %q", name)).With("name", name)
	}
	if len(e.Arguments) != len(item.Params) {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentCount, e.Location,
			fmt.Sprintf("%s expects %d arguments, got %d", name, len(item.Params), len(e.Arguments))).
			With("function", name)
	}
	for i, arg := range e.Arguments {
		if _, err := a.inferExprExpected(arg, sc, item.Params[i]); err != nil {
			return nil, err
		}
	}
	return item.Type, nil
}

func (a *Analyzer) checkIntrinsicCall(intr stdlib.Intrinsic, e *syntax.CallExpr, sc *scope.Scope) (*types.Type, error) {
	if len(e.Arguments) < len(intr.Params) || (!intr.Variadic && len(e.Arguments) != len(intr.Params)) {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentCount, e.Location,
			fmt.Sprintf("%s expects %d arguments, got %d", intr.Name, len(intr.Params), len(e.Arguments))).
			With("function", intr.Name)
	}
	for i, want := range intr.Params {
		if intr.RequiresConstArg[i] {
			if _, err := a.evalConstExpr(e.Arguments[i], sc); err != nil {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentConstantness, e.Arguments[i].Loc(),
					fmt.Sprintf("%s argument %d must be a compile-time constant", intr.Name, i+1)).
					With("function", intr.Name)
			}
		}
		if _, err := a.inferExprExpected(e.Arguments[i], sc, want); err != nil {
			return nil, err
		}
	}
	for _, extra := range e.Arguments[len(intr.Params):] {
		if _, err := a.inferExpr(extra, sc); err != nil {
			return nil, err
		}
	}
	return intr.ReturnType, nil
}

// checkLibraryCall type-checks a std::/zksync:: call: folds every
// constant-required argument, infers the rest, then hands both to the
// catalog entry's own Validate, which knows that function's admissible
// argument shapes and result type (array lengths, bit widths, and the
// like that a single fixed Params signature cannot express generically).
func (a *Analyzer) checkLibraryCall(lib stdlib.LibraryFunction, e *syntax.CallExpr, sc *scope.Scope) (*types.Type, error) {
	if len(e.Arguments) != lib.ArgCount {
		return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentCount, e.Location,
			fmt.Sprintf("%s expects %d arguments, got %d", lib.Name, lib.ArgCount, len(e.Arguments))).
			With("function", lib.Name)
	}

	argTypes := make([]*types.Type, len(e.Arguments))
	constInts := make(map[int]int64)
	for i, arg := range e.Arguments {
		if lib.ConstArgs[i] {
			c, err := a.evalConstExpr(arg, sc)
			if err != nil {
				return nil, diagnostics.New(diagnostics.CategoryTyping, diagnostics.KindArgumentConstantness, arg.Loc(),
					fmt.Sprintf("%s argument %d must be a compile-time constant", lib.Name, i+1)).
					With("function", lib.Name)
			}
			argTypes[i] = c.Type
			constInts[i] = c.Field.BigInt().Int64()
			a.program.ExprTypes[arg] = c.Type
			continue
		}
		t, err := a.inferExpr(arg, sc)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	result, err := lib.Validate(argTypes, constInts, e.Location)
	if err != nil {
		return nil, err
	}
	return result, nil
}
