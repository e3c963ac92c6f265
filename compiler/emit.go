package compiler

import (
	"fmt"
	"math/big"

	"github.com/ingzkp/zinc/bytecode"
	"github.com/ingzkp/zinc/semantic"
	"github.com/ingzkp/zinc/semantic/stdlib"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

// emitter lowers a type-checked semantic.Program to a bytecode.Program:
// a single pass over every function's body, walking the same syntax
// tree the analyzer already annotated with types in ExprTypes. `for`
// loops with compile-time-constant bounds lower to a single LoopBegin/
// LoopEnd-bracketed body rather than unrolling.
type emitter struct {
	b       *bytecode.Builder
	prog    *semantic.Program
	locals  map[string]int
	nextLoc int
}

// Emit lowers prog into a linked bytecode.Program, starting from `main`.
func Emit(prog *semantic.Program) (*bytecode.Program, error) {
	b := bytecode.NewBuilder()
	b.SetSchema(prog.InputNames, prog.InputTypes, prog.OutputTypes)

	e := &emitter{b: b, prog: prog}
	if err := e.emitFunction("main", prog.Entry); err != nil {
		return nil, err
	}
	for name, fn := range prog.Functions {
		if name == "main" {
			continue
		}
		e2 := &emitter{b: b, prog: prog}
		if err := e2.emitFunction(name, fn); err != nil {
			return nil, err
		}
	}
	b.Emit(bytecode.OpHalt, 0)
	return b.Finish()
}

func (e *emitter) emitFunction(name string, fn *semantic.Function) error {
	e.locals = make(map[string]int)
	e.nextLoc = 0
	for _, p := range fn.Params {
		e.declareLocal(p.Name)
	}
	e.b.BeginFunction(name, len(fn.Params))
	if err := e.emitBlock(fn.Body); err != nil {
		return fmt.Errorf("function %s: %w", name, err)
	}
	e.b.Emit(bytecode.OpReturn, 0)
	return nil
}

func (e *emitter) declareLocal(name string) int {
	idx := e.nextLoc
	e.locals[name] = idx
	e.nextLoc++
	return idx
}

func (e *emitter) emitBlock(block *syntax.BlockExpr) error {
	for _, stmt := range block.Statements {
		if err := e.emitStmt(stmt); err != nil {
			return err
		}
	}
	if block.Tail != nil {
		return e.emitExpr(block.Tail)
	}
	return nil
}

func (e *emitter) emitStmt(stmt syntax.Stmt) error {
	switch s := stmt.(type) {
	case *syntax.LetStmt:
		if err := e.emitExpr(s.Value); err != nil {
			return err
		}
		e.b.Emit(bytecode.OpStoreLocal, int64(e.declareLocal(s.Name)))
		return nil

	case *syntax.ConstStmt:
		// Constants fold away entirely; nothing to emit.
		return nil

	case *syntax.ForStmt:
		return e.emitFor(s)

	case *syntax.ExpressionStmt:
		if err := e.emitExpr(s.Expr); err != nil {
			return err
		}
		if s.HasSemicolon {
			if t, ok := e.prog.ExprTypes[s.Expr]; ok && t.Kind != types.KindUnit {
				e.b.Emit(bytecode.OpPop, 0)
			}
		}
		return nil

	case *syntax.TypeStmt, *syntax.StructStmt, *syntax.EnumStmt, *syntax.UseStmt, *syntax.ModStmt, *syntax.StaticStmt, *syntax.FnStmt, *syntax.ImplStmt:
		return nil

	default:
		return fmt.Errorf("cannot emit statement")
	}
}

// emitFor lowers `for i in a..b { ... }` to a single copy of the body
// bracketed by LoopBegin(count)/LoopEnd rather than unrolling it: i is
// seeded once before LoopBegin, then advanced by one explicit Add/Sub at
// the end of the (single) body. If a > b the range runs in reverse and
// the counter decrements; LoopBegin's operand is always the positive
// iteration count regardless of direction.
func (e *emitter) emitFor(s *syntax.ForStmt) error {
	lowConst, lowErr := constIntOf(e.prog, s.Low)
	highConst, highErr := constIntOf(e.prog, s.High)
	if lowErr != nil || highErr != nil {
		return fmt.Errorf("for loop bounds must be compile-time constants")
	}

	reverse := lowConst > highConst
	var count int64
	if reverse {
		count = lowConst - highConst
	} else {
		count = highConst - lowConst
	}
	if s.Inclusive {
		count++
	}

	idx := e.declareLocal(s.Variable)
	e.b.Emit(bytecode.OpPushConst, lowConst)
	e.b.Emit(bytecode.OpStoreLocal, int64(idx))

	e.b.Emit(bytecode.OpLoopBegin, count)
	if s.While != nil {
		skip := e.b.NewLabel("for_skip")
		if err := e.emitExpr(s.While); err != nil {
			return err
		}
		e.b.JumpIfFalse(skip)
		if err := e.emitBlock(s.Body); err != nil {
			return err
		}
		e.b.Label(skip)
	} else if err := e.emitBlock(s.Body); err != nil {
		return err
	}

	e.b.Emit(bytecode.OpLoadLocal, int64(idx))
	e.b.Emit(bytecode.OpPushConst, 1)
	if reverse {
		e.b.Emit(bytecode.OpSub, 0)
	} else {
		e.b.Emit(bytecode.OpAdd, 0)
	}
	e.b.Emit(bytecode.OpStoreLocal, int64(idx))
	e.b.Emit(bytecode.OpLoopEnd, 0)
	return nil
}

// constIntOf evaluates an expression that the analyzer already proved is
// a compile-time integer constant (for-loop bounds); the emitter
// re-derives the numeric value from the literal/const AST rather than
// threading folded values through from the analyzer.
func constIntOf(prog *semantic.Program, expr syntax.Expr) (int64, error) {
	switch e := expr.(type) {
	case *syntax.LiteralExpr:
		if e.Kind != syntax.LiteralInteger {
			return 0, fmt.Errorf("not an integer literal")
		}
		return parseLiteralInt(e), nil
	case *syntax.IdentifierExpr:
		if c, ok := prog.Constants[e.Name]; ok {
			return c.Field.BigInt().Int64(), nil
		}
	}
	return 0, fmt.Errorf("not a compile-time constant")
}

func (e *emitter) emitExpr(expr syntax.Expr) error {
	switch ex := expr.(type) {
	case *syntax.LiteralExpr:
		return e.emitLiteral(ex)

	case *syntax.IdentifierExpr:
		if idx, ok := e.locals[ex.Name]; ok {
			e.b.Emit(bytecode.OpLoadLocal, int64(idx))
			return nil
		}
		if c, ok := e.prog.Constants[ex.Name]; ok {
			e.pushFieldConst(c.Field.BigInt())
			return nil
		}
		return fmt.Errorf("undeclared identifier %q at emission time", ex.Name)

	case *syntax.PathExpr:
		name := joinPath(ex.Segments)
		if c, ok := e.prog.Constants[name]; ok {
			e.pushFieldConst(c.Field.BigInt())
			return nil
		}
		return fmt.Errorf("undeclared path %q at emission time", name)

	case *syntax.BlockExpr:
		return e.emitBlock(ex)

	case *syntax.ConditionalExpr:
		return e.emitConditional(ex)

	case *syntax.BinaryExpr:
		return e.emitBinary(ex)

	case *syntax.UnaryExpr:
		if err := e.emitExpr(ex.Operand); err != nil {
			return err
		}
		switch ex.Op {
		case syntax.OpNeg:
			e.b.Emit(bytecode.OpNeg, 0)
		case syntax.OpNot:
			e.b.Emit(bytecode.OpNot, 0)
		}
		return nil

	case *syntax.CastExpr:
		if err := e.emitExpr(ex.Operand); err != nil {
			return err
		}
		e.b.Emit(bytecode.OpCast, 0)
		return nil

	case *syntax.IndexExpr:
		return e.emitIndex(ex)

	case *syntax.CallExpr:
		return e.emitCall(ex)

	case *syntax.ReturnExpr:
		if ex.Value != nil {
			if err := e.emitExpr(ex.Value); err != nil {
				return err
			}
		}
		e.b.Emit(bytecode.OpReturn, 0)
		return nil

	case *syntax.LoopExpr:
		top := e.b.NewLabel("loop_top")
		e.b.Label(top)
		if err := e.emitBlock(ex.Body); err != nil {
			return err
		}
		e.b.Jump(top)
		return nil

	case *syntax.BreakExpr, *syntax.ContinueExpr:
		// break/continue are rejected: the builder keeps no stack of
		// enclosing loop exits to jump to, so a `loop` body can only be
		// left through `return`. `for` lowers to a LoopBegin/LoopEnd
		// bracket (see emitFor) and needs neither.
		return fmt.Errorf("break/continue are not yet supported by this emitter")

	default:
		return fmt.Errorf("cannot emit expression")
	}
}

func (e *emitter) emitLiteral(lit *syntax.LiteralExpr) error {
	switch lit.Kind {
	case syntax.LiteralBoolean:
		if lit.Boolean {
			e.b.Emit(bytecode.OpPushConst, 1)
		} else {
			e.b.Emit(bytecode.OpPushConst, 0)
		}
		return nil
	case syntax.LiteralInteger:
		e.b.Emit(bytecode.OpPushConst, parseLiteralInt(lit))
		return nil
	case syntax.LiteralString:
		idx := e.b.InternDebugString(lit.String)
		e.b.Emit(bytecode.OpPushConst, int64(idx))
		return nil
	default:
		return fmt.Errorf("unrecognized literal kind")
	}
}

func (e *emitter) emitConditional(cond *syntax.ConditionalExpr) error {
	if err := e.emitExpr(cond.Condition); err != nil {
		return err
	}
	elseLabel := e.b.NewLabel("else")
	endLabel := e.b.NewLabel("endif")
	e.b.JumpIfFalse(elseLabel)
	if err := e.emitBlock(cond.Then); err != nil {
		return err
	}
	e.b.Jump(endLabel)
	e.b.Label(elseLabel)
	if cond.Else != nil {
		if err := e.emitExpr(cond.Else); err != nil {
			return err
		}
	}
	e.b.Label(endLabel)
	return nil
}

func (e *emitter) emitBinary(bin *syntax.BinaryExpr) error {
	if bin.Op == syntax.OpAssign {
		if err := e.emitExpr(bin.Right); err != nil {
			return err
		}
		return e.emitStoreTo(bin.Left)
	}

	// The instruction set compares only with Eq/Lt/LtEq: a > b is emitted
	// as b < a, a >= b as b <= a, and a != b as Eq followed by Not.
	left, right := bin.Left, bin.Right
	if bin.Op == syntax.OpGt || bin.Op == syntax.OpGtEq {
		left, right = right, left
	}
	if err := e.emitExpr(left); err != nil {
		return err
	}
	if err := e.emitExpr(right); err != nil {
		return err
	}
	op, ok := binaryOpcodes[bin.Op]
	if !ok {
		return fmt.Errorf("operator has no bytecode translation")
	}
	e.b.Emit(op, 0)
	if bin.Op == syntax.OpNotEq {
		e.b.Emit(bytecode.OpNot, 0)
	}
	return nil
}

var binaryOpcodes = map[syntax.BinaryOp]bytecode.Opcode{
	syntax.OpAdd: bytecode.OpAdd, syntax.OpSub: bytecode.OpSub,
	syntax.OpMul: bytecode.OpMul, syntax.OpDiv: bytecode.OpDiv,
	syntax.OpEq: bytecode.OpEq, syntax.OpLt: bytecode.OpLt, syntax.OpLtEq: bytecode.OpLtEq,
	syntax.OpNotEq: bytecode.OpEq, syntax.OpGt: bytecode.OpLt, syntax.OpGtEq: bytecode.OpLtEq,
	syntax.OpAnd: bytecode.OpAnd, syntax.OpOr: bytecode.OpOr, syntax.OpXor: bytecode.OpXor,
	syntax.OpBitAnd: bytecode.OpBitAnd, syntax.OpBitOr: bytecode.OpBitOr, syntax.OpBitXor: bytecode.OpBitXor,
}

func (e *emitter) emitStoreTo(target syntax.Expr) error {
	switch t := target.(type) {
	case *syntax.IdentifierExpr:
		idx, ok := e.locals[t.Name]
		if !ok {
			return fmt.Errorf("assignment to undeclared local %q", t.Name)
		}
		e.b.Emit(bytecode.OpStoreLocal, int64(idx))
		return nil
	default:
		return fmt.Errorf("assignment to a composite place is not yet supported by this emitter")
	}
}

func (e *emitter) emitIndex(idx *syntax.IndexExpr) error {
	if err := e.emitExpr(idx.Operand); err != nil {
		return err
	}
	if err := e.emitExpr(idx.Index); err != nil {
		return err
	}
	e.b.Emit(bytecode.OpArrayLoad, 0)
	return nil
}

func (e *emitter) emitCall(call *syntax.CallExpr) error {
	var name string
	switch callee := call.Callee.(type) {
	case *syntax.IdentifierExpr:
		name = callee.Name
	case *syntax.PathExpr:
		name = joinPath(callee.Segments)
	default:
		return fmt.Errorf("unsupported call target")
	}

	if intr, ok := stdlib.Lookup(name); ok {
		return e.emitIntrinsic(intr, call)
	}

	if lib, ok := stdlib.LookupLibrary(name); ok {
		for _, arg := range call.Arguments {
			if err := e.emitExpr(arg); err != nil {
				return err
			}
		}
		e.b.Emit(bytecode.OpCallLibrary, lib.ID)
		return nil
	}

	for _, arg := range call.Arguments {
		if err := e.emitExpr(arg); err != nil {
			return err
		}
	}
	entry, ok := e.prog.Functions[name]
	if !ok {
		return fmt.Errorf("undeclared function %q at emission time", name)
	}
	if entry.IsConstFn {
		return e.inlineConstFn(name, entry, call)
	}
	e.b.Emit(bytecode.OpCall, int64(len(call.Arguments)))
	return nil
}

// inlineConstFn substitutes a const fn call by emitting its body directly
// against fresh locals bound to the call's (already-emitted) arguments,
// since const fn has no call-instruction representation of its own: it
// exists purely to give a struct/enum a named, compile-time-evaluated
// operation.
func (e *emitter) inlineConstFn(name string, fn *semantic.Function, call *syntax.CallExpr) error {
	inline := &emitter{b: e.b, prog: e.prog, locals: make(map[string]int), nextLoc: e.nextLoc}
	for _, p := range fn.Params {
		inline.declareLocal(p.Name)
	}
	// Arguments were already emitted onto the stack in call.Arguments
	// order, so the last argument is on top; pop into locals back to
	// front to land each value in its matching parameter slot.
	for i := len(fn.Params) - 1; i >= 0; i-- {
		e.b.Emit(bytecode.OpStoreLocal, int64(inline.locals[fn.Params[i].Name]))
	}
	return inline.emitBlock(fn.Body)
}

func (e *emitter) emitIntrinsic(intr stdlib.Intrinsic, call *syntax.CallExpr) error {
	switch intr.Name {
	case "dbg":
		for _, arg := range call.Arguments {
			if err := e.emitExpr(arg); err != nil {
				return err
			}
		}
		e.b.Emit(bytecode.OpDebug, int64(len(call.Arguments)))
		return nil
	case "require":
		if err := e.emitExpr(call.Arguments[0]); err != nil {
			return err
		}
		e.b.Emit(bytecode.OpAssert, 0)
		return nil
	default:
		return fmt.Errorf("unrecognized intrinsic %q", intr.Name)
	}
}

func (e *emitter) pushFieldConst(n *big.Int) {
	e.b.Emit(bytecode.OpPushConst, n.Int64())
}

func joinPath(segments []string) string {
	out := segments[0]
	for _, s := range segments[1:] {
		out += "::" + s
	}
	return out
}

func parseLiteralInt(lit *syntax.LiteralExpr) int64 {
	n := new(big.Int)
	n.SetString(lit.Integer.Digits, int(lit.Integer.Radix))
	return n.Int64()
}
