// Package bytecode defines the instruction set the compiler emits and
// the Program container that carries it alongside the circuit's
// input/output wire schema.
package bytecode

// Opcode identifies one VM instruction. The VM is a stack machine over
// field elements: every arithmetic and comparison opcode pops its
// operands and pushes one result.
type Opcode byte

const (
	OpNop Opcode = iota
	OpPushConst
	OpPushField  // push an immediate field constant from the Program's constant pool
	OpLoadLocal  // push local slot N
	OpStoreLocal // pop into local slot N
	OpDup
	OpPop

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg

	OpAnd
	OpOr
	OpXor
	OpNot

	OpBitAnd
	OpBitOr
	OpBitXor

	OpEq
	OpLt
	OpLtEq

	OpRangeCheck // pop value, assert it fits in operand bits (unsigned)
	OpCast       // pop value, reinterpret/range-check against operand type tag

	OpJump
	OpJumpIfFalse

	OpLoopBegin // operand = iteration count; brackets one loop body, run that many times
	OpLoopEnd

	OpCall
	OpCallLibrary // operand = library function identifier (see semantic/stdlib); arguments pushed by the caller in declaration order
	OpReturn

	OpArrayLoad  // pop index, pop array-base local slot, push element
	OpArrayStore // pop value, pop index, pop array-base local slot

	OpAssert // pop bool, halt witness generation if false
	OpDebug  // pop N values (operand = N), print against a constant-pool format string

	OpHalt
)

var opcodeNames = map[Opcode]string{
	OpNop: "nop", OpPushConst: "push.const", OpPushField: "push.field",
	OpLoadLocal: "load.local", OpStoreLocal: "store.local", OpDup: "dup", OpPop: "pop",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpNeg: "neg",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not",
	OpBitAnd: "bit.and", OpBitOr: "bit.or", OpBitXor: "bit.xor",
	OpEq: "eq", OpLt: "lt", OpLtEq: "lteq",
	OpRangeCheck: "range.check", OpCast: "cast",
	OpJump: "jump", OpJumpIfFalse: "jump.if.false",
	OpLoopBegin: "loop.begin", OpLoopEnd: "loop.end",
	OpCall: "call", OpCallLibrary: "call.library", OpReturn: "return",
	OpArrayLoad: "array.load", OpArrayStore: "array.store",
	OpAssert: "assert", OpDebug: "debug", OpHalt: "halt",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "invalid"
}

// Instruction is one decoded bytecode instruction. Operand's meaning is
// opcode-dependent: a constant-pool index, a local-slot number, a jump
// target instruction index, a bit width, or unused (0).
type Instruction struct {
	Op      Opcode
	Operand int64
}
