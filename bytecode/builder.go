package bytecode

import (
	"fmt"

	"github.com/ingzkp/zinc/semantic/types"
)

// Builder accumulates a Program's instruction stream one function at a
// time. Labels are forward-resolved in a second pass, the way the
// teacher's assembly emitter lets a jump reference a label defined later
// in the same function: Label records a name at the builder's current
// position, Jump/JumpIfFalse record a pending patch, and Finish resolves
// every patch against the recorded positions before returning the
// Program.
type Builder struct {
	prog *Program

	labelPositions map[string]int
	pendingPatches []patch

	constIndex map[string]int

	labelCount int
}

type patch struct {
	instrIndex int
	label      string
}

// NewBuilder starts an empty program.
func NewBuilder() *Builder {
	return &Builder{
		prog:           &Program{Entry: "main"},
		labelPositions: make(map[string]int),
		constIndex:     make(map[string]int),
	}
}

// NewLabel allocates a unique label name for a synthesized jump target
// (e.g. the join point after an if/else or the top of a for loop).
func (b *Builder) NewLabel(prefix string) string {
	label := fmt.Sprintf("L_%s_%d", prefix, b.labelCount)
	b.labelCount++
	return label
}

// Label marks the current instruction position under name; jumps that
// target it are patched in Finish.
func (b *Builder) Label(name string) {
	b.labelPositions[name] = len(b.prog.Instructions)
}

// Emit appends a plain instruction and returns its index.
func (b *Builder) Emit(op Opcode, operand int64) int {
	b.prog.Instructions = append(b.prog.Instructions, Instruction{Op: op, Operand: operand})
	return len(b.prog.Instructions) - 1
}

// Jump emits an unconditional jump to label, patched once the label's
// position is known.
func (b *Builder) Jump(label string) {
	idx := b.Emit(OpJump, 0)
	b.pendingPatches = append(b.pendingPatches, patch{instrIndex: idx, label: label})
}

// JumpIfFalse emits a conditional jump, consuming the top-of-stack bool.
func (b *Builder) JumpIfFalse(label string) {
	idx := b.Emit(OpJumpIfFalse, 0)
	b.pendingPatches = append(b.pendingPatches, patch{instrIndex: idx, label: label})
}

// PushFieldConst interns a field element's big-endian bytes in the
// constant pool (deduplicated by byte content) and emits a push for it.
func (b *Builder) PushFieldConst(bigEndian []byte) {
	b.Emit(OpPushField, int64(b.intern(bigEndian)))
}

// InternDebugString interns a UTF-8 string in the constant pool and
// returns its index; callers combine the index with OpDebug.
func (b *Builder) InternDebugString(s string) int {
	return b.intern([]byte(s))
}

func (b *Builder) intern(raw []byte) int {
	key := string(raw)
	if idx, ok := b.constIndex[key]; ok {
		return idx
	}
	idx := len(b.prog.Constants)
	b.prog.Constants = append(b.prog.Constants, raw)
	b.constIndex[key] = idx
	return idx
}

// BeginFunction records a new function's entry point at the builder's
// current position.
func (b *Builder) BeginFunction(name string, localCount int) {
	b.prog.Functions = append(b.prog.Functions, FunctionEntry{
		Name:       name,
		Start:      len(b.prog.Instructions),
		LocalCount: localCount,
	})
}

// SetSchema records the circuit's public input/output wire schema,
// derived from main's signature.
func (b *Builder) SetSchema(inputNames []string, inputTypes, outputTypes []*types.Type) {
	b.prog.InputNames = inputNames
	b.prog.InputTypes = inputTypes
	b.prog.OutputTypes = outputTypes
}

// Finish patches every pending jump against its label's recorded
// position and returns the completed Program. It is an error to call
// Finish with a jump targeting a label that was never marked.
func (b *Builder) Finish() (*Program, error) {
	for _, p := range b.pendingPatches {
		pos, ok := b.labelPositions[p.label]
		if !ok {
			return nil, fmt.Errorf("jump to undefined label %q", p.label)
		}
		b.prog.Instructions[p.instrIndex].Operand = int64(pos)
	}
	return b.prog, nil
}
