package bytecode

import (
	"github.com/ingzkp/zinc/semantic/types"
)

// FunctionEntry records one function's code range within Program's flat
// instruction stream, so a call instruction's operand can resolve to a
// start offset without requiring one code section per function.
type FunctionEntry struct {
	Name       string
	Start      int
	LocalCount int
}

// Program is a fully linked circuit: one flat instruction stream, a
// constant pool of field elements and debug strings, the input/output
// wire schema main's signature defines, and a table of function entry
// points so calls resolve without re-parsing.
type Program struct {
	Instructions []Instruction
	Constants    [][]byte // field elements, big-endian, and raw debug-string bytes
	Functions    []FunctionEntry
	Entry        string // always "main"

	InputNames  []string
	InputTypes  []*types.Type
	OutputTypes []*types.Type
}

// FunctionByName finds an entry by name, or ok=false if none matches.
func (p *Program) FunctionByName(name string) (FunctionEntry, bool) {
	for _, f := range p.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return FunctionEntry{}, false
}

// InputWireCount is the total number of circuit input wires, the flat
// sum of every input's type's wire count.
func (p *Program) InputWireCount() int {
	n := 0
	for _, t := range p.InputTypes {
		n += t.FlatWireCount()
	}
	return n
}

// OutputWireCount is the total number of circuit output wires.
func (p *Program) OutputWireCount() int {
	n := 0
	for _, t := range p.OutputTypes {
		n += t.FlatWireCount()
	}
	return n
}
