package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/bytecode"
	"github.com/ingzkp/zinc/compiler"
	"github.com/ingzkp/zinc/source"
)

func TestCompileEndToEnd(t *testing.T) {
	src := `
fn main(a: u32, b: u32) -> u32 {
    let sum: u32 = a + b;
    let bonus: u32 = if sum > 10 { 1 } else { 0 };
    sum + bonus
}
`
	tree := &source.Tree{
		RootDir: "/virtual",
		Entry:   &source.Module{Identifier: "main", Path: "/virtual/main.zn", Text: []byte(src)},
	}

	result, err := compiler.Compile(tree, compiler.Options{})
	require.NoError(t, err)
	require.NotNil(t, result.Program)
	assert.True(t, result.Diags.Empty())

	prog := result.Program
	assert.Equal(t, "main", prog.Entry)
	assert.Equal(t, 2, prog.InputWireCount())
	assert.Equal(t, 1, prog.OutputWireCount())

	_, err = bytecode.Encode(prog)
	assert.NoError(t, err)
}

func TestCompileWithSubmodule(t *testing.T) {
	utilSrc := `
const LIMIT: field = 10;
`
	mainSrc := `
mod util;

fn main(x: field) -> field {
    x + LIMIT
}
`
	tree := &source.Tree{
		RootDir: "/virtual",
		Entry: &source.Module{
			Identifier: "main",
			Path:       "/virtual/main.zn",
			Text:       []byte(mainSrc),
			Children: map[string]*source.Module{
				"util": {Identifier: "util", Path: "/virtual/util/mod.zn", Text: []byte(utilSrc)},
			},
		},
	}

	result, err := compiler.Compile(tree, compiler.Options{})
	require.NoError(t, err)
	require.NotNil(t, result.Program)
}

func TestCompileReportsParseDiagnostics(t *testing.T) {
	tree := &source.Tree{
		RootDir: "/virtual",
		Entry:   &source.Module{Identifier: "main", Path: "/virtual/main.zn", Text: []byte(`fn main( -> field { 1 }`)},
	}

	result, err := compiler.Compile(tree, compiler.Options{})
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Diags.Empty())
	assert.Nil(t, result.Program)
}

func TestCompileForLoopEmitsLoopBracketNotUnrolled(t *testing.T) {
	src := `
fn main() -> field {
    let mut total: field = 0;
    for i in 0..10 {
        total = total + 1;
    }
    total
}
`
	tree := &source.Tree{
		RootDir: "/virtual",
		Entry:   &source.Module{Identifier: "main", Path: "/virtual/main.zn", Text: []byte(src)},
	}

	result, err := compiler.Compile(tree, compiler.Options{})
	require.NoError(t, err)
	require.True(t, result.Diags.Empty(), "unexpected diagnostics: %v", result.Diags.Items())

	begin, end := findLoopBracket(t, result.Program.Instructions)
	assert.Equal(t, int64(10), result.Program.Instructions[begin].Operand)
	assert.Contains(t, opsBetween(result.Program.Instructions, begin, end), bytecode.OpAdd)
}

func TestCompileReverseForLoopDecrementsCounter(t *testing.T) {
	src := `
fn main() -> field {
    let mut total: field = 0;
    for i in 10..=0 {
        total = total + 1;
    }
    total
}
`
	tree := &source.Tree{
		RootDir: "/virtual",
		Entry:   &source.Module{Identifier: "main", Path: "/virtual/main.zn", Text: []byte(src)},
	}

	result, err := compiler.Compile(tree, compiler.Options{})
	require.NoError(t, err)
	require.True(t, result.Diags.Empty(), "unexpected diagnostics: %v", result.Diags.Items())

	begin, end := findLoopBracket(t, result.Program.Instructions)
	assert.Equal(t, int64(11), result.Program.Instructions[begin].Operand)
	assert.Contains(t, opsBetween(result.Program.Instructions, begin, end), bytecode.OpSub)
}

func findLoopBracket(t *testing.T, instrs []bytecode.Instruction) (begin, end int) {
	t.Helper()
	begin, end = -1, -1
	for i, in := range instrs {
		switch in.Op {
		case bytecode.OpLoopBegin:
			begin = i
		case bytecode.OpLoopEnd:
			end = i
		}
	}
	require.NotEqual(t, -1, begin, "no loop.begin instruction emitted")
	require.NotEqual(t, -1, end, "no loop.end instruction emitted")
	return begin, end
}

func opsBetween(instrs []bytecode.Instruction, begin, end int) []bytecode.Opcode {
	var ops []bytecode.Opcode
	for i := begin + 1; i < end; i++ {
		ops = append(ops, instrs[i].Op)
	}
	return ops
}

func TestCompileReportsSemanticDiagnostics(t *testing.T) {
	tree := &source.Tree{
		RootDir: "/virtual",
		Entry:   &source.Module{Identifier: "main", Path: "/virtual/main.zn", Text: []byte(`fn helper() -> field { 1 }`)},
	}

	result, err := compiler.Compile(tree, compiler.Options{})
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Diags.Empty())
}
