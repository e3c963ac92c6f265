package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/syntax"
)

func parse(t *testing.T, src string) *syntax.Module {
	t.Helper()
	p := syntax.NewParser([]byte(src), "test.zn")
	mod, diag := p.ParseModule()
	require.Nil(t, diag, "parse error: %v", diag)
	return mod
}

func TestParseFunctionWithParamsAndReturnType(t *testing.T) {
	mod := parse(t, `fn add(a: field, b: field) -> field { a + b }`)
	require.Len(t, mod.Statements, 1)
	fn, ok := mod.Statements[0].(*syntax.FnStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	require.NotNil(t, fn.ReturnType)
	require.NotNil(t, fn.Body.Tail)
}

func TestParseFunctionWithSelfParam(t *testing.T) {
	mod := parse(t, `impl Point { fn sum(self) -> field { self.x } }`)
	require.Len(t, mod.Statements, 1)
	impl, ok := mod.Statements[0].(*syntax.ImplStmt)
	require.True(t, ok)
	require.Len(t, impl.Items, 1)
	fn, ok := impl.Items[0].(*syntax.FnStmt)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
	assert.True(t, fn.Params[0].IsSelf)
}

func TestParseLetWithDeclaredType(t *testing.T) {
	mod := parse(t, `fn main() -> field { let x: u8 = 5; x }`)
	fn := mod.Statements[0].(*syntax.FnStmt)
	let, ok := fn.Body.Statements[0].(*syntax.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	require.NotNil(t, let.Type)
}

func TestParseStructDeclaration(t *testing.T) {
	mod := parse(t, `struct Point { x: field, y: field, }`)
	s, ok := mod.Statements[0].(*syntax.StructStmt)
	require.True(t, ok)
	assert.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields, 2)
}

func TestParseEnumDeclaration(t *testing.T) {
	mod := parse(t, `enum Color { Red, Green, Blue, }`)
	e, ok := mod.Statements[0].(*syntax.EnumStmt)
	require.True(t, ok)
	require.Len(t, e.Variants, 3)
	assert.Equal(t, "Red", e.Variants[0].Name)
}

func TestParseMatchExpression(t *testing.T) {
	mod := parse(t, `
fn main(x: u8) -> field {
    match x {
        0 => 1,
        _ => 2,
    }
}
`)
	fn := mod.Statements[0].(*syntax.FnStmt)
	_, ok := fn.Body.Tail.(*syntax.MatchExpr)
	assert.True(t, ok)
}

func TestParseBinaryOperatorPrecedence(t *testing.T) {
	mod := parse(t, `fn main() -> field { 1 + 2 * 3 }`)
	fn := mod.Statements[0].(*syntax.FnStmt)
	bin, ok := fn.Body.Tail.(*syntax.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.OpAdd, bin.Op)
	rightMul, ok := bin.Right.(*syntax.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.OpMul, rightMul.Op)
}

func TestParseForLoop(t *testing.T) {
	mod := parse(t, `
fn main() -> field {
    for i in 0..10 {
        dbg("{}", i);
    }
    0
}
`)
	fn := mod.Statements[0].(*syntax.FnStmt)
	forStmt, ok := fn.Body.Statements[0].(*syntax.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Variable)
	assert.False(t, forStmt.Inclusive)
}

func TestParseInclusiveRange(t *testing.T) {
	mod := parse(t, `fn main() -> field { for i in 0..=10 { } 0 }`)
	fn := mod.Statements[0].(*syntax.FnStmt)
	forStmt := fn.Body.Statements[0].(*syntax.ForStmt)
	assert.True(t, forStmt.Inclusive)
}

func TestParseStructLiteral(t *testing.T) {
	mod := parse(t, `fn main() -> field { Point { x: 1, y: 2 }.x }`)
	fn := mod.Statements[0].(*syntax.FnStmt)
	field, ok := fn.Body.Tail.(*syntax.FieldExpr)
	require.True(t, ok)
	_, ok = field.Operand.(*syntax.StructExpr)
	assert.True(t, ok)
}

func TestParseArrayRepeatExpression(t *testing.T) {
	mod := parse(t, `fn main() -> field { let xs = [0; 4]; xs[0] }`)
	fn := mod.Statements[0].(*syntax.FnStmt)
	let := fn.Body.Statements[0].(*syntax.LetStmt)
	arr, ok := let.Value.(*syntax.ArrayExpr)
	require.True(t, ok)
	require.NotNil(t, arr.Repeat)
}

func TestParseErrorOnMissingClosingBrace(t *testing.T) {
	p := syntax.NewParser([]byte(`fn main() -> field { 1`), "test.zn")
	_, diag := p.ParseModule()
	assert.NotNil(t, diag)
}

func TestParseConstFn(t *testing.T) {
	mod := parse(t, `
impl Circuit {
    const fn double(x: field) -> field {
        x + x
    }
}
`)
	impl := mod.Statements[0].(*syntax.ImplStmt)
	fn := impl.Items[0].(*syntax.FnStmt)
	assert.True(t, fn.IsConst)
}
