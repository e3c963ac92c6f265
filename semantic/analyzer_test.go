package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/semantic"
	"github.com/ingzkp/zinc/semantic/types"
	"github.com/ingzkp/zinc/syntax"
)

func parseModule(t *testing.T, src string) *syntax.Module {
	t.Helper()
	p := syntax.NewParser([]byte(src), "test.zn")
	mod, diag := p.ParseModule()
	require.Nil(t, diag, "parse error: %v", diag)
	return mod
}

func TestAnalyzeSimpleEntry(t *testing.T) {
	src := `
fn main(a: u8, b: u8) -> u8 {
    let sum: u8 = a + b;
    sum
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	require.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Items())
	require.NotNil(t, prog)
	assert.Equal(t, []string{"a", "b"}, prog.InputNames)
	require.Len(t, prog.InputTypes, 2)
	assert.True(t, types.Equal(prog.InputTypes[0], types.Integer(false, 8)))
	require.Len(t, prog.OutputTypes, 1)
	assert.True(t, types.Equal(prog.OutputTypes[0], types.Integer(false, 8)))
}

func TestAnalyzeRejectsMissingMain(t *testing.T) {
	mod := parseModule(t, `fn helper() -> field { 1 }`)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	assert.False(t, diags.Empty())
}

func TestAnalyzeRejectsRedeclaration(t *testing.T) {
	src := `
fn main() -> field {
    let x: field = 1;
    let x: field = 2;
    x
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	assert.False(t, diags.Empty())
}

func TestAnalyzeNarrowsLiteralToDeclaredIntegerType(t *testing.T) {
	src := `
fn main() -> u32 {
    let x: u32 = 5;
    x
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	require.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Items())
	require.NotNil(t, prog)
}

func TestAnalyzeRejectsOutOfRangeLiteral(t *testing.T) {
	src := `
fn main() -> u8 {
    let x: u8 = 256;
    x
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	assert.False(t, diags.Empty())
}

func TestAnalyzeStructAndEnum(t *testing.T) {
	src := `
struct Point {
    x: field,
    y: field,
}

enum Color {
    Red,
    Green,
    Blue,
}

fn main() -> field {
    let p = Point { x: 1, y: 2 };
    let c = Color::Green;
    match c {
        Color::Red => 0,
        Color::Green => p.x,
        Color::Blue => p.y,
    }
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	require.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Items())
	require.NotNil(t, prog)
}

func TestAnalyzeMatchRequiresWildcardForIntegerScrutinee(t *testing.T) {
	src := `
fn main(x: u8) -> field {
    match x {
        0 => 1,
        1 => 2,
    }
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	assert.False(t, diags.Empty())
}

func TestAnalyzeCastWidensBetweenIntegerWidths(t *testing.T) {
	src := `
fn main(a: u8) -> u32 {
    a as u32
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	require.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Items())
	require.NotNil(t, prog)
}

func TestAnalyzeArrayRepeatPropagatesElementType(t *testing.T) {
	src := `
fn main() -> u16 {
    let xs: [u16; 4] = [0; 4];
    xs[0]
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	require.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Items())
	require.NotNil(t, prog)
}

func TestAnalyzeRejectsArrayLengthMismatch(t *testing.T) {
	src := `
fn main() -> field {
    let xs: [field; 4] = [1, 2, 3];
    xs[0]
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	assert.False(t, diags.Empty())
}

func TestAnalyzeUnknownEnumVariantReportsEnumerationVariantNotExists(t *testing.T) {
	src := `
enum Creature {
    Snark,
    Bandersnatch,
}

fn main() -> field {
    let c = Creature::Exists;
    0
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	require.False(t, diags.Empty())
	items := diags.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diagnostics.KindEnumerationVariantNotExists, items[0].Kind)
	assert.Equal(t, "Creature", items[0].Offending["enumeration"])
	assert.Equal(t, "Exists", items[0].Offending["variant"])
}

func TestAnalyzeGreaterEqualsOnBooleanReportsOperatorOperandExpected(t *testing.T) {
	src := `
fn main() -> bool {
    true >= true
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	require.False(t, diags.Empty())
	items := diags.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diagnostics.KindOperatorOperandExpected, items[0].Kind)
	assert.Equal(t, ">=", items[0].Offending["operator"])
	assert.Equal(t, "first", items[0].Offending["operand"])
	assert.Equal(t, "bool", items[0].Offending["found"])
}

func TestAnalyzeMatchRejectsDuplicatePattern(t *testing.T) {
	src := `
fn main(x: bool) -> field {
    match x {
        true => 1,
        true => 2,
        false => 0,
    }
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	require.False(t, diags.Empty())
	assert.Equal(t, diagnostics.KindDuplicateMatchPattern, diags.Items()[0].Kind)
}

func TestAnalyzeLibraryCallValidatesArgumentTypes(t *testing.T) {
	src := `
fn main() -> field {
    std::ff::invert(true)
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	assert.Nil(t, prog)
	require.False(t, diags.Empty())
	assert.Equal(t, diagnostics.KindArgumentType, diags.Items()[0].Kind)
}

func TestAnalyzeLibraryCallAcceptsValidArguments(t *testing.T) {
	src := `
fn main(x: field) -> field {
    std::ff::invert(x)
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	require.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Items())
	require.NotNil(t, prog)
}

func TestAnalyzeConstFnCallNarrowsArgumentLiteral(t *testing.T) {
	src := `
impl Circuit {
    const fn double(x: u16) -> u16 {
        x + x
    }
}

fn main() -> u16 {
    Circuit::double(21)
}
`
	mod := parseModule(t, src)
	a := semantic.New()
	prog, diags := a.Analyze(mod)
	require.True(t, diags.Empty(), "unexpected diagnostics: %v", diags.Items())
	require.NotNil(t, prog)
}
