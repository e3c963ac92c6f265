package lexical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/lexical"
)

func allTokens(t *testing.T, src string) []lexical.Token {
	t.Helper()
	s := lexical.New([]byte(src), "test.zn")
	var toks []lexical.Token
	for {
		tok, diag := s.Next()
		require.Nil(t, diag, "unexpected diagnostic: %v", diag)
		toks = append(toks, tok)
		if tok.Lexeme.Kind == lexical.KindEOF {
			return toks
		}
	}
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks := allTokens(t, "let mut x")
	require.Len(t, toks, 4)
	assert.True(t, toks[0].Lexeme.IsKeyword(lexical.KeywordLet))
	assert.True(t, toks[1].Lexeme.IsKeyword(lexical.KeywordMut))
	assert.Equal(t, lexical.KindIdentifier, toks[2].Lexeme.Kind)
	assert.Equal(t, "x", toks[2].Lexeme.Identifier)
}

func TestScanBooleanLiterals(t *testing.T) {
	toks := allTokens(t, "true false")
	assert.Equal(t, lexical.KindLiteralBoolean, toks[0].Lexeme.Kind)
	assert.True(t, toks[0].Lexeme.Boolean)
	assert.Equal(t, lexical.KindLiteralBoolean, toks[1].Lexeme.Kind)
	assert.False(t, toks[1].Lexeme.Boolean)
}

func TestScanIntegerLiteralsByRadix(t *testing.T) {
	toks := allTokens(t, "10 0x1A 0b101 0o17")
	require.GreaterOrEqual(t, len(toks), 4)
	assert.Equal(t, lexical.RadixDecimal, toks[0].Lexeme.Integer.Radix)
	assert.Equal(t, "10", toks[0].Lexeme.Integer.Digits)
	assert.Equal(t, lexical.RadixHexadecimal, toks[1].Lexeme.Integer.Radix)
	assert.Equal(t, lexical.RadixBinary, toks[2].Lexeme.Integer.Radix)
	assert.Equal(t, lexical.RadixOctal, toks[3].Lexeme.Integer.Radix)
}

func TestScanMultiCharacterSymbols(t *testing.T) {
	toks := allTokens(t, "== != <= >= -> => :: ..")
	want := []lexical.Symbol{
		lexical.SymbolDoubleEquals, lexical.SymbolNotEquals, lexical.SymbolLesserEquals,
		lexical.SymbolGreaterEquals, lexical.SymbolArrow, lexical.SymbolFatArrow,
		lexical.SymbolDoubleColon, lexical.SymbolDoubleDot,
	}
	require.Len(t, toks, len(want)+1)
	for i, sym := range want {
		assert.Truef(t, toks[i].Lexeme.IsSymbol(sym), "token %d: got %v, want %v", i, toks[i].Lexeme, sym)
	}
}

func TestSkipsLineAndBlockComments(t *testing.T) {
	toks := allTokens(t, "x // trailing comment\n/* block */ y")
	require.Len(t, toks, 3)
	assert.Equal(t, "x", toks[0].Lexeme.Identifier)
	assert.Equal(t, "y", toks[1].Lexeme.Identifier)
}

func TestUnterminatedBlockCommentErrors(t *testing.T) {
	s := lexical.New([]byte("/* never closed"), "test.zn")
	_, diag := s.Next()
	require.NotNil(t, diag)
	assert.Equal(t, diagnostics.KindUnterminatedComment, diag.Kind)
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := lexical.New([]byte("abc"), "test.zn")
	first, diag := s.Peek()
	require.Nil(t, diag)
	second, diag := s.Peek()
	require.Nil(t, diag)
	assert.Equal(t, first, second)
	third, diag := s.Next()
	require.Nil(t, diag)
	assert.Equal(t, first, third)
}

func TestStringLiteralScanning(t *testing.T) {
	toks := allTokens(t, `"hello"`)
	require.Len(t, toks, 2)
	assert.Equal(t, lexical.KindLiteralString, toks[0].Lexeme.Kind)
	assert.Equal(t, "hello", toks[0].Lexeme.String)
}
