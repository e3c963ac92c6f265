package lexical

import (
	"fmt"

	"github.com/ingzkp/zinc/diagnostics"
)

// Kind identifies which arm of the Lexeme tagged union is populated.
type Kind int

const (
	KindKeyword Kind = iota
	KindIdentifier
	KindLiteralBoolean
	KindLiteralInteger
	KindLiteralString
	KindSymbol
	KindComment
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindIdentifier:
		return "identifier"
	case KindLiteralBoolean:
		return "boolean literal"
	case KindLiteralInteger:
		return "integer literal"
	case KindLiteralString:
		return "string literal"
	case KindSymbol:
		return "symbol"
	case KindComment:
		return "comment"
	case KindEOF:
		return "EOF"
	default:
		return "<invalid lexeme kind>"
	}
}

// Radix is the base an integer literal was written in. Integer literals
// retain their radix form until semantic analysis assigns them a type.
type Radix int

const (
	RadixDecimal     Radix = 10
	RadixBinary      Radix = 2
	RadixOctal       Radix = 8
	RadixHexadecimal Radix = 16
)

// IntegerLiteral is the un-evaluated digit string plus the radix it was
// written in; semantic analysis parses it against the inferred type.
type IntegerLiteral struct {
	Radix  Radix
	Digits string // digits only, prefix and '_' separators stripped
}

// Lexeme is the tagged union: Keyword(k) | Identifier(name) |
// Literal(boolean|integer|string) | Symbol(s) | Comment | EOF.
type Lexeme struct {
	Kind Kind

	Keyword    Keyword
	Identifier string
	Boolean    bool
	Integer    IntegerLiteral
	String     string
	Symbol     Symbol
}

func Ident(name string) Lexeme      { return Lexeme{Kind: KindIdentifier, Identifier: name} }
func KeywordLexeme(k Keyword) Lexeme { return Lexeme{Kind: KindKeyword, Keyword: k} }
func Bool(v bool) Lexeme            { return Lexeme{Kind: KindLiteralBoolean, Boolean: v} }
func Integer(r Radix, digits string) Lexeme {
	return Lexeme{Kind: KindLiteralInteger, Integer: IntegerLiteral{Radix: r, Digits: digits}}
}
func StringLexeme(s string) Lexeme { return Lexeme{Kind: KindLiteralString, String: s} }
func Sym(s Symbol) Lexeme          { return Lexeme{Kind: KindSymbol, Symbol: s} }

var EOF = Lexeme{Kind: KindEOF}
var Comment = Lexeme{Kind: KindComment}

func (l Lexeme) String() string {
	switch l.Kind {
	case KindKeyword:
		return string(l.Keyword)
	case KindIdentifier:
		return l.Identifier
	case KindLiteralBoolean:
		return fmt.Sprintf("%t", l.Boolean)
	case KindLiteralInteger:
		return l.Integer.Digits
	case KindLiteralString:
		return l.String
	case KindSymbol:
		return string(l.Symbol)
	case KindComment:
		return "<comment>"
	case KindEOF:
		return "EOF"
	default:
		return "<invalid>"
	}
}

// IsSymbol reports whether this lexeme is the given symbol.
func (l Lexeme) IsSymbol(s Symbol) bool { return l.Kind == KindSymbol && l.Symbol == s }

// IsKeyword reports whether this lexeme is the given keyword.
func (l Lexeme) IsKeyword(k Keyword) bool { return l.Kind == KindKeyword && l.Keyword == k }

// Token pairs a Lexeme with the Location of its first byte.
type Token struct {
	Lexeme   Lexeme
	Location diagnostics.Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s: %s %q", t.Location, t.Lexeme.Kind, t.Lexeme.String())
}
