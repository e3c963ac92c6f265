package lexical

import (
	"strings"

	"github.com/ingzkp/zinc/diagnostics"
)

// scanWord is the identifier/keyword sub-parser: letter-or-underscore
// start, then letters/digits/underscore, classified against the keyword
// table.
func (s *Stream) scanWord(loc diagnostics.Location) (Token, *diagnostics.Diagnostic) {
	var b strings.Builder
	for !s.atEOF() && isIdentContinue(s.peekByte()) {
		b.WriteByte(s.advance())
	}
	word := b.String()

	switch word {
	case "true":
		return Token{Lexeme: Bool(true), Location: loc}, nil
	case "false":
		return Token{Lexeme: Bool(false), Location: loc}, nil
	}
	if kw, ok := LookupKeyword(word); ok {
		return Token{Lexeme: KeywordLexeme(kw), Location: loc}, nil
	}
	return Token{Lexeme: Ident(word), Location: loc}, nil
}

// scanNumber is the integer-literal sub-parser: decimal / 0b… / 0o… / 0x…
// with optional underscore separators between digits. It validates digits
// against the chosen radix but does not range-check against a type — that
// happens in semantic analysis once a type is known. The radix is kept on
// the token rather than folded into a value here.
func (s *Stream) scanNumber(loc diagnostics.Location) (Token, *diagnostics.Diagnostic) {
	radix := RadixDecimal
	var digitSet func(byte) bool = isDigit

	if s.peekByte() == '0' && isRadixPrefix(s.peekByteN(1)) {
		prefix := s.peekByteN(1)
		s.advance() // '0'
		s.advance() // prefix letter
		switch prefix {
		case 'b', 'B':
			radix = RadixBinary
			digitSet = isBinaryDigit
		case 'o', 'O':
			radix = RadixOctal
			digitSet = isOctalDigit
		case 'x', 'X':
			radix = RadixHexadecimal
			digitSet = isHexDigit
		}

		digits, err := s.scanDigits(loc, digitSet)
		if err != nil {
			return Token{}, err
		}
		if digits == "" {
			return Token{}, s.errorf(loc, diagnostics.KindInvalidIntegerLiteral, "integer literal has no digits after radix prefix")
		}
		return Token{Lexeme: Integer(radix, digits), Location: loc}, nil
	}

	digits, err := s.scanDigits(loc, isDigit)
	if err != nil {
		return Token{}, err
	}
	return Token{Lexeme: Integer(RadixDecimal, digits), Location: loc}, nil
}

// scanDigits consumes digits (of the given predicate) and '_' separators,
// rejecting a separator that is not strictly between two digits, and any
// byte that looks numeric-ish but fails the radix's digit set (e.g. '9' in
// an 0b literal).
func (s *Stream) scanDigits(loc diagnostics.Location, isRadixDigit func(byte) bool) (string, *diagnostics.Diagnostic) {
	var b strings.Builder
	lastWasSeparator := false
	any := false
	for !s.atEOF() {
		ch := s.peekByte()
		if ch == '_' {
			if !any {
				return "", s.errorf(loc, diagnostics.KindInvalidIntegerLiteral, "integer literal cannot start with '_'")
			}
			s.advance()
			lastWasSeparator = true
			continue
		}
		if isRadixDigit(ch) {
			b.WriteByte(ch)
			s.advance()
			any = true
			lastWasSeparator = false
			continue
		}
		if isDigit(ch) || isLetter(ch) {
			// A digit/letter that doesn't belong to this radix immediately
			// following the literal is malformed (e.g. "0b102", "123abc").
			return "", s.errorf(loc, diagnostics.KindInvalidIntegerLiteral, "digit %q out of range for this integer literal's radix", ch)
		}
		break
	}
	if lastWasSeparator {
		return "", s.errorf(loc, diagnostics.KindInvalidIntegerLiteral, "integer literal cannot end with '_'")
	}
	return b.String(), nil
}

func isRadixPrefix(ch byte) bool {
	switch ch {
	case 'b', 'B', 'o', 'O', 'x', 'X':
		return true
	}
	return false
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isBinaryDigit(ch byte) bool { return ch == '0' || ch == '1' }
func isOctalDigit(ch byte) bool  { return ch >= '0' && ch <= '7' }
func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

var stringEscapes = map[byte]byte{
	'n': '\n', 'r': '\r', 't': '\t', '\\': '\\', '"': '"',
}

// scanString is the string-literal sub-parser. Strings only ever appear as
// dbg!/require arguments, but lexing them is unconditional: the intrinsic
// validator rejects misuse later, in semantic analysis.
func (s *Stream) scanString(loc diagnostics.Location) (Token, *diagnostics.Diagnostic) {
	s.advance() // opening quote
	var b strings.Builder
	for {
		if s.atEOF() || s.peekByte() == '\n' {
			return Token{}, s.errorf(loc, diagnostics.KindUnterminatedString, "unterminated string literal")
		}
		ch := s.peekByte()
		if ch == '"' {
			s.advance()
			return Token{Lexeme: StringLexeme(b.String()), Location: loc}, nil
		}
		if ch == '\\' {
			escLoc := s.loc()
			s.advance()
			if s.atEOF() {
				return Token{}, s.errorf(loc, diagnostics.KindUnterminatedString, "unterminated string literal")
			}
			esc := s.advance()
			replacement, ok := stringEscapes[esc]
			if !ok {
				return Token{}, s.errorf(escLoc, diagnostics.KindInvalidEscapeSequence, "invalid escape sequence \\%c", esc)
			}
			b.WriteByte(replacement)
			continue
		}
		b.WriteByte(s.advance())
	}
}

// threeCharSymbols and twoCharSymbols enumerate every two/three-byte
// operator, longest first within a shared prefix so the state machine
// below never has to backtrack.
var threeCharSymbols = map[string]Symbol{
	"..=": SymbolDoubleDotEquals,
}

var twoCharSymbols = map[string]Symbol{
	"==": SymbolDoubleEquals, "=>": SymbolFatArrow,
	"->": SymbolArrow,
	"..": SymbolDoubleDot,
	"::": SymbolDoubleColon,
	"<=": SymbolLesserEquals,
	">=": SymbolGreaterEquals,
	"!=": SymbolNotEquals,
	"&&": SymbolDoubleAmpersand,
	"||": SymbolDoubleVBar,
	"^^": SymbolDoubleCircumflex,
}

var oneCharSymbols = map[byte]Symbol{
	'=': SymbolAssign, '-': SymbolMinus, '.': SymbolDot, ':': SymbolColon,
	'<': SymbolLesser, '>': SymbolGreater, '!': SymbolExclamation,
	'&': SymbolAmpersand, '|': SymbolVBar, '^': SymbolCircumflex,
	'+': SymbolPlus, '*': SymbolAsterisk, '/': SymbolSlash, '%': SymbolPercent,
	',': SymbolComma, ';': SymbolSemicolon,
	'(': SymbolParenLeft, ')': SymbolParenRight,
	'[': SymbolBracketLeft, ']': SymbolBracketRight,
	'{': SymbolBraceLeft, '}': SymbolBraceRight,
}

// scanSymbol is the operator/punctuation sub-parser: a state machine on the
// first byte's prefix, preferring the longest match (e.g. '='→"==|=>|=",
// '-'→"->|-", '.'→"..=|..|.").
func (s *Stream) scanSymbol(loc diagnostics.Location) (Token, *diagnostics.Diagnostic) {
	three := string([]byte{s.peekByte(), s.peekByteN(1), s.peekByteN(2)})
	if sym, ok := threeCharSymbols[three]; ok {
		s.advance()
		s.advance()
		s.advance()
		return Token{Lexeme: Sym(sym), Location: loc}, nil
	}

	two := string([]byte{s.peekByte(), s.peekByteN(1)})
	if sym, ok := twoCharSymbols[two]; ok {
		s.advance()
		s.advance()
		return Token{Lexeme: Sym(sym), Location: loc}, nil
	}

	ch := s.peekByte()
	if sym, ok := oneCharSymbols[ch]; ok {
		s.advance()
		return Token{Lexeme: Sym(sym), Location: loc}, nil
	}

	if s.atEOF() {
		return Token{}, s.errorf(loc, diagnostics.KindUnexpectedEOF, "unexpected end of input")
	}
	bad := s.advance()
	return Token{}, s.errorf(loc, diagnostics.KindForbiddenCharacter, "forbidden character %q", bad)
}
