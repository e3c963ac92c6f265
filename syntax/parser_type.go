package syntax

import (
	"strconv"
	"strings"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/lexical"
)

// parseTypeExpr parses a type expression: unit | bool | u<N> | i<N> |
// field | array(T, size) | tuple(T…) | path(name…). Scalar type names are
// not lexer keywords — they are ordinary identifiers this parser
// recognizes by shape.
func (p *Parser) parseTypeExpr() (TypeExpr, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Lexeme.IsSymbol(lexical.SymbolParenLeft):
		return p.parseParenOrTupleType()
	case tok.Lexeme.IsSymbol(lexical.SymbolBracketLeft):
		return p.parseArrayType()
	case tok.Lexeme.Kind == lexical.KindIdentifier:
		return p.parseNamedOrPathType()
	default:
		return nil, p.expectedOneOf(tok.Location, tok.Lexeme, "type expression")
	}
}

func (p *Parser) parseParenOrTupleType() (TypeExpr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolParenLeft)
	if err != nil {
		return nil, err
	}
	if isClose, err := p.peekIsSymbol(lexical.SymbolParenRight); err != nil {
		return nil, err
	} else if isClose {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &UnitType{Location: open.Location}, nil
	}

	first, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	elements := []TypeExpr{first}
	trailingComma := false
	for {
		isComma, err := p.peekIsSymbol(lexical.SymbolComma)
		if err != nil {
			return nil, err
		}
		if !isComma {
			break
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		isClose, err := p.peekIsSymbol(lexical.SymbolParenRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			trailingComma = true
			break
		}
		next, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}

	if _, err := p.expectSymbol(lexical.SymbolParenRight); err != nil {
		return nil, err
	}

	if len(elements) == 1 && !trailingComma {
		// A single parenthesized type without a trailing comma is just a
		// grouped type, not a one-tuple.
		return elements[0], nil
	}
	return &TupleTypeExpr{Location: open.Location, Elements: elements}, nil
}

func (p *Parser) parseArrayType() (TypeExpr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolBracketLeft)
	if err != nil {
		return nil, err
	}
	elem, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolSemicolon); err != nil {
		return nil, err
	}
	size, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolBracketRight); err != nil {
		return nil, err
	}
	return &ArrayTypeExpr{Location: open.Location, Element: elem, Size: size}, nil
}

func (p *Parser) parseNamedOrPathType() (TypeExpr, *diagnostics.Diagnostic) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	name := tok.Lexeme.Identifier

	if name == "bool" {
		return &BoolType{Location: tok.Location}, nil
	}
	if name == "field" {
		return &FieldType{Location: tok.Location}, nil
	}
	if signed, bits, ok := parseScalarIntName(name); ok {
		return &IntegerTypeExpr{Location: tok.Location, Signed: signed, Bits: bits}, nil
	}

	path, err := p.parsePathFrom(name, tok.Location)
	if err != nil {
		return nil, err
	}
	return &PathTypeExpr{Location: tok.Location, Path: path}, nil
}

// parseScalarIntName recognizes u<N> / i<N> with N in 1..=248.
func parseScalarIntName(name string) (signed bool, bits int, ok bool) {
	if len(name) < 2 {
		return false, 0, false
	}
	var rest string
	switch name[0] {
	case 'u':
		signed, rest = false, name[1:]
	case 'i':
		signed, rest = true, name[1:]
	default:
		return false, 0, false
	}
	if rest == "" {
		return false, 0, false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false, 0, false
		}
	}
	n, convErr := strconv.Atoi(rest)
	if convErr != nil || n < 1 || n > 248 {
		return false, 0, false
	}
	return signed, n, true
}

// parsePathFrom continues a `::`-separated path given its first segment,
// already consumed by the caller as the one token of lookahead that
// decided this was a path in the first place.
func (p *Parser) parsePathFrom(first string, loc diagnostics.Location) (*PathExpr, *diagnostics.Diagnostic) {
	segments := []string{first}
	for {
		isColon, err := p.peekIsSymbol(lexical.SymbolDoubleColon)
		if err != nil {
			return nil, err
		}
		if !isColon {
			break
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		name, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		segments = append(segments, name)
	}
	return &PathExpr{Location: loc, Segments: segments}, nil
}

func pathString(path *PathExpr) string {
	return strings.Join(path.Segments, "::")
}
