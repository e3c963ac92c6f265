package syntax

import (
	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/lexical"
)

// parsePattern parses a match-arm pattern: literal | binding(ident) |
// path(path) | wildcard | range(lo, hi, inclusive)
func (p *Parser) parsePattern() (Pattern, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Lexeme.Kind {
	case lexical.KindLiteralBoolean, lexical.KindLiteralInteger, lexical.KindLiteralString:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return p.finishMaybeRangePattern(lit, tok.Location)

	case lexical.KindIdentifier:
		if tok.Lexeme.Identifier == "_" {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			return &WildcardPattern{Location: tok.Location}, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		isColon, err := p.peekIsSymbol(lexical.SymbolDoubleColon)
		if err != nil {
			return nil, err
		}
		if isColon {
			path, err := p.parsePathFrom(tok.Lexeme.Identifier, tok.Location)
			if err != nil {
				return nil, err
			}
			return &PathPattern{Location: tok.Location, Path: path}, nil
		}
		return &BindingPattern{Location: tok.Location, Name: tok.Lexeme.Identifier}, nil

	default:
		return nil, p.expectedOneOf(tok.Location, tok.Lexeme, "pattern")
	}
}

// finishMaybeRangePattern checks for a trailing `..`/`..=` after a literal
// pattern, turning `0..10` / `0..=10` into a RangePattern.
func (p *Parser) finishMaybeRangePattern(lowLiteral *LiteralExpr, loc diagnostics.Location) (Pattern, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	inclusive := false
	switch {
	case tok.Lexeme.IsSymbol(lexical.SymbolDoubleDot):
		inclusive = false
	case tok.Lexeme.IsSymbol(lexical.SymbolDoubleDotEquals):
		inclusive = true
	default:
		return &LiteralPattern{Location: loc, Literal: lowLiteral}, nil
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	high, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &RangePattern{Location: loc, Low: lowLiteral, High: high, Inclusive: inclusive}, nil
}
