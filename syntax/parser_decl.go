package syntax

import (
	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/lexical"
)

// parseLetStatement parses `let [mut] name[: Type] = value;`. The type
// annotation is optional; the value is not, this language has no
// uninitialized bindings.
func (p *Parser) parseLetStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordLet)
	if err != nil {
		return nil, err
	}

	mutable, err := p.peekIsKeyword(lexical.KeywordMut)
	if err != nil {
		return nil, err
	}
	if mutable {
		if _, err := p.next(); err != nil {
			return nil, err
		}
	}

	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	var typeExpr TypeExpr
	hasType, err := p.peekIsSymbol(lexical.SymbolColon)
	if err != nil {
		return nil, err
	}
	if hasType {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		typeExpr, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expectSymbol(lexical.SymbolAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolSemicolon); err != nil {
		return nil, err
	}

	return &LetStmt{Location: tok.Location, Mutable: mutable, Name: name, Type: typeExpr, Value: value}, nil
}

// parseConstStatement parses `const NAME: Type = value;`. Unlike `let`, the
// type annotation is mandatory.
func (p *Parser) parseConstStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordConst)
	if err != nil {
		return nil, err
	}
	return p.parseConstStatementAfterKeyword(tok)
}

func (p *Parser) parseConstStatementAfterKeyword(tok lexical.Token) (Stmt, *diagnostics.Diagnostic) {
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolColon); err != nil {
		return nil, err
	}
	typeExpr, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolSemicolon); err != nil {
		return nil, err
	}
	return &ConstStmt{Location: tok.Location, Name: name, Type: typeExpr, Value: value}, nil
}

// parseStaticStatement parses `static [mut] NAME: Type = value;`.
func (p *Parser) parseStaticStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordStatic)
	if err != nil {
		return nil, err
	}
	mutable, err := p.peekIsKeyword(lexical.KeywordMut)
	if err != nil {
		return nil, err
	}
	if mutable {
		if _, err := p.next(); err != nil {
			return nil, err
		}
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolColon); err != nil {
		return nil, err
	}
	typeExpr, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolSemicolon); err != nil {
		return nil, err
	}
	return &StaticStmt{Location: tok.Location, Mutable: mutable, Name: name, Type: typeExpr, Value: value}, nil
}

// parseTypeStatement parses a type alias: `type Name = Type;`.
func (p *Parser) parseTypeStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordType)
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolAssign); err != nil {
		return nil, err
	}
	typeExpr, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolSemicolon); err != nil {
		return nil, err
	}
	return &TypeStmt{Location: tok.Location, Name: name, Type: typeExpr}, nil
}

// parseStructStatement parses `struct Name { field: Type, ... }`.
func (p *Parser) parseStructStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordStruct)
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceLeft); err != nil {
		return nil, err
	}

	var fields []StructField
	for {
		isClose, err := p.peekIsSymbol(lexical.SymbolBraceRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		fieldName, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(lexical.SymbolColon); err != nil {
			return nil, err
		}
		fieldType, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, StructField{Name: fieldName, Type: fieldType})

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
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceRight); err != nil {
		return nil, err
	}
	return &StructStmt{Location: tok.Location, Name: name, Fields: fields}, nil
}

// parseEnumStatement parses `enum Name { Variant [= const], ... }`.
func (p *Parser) parseEnumStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordEnum)
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceLeft); err != nil {
		return nil, err
	}

	var variants []EnumVariant
	for {
		isClose, err := p.peekIsSymbol(lexical.SymbolBraceRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		variantName, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		var value Expr
		hasValue, err := p.peekIsSymbol(lexical.SymbolAssign)
		if err != nil {
			return nil, err
		}
		if hasValue {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			value, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		variants = append(variants, EnumVariant{Name: variantName, Value: value})

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
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceRight); err != nil {
		return nil, err
	}
	return &EnumStmt{Location: tok.Location, Name: name, Variants: variants}, nil
}

// parseFnStatement parses `fn name(params) [-> Type] { body }`. isConst is
// true when the caller has already consumed a leading `const` (used by
// parseImplStatement for the `const fn` compile-time-function form).
func (p *Parser) parseFnStatement(isConst bool) (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordFn)
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolParenLeft); err != nil {
		return nil, err
	}

	var params []FnParam
	for {
		isClose, err := p.peekIsSymbol(lexical.SymbolParenRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		isSelf, err := p.peekIsKeyword(lexical.KeywordSelfValue)
		if err != nil {
			return nil, err
		}
		if isSelf {
			selfTok, err := p.next()
			if err != nil {
				return nil, err
			}
			params = append(params, FnParam{Location: selfTok.Location, Name: "self", IsSelf: true})
		} else {
			paramName, loc, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSymbol(lexical.SymbolColon); err != nil {
				return nil, err
			}
			paramType, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			params = append(params, FnParam{Location: loc, Name: paramName, Type: paramType})
		}

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
	}
	if _, err := p.expectSymbol(lexical.SymbolParenRight); err != nil {
		return nil, err
	}

	var returnType TypeExpr
	hasReturn, err := p.peekIsSymbol(lexical.SymbolArrow)
	if err != nil {
		return nil, err
	}
	if hasReturn {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		returnType, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}

	return &FnStmt{
		Location: tok.Location, Name: name, IsConst: isConst,
		Params: params, ReturnType: returnType, Body: body,
	}, nil
}

// parseImplStatement parses `impl Target { item... }`, where each item is a
// function or an associated constant: the source language's substitute for
// methods.
func (p *Parser) parseImplStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordImpl)
	if err != nil {
		return nil, err
	}
	target, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceLeft); err != nil {
		return nil, err
	}

	var items []Stmt
	for {
		isClose, err := p.peekIsSymbol(lexical.SymbolBraceRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		itemTok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var item Stmt
		switch {
		case itemTok.Lexeme.IsKeyword(lexical.KeywordFn):
			item, err = p.parseFnStatement(false)
		case itemTok.Lexeme.IsKeyword(lexical.KeywordConst):
			constTok, constErr := p.next()
			if constErr != nil {
				return nil, constErr
			}
			isConstFn, lookErr := p.peekIsKeyword(lexical.KeywordFn)
			if lookErr != nil {
				return nil, lookErr
			}
			if isConstFn {
				item, err = p.parseFnStatement(true)
			} else {
				item, err = p.parseConstStatementAfterKeyword(constTok)
			}
		default:
			return nil, p.expectedOneOf(itemTok.Location, itemTok.Lexeme, "fn", "const")
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceRight); err != nil {
		return nil, err
	}
	return &ImplStmt{Location: tok.Location, Target: target, Items: items}, nil
}

// parseUseStatement parses `use a::b::c;` or `use a::b::{c, d};`.
func (p *Parser) parseUseStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordUse)
	if err != nil {
		return nil, err
	}
	name, loc, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	segments := []string{name}
	var items []string

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
		isBrace, err := p.peekIsSymbol(lexical.SymbolBraceLeft)
		if err != nil {
			return nil, err
		}
		if isBrace {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			for {
				itemName, _, err := p.expectIdentifier()
				if err != nil {
					return nil, err
				}
				items = append(items, itemName)
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
			}
			if _, err := p.expectSymbol(lexical.SymbolBraceRight); err != nil {
				return nil, err
			}
			break
		}
		segName, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		segments = append(segments, segName)
	}

	if _, err := p.expectSymbol(lexical.SymbolSemicolon); err != nil {
		return nil, err
	}
	return &UseStmt{Location: tok.Location, Path: &PathExpr{Location: loc, Segments: segments}, Items: items}, nil
}

// parseModStatement parses `mod name;`, declaring a sub-module resolved from
// the source tree directory-based module convention).
func (p *Parser) parseModStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordMod)
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolSemicolon); err != nil {
		return nil, err
	}
	return &ModStmt{Location: tok.Location, Name: name}, nil
}

// parseForStatement parses `for ident in lo..[=]hi [while cond] { body }`.
// Bounds must be constant expressions; that is checked in semantic
// analysis, not here.
func (p *Parser) parseForStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordFor)
	if err != nil {
		return nil, err
	}
	variable, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(lexical.KeywordIn); err != nil {
		return nil, err
	}

	low, err := p.withRestrictedStruct(p.parseAddSub)
	if err != nil {
		return nil, err
	}

	inclusive := false
	rangeTok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case rangeTok.Lexeme.IsSymbol(lexical.SymbolDoubleDot):
		inclusive = false
	case rangeTok.Lexeme.IsSymbol(lexical.SymbolDoubleDotEquals):
		inclusive = true
	default:
		return nil, p.expectedOneOf(rangeTok.Location, rangeTok.Lexeme, "..", "..=")
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}

	high, err := p.withRestrictedStruct(p.parseAddSub)
	if err != nil {
		return nil, err
	}

	var whileCond Expr
	hasWhile, err := p.peekIsKeyword(lexical.KeywordWhile)
	if err != nil {
		return nil, err
	}
	if hasWhile {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		whileCond, err = p.withRestrictedStruct(p.parseExpression)
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}

	return &ForStmt{
		Location: tok.Location, Variable: variable, Low: low, High: high,
		Inclusive: inclusive, While: whileCond, Body: body,
	}, nil
}
