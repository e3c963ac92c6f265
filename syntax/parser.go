package syntax

import (
	"fmt"
	"strings"

	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/lexical"
)

// Parser is a family of sub-parsers, each a small state machine that
// consumes tokens off a lexical.Stream and returns an AST node. The
// Stream's own one-token lookahead buffer plays the role of this lexer's
// "surplus token" convention (a sub-parser's look-ahead carries forward to
// the next call without rewinding), so Parser does not need a second
// buffer of its own (see DESIGN.md).
type Parser struct {
	stream *lexical.Stream

	// restrictStruct suppresses `Name { ... }` struct-literal parsing while
	// set, so an if/match/for scrutinee's opening brace is read as the
	// block/arm-list delimiter instead.
	restrictStruct bool
}

// NewParser constructs a Parser over a module's source buffer.
func NewParser(buf []byte, file string) *Parser {
	return &Parser{stream: lexical.New(buf, file)}
}

func (p *Parser) peek() (lexical.Token, *diagnostics.Diagnostic) { return p.stream.Peek() }
func (p *Parser) next() (lexical.Token, *diagnostics.Diagnostic) { return p.stream.Next() }

// ParseModule parses an entire module: the ordered list of top-level
// statements. Only declarations and `use` are accepted at this level.
func (p *Parser) ParseModule() (*Module, *diagnostics.Diagnostic) {
	module := &Module{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Lexeme.Kind == lexical.KindEOF {
			return module, nil
		}

		stmt, err := p.parseTopLevelStatement()
		if err != nil {
			return nil, err
		}
		module.Statements = append(module.Statements, stmt)
	}
}

func (p *Parser) parseTopLevelStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Lexeme.Kind == lexical.KindKeyword {
		switch tok.Lexeme.Keyword {
		case lexical.KeywordLet:
			return p.parseLetStatement()
		case lexical.KeywordConst:
			return p.parseConstStatement()
		case lexical.KeywordStatic:
			return p.parseStaticStatement()
		case lexical.KeywordType:
			return p.parseTypeStatement()
		case lexical.KeywordStruct:
			return p.parseStructStatement()
		case lexical.KeywordEnum:
			return p.parseEnumStatement()
		case lexical.KeywordFn:
			return p.parseFnStatement(false)
		case lexical.KeywordImpl:
			return p.parseImplStatement()
		case lexical.KeywordUse:
			return p.parseUseStatement()
		case lexical.KeywordMod:
			return p.parseModStatement()
		}
	}

	// Anything else is an expression-statement at the module root, which is
	// always an error: only declarations and `use` belong there.
	expr, exprErr := p.parseExpression()
	if exprErr != nil {
		return nil, exprErr
	}
	return nil, diagnostics.New(
		diagnostics.CategorySyntax,
		diagnostics.KindExpressionStatementRoot,
		expr.Loc(),
		"expression statement at root: only declarations and `use` are permitted here",
	)
}

// parseStatement parses one statement inside a function or block body,
// where expression-statements and `for` loops are permitted in addition
// to the declarations a module root accepts.
func (p *Parser) parseStatement() (Stmt, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Lexeme.Kind == lexical.KindKeyword {
		switch tok.Lexeme.Keyword {
		case lexical.KeywordLet:
			return p.parseLetStatement()
		case lexical.KeywordConst:
			return p.parseConstStatement()
		case lexical.KeywordStatic:
			return p.parseStaticStatement()
		case lexical.KeywordType:
			return p.parseTypeStatement()
		case lexical.KeywordStruct:
			return p.parseStructStatement()
		case lexical.KeywordEnum:
			return p.parseEnumStatement()
		case lexical.KeywordFn:
			return p.parseFnStatement(false)
		case lexical.KeywordImpl:
			return p.parseImplStatement()
		case lexical.KeywordUse:
			return p.parseUseStatement()
		case lexical.KeywordMod:
			return p.parseModStatement()
		case lexical.KeywordFor:
			return p.parseForStatement()
		}
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (Stmt, *diagnostics.Diagnostic) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	loc := expr.Loc()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	hasSemi := false
	if tok.Lexeme.IsSymbol(lexical.SymbolSemicolon) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		hasSemi = true
	}
	return &ExpressionStmt{Location: loc, Expr: expr, HasSemicolon: hasSemi}, nil
}

// --- shared expect helpers -------------------------------------------------

func describeLexeme(l lexical.Lexeme) string {
	switch l.Kind {
	case lexical.KindEOF:
		return "end of input"
	case lexical.KindKeyword:
		return fmt.Sprintf("keyword %q", l.Keyword)
	case lexical.KindSymbol:
		return fmt.Sprintf("%q", l.Symbol)
	case lexical.KindIdentifier:
		return fmt.Sprintf("identifier %q", l.Identifier)
	default:
		return l.String()
	}
}

func (p *Parser) expectedOneOf(loc diagnostics.Location, found lexical.Lexeme, wanted ...string) *diagnostics.Diagnostic {
	return diagnostics.New(
		diagnostics.CategorySyntax,
		diagnostics.KindExpectedOneOf,
		loc,
		fmt.Sprintf("expected one of {%s}, found %s", strings.Join(wanted, ", "), describeLexeme(found)),
	).With("found", found.String())
}

func (p *Parser) expectSymbol(sym lexical.Symbol) (lexical.Token, *diagnostics.Diagnostic) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if !tok.Lexeme.IsSymbol(sym) {
		return tok, p.expectedOneOf(tok.Location, tok.Lexeme, fmt.Sprintf("%q", sym))
	}
	return tok, nil
}

func (p *Parser) expectKeyword(kw lexical.Keyword) (lexical.Token, *diagnostics.Diagnostic) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if !tok.Lexeme.IsKeyword(kw) {
		return tok, p.expectedOneOf(tok.Location, tok.Lexeme, fmt.Sprintf("keyword %q", kw))
	}
	return tok, nil
}

func (p *Parser) expectIdentifier() (string, diagnostics.Location, *diagnostics.Diagnostic) {
	tok, err := p.next()
	if err != nil {
		return "", diagnostics.Location{}, err
	}
	if tok.Lexeme.Kind != lexical.KindIdentifier {
		return "", tok.Location, p.expectedOneOf(tok.Location, tok.Lexeme, "identifier")
	}
	return tok.Lexeme.Identifier, tok.Location, nil
}

func (p *Parser) peekIsSymbol(sym lexical.Symbol) (bool, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return tok.Lexeme.IsSymbol(sym), nil
}

func (p *Parser) peekIsKeyword(kw lexical.Keyword) (bool, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return tok.Lexeme.IsKeyword(kw), nil
}
