package syntax

import (
	"github.com/ingzkp/zinc/diagnostics"
	"github.com/ingzkp/zinc/lexical"
)

// parseExpression parses a full expression at assignment precedence, the
// weakest level in the ladder: assignment → range → logical-or →
// logical-xor → logical-and → bitwise-or → bitwise-xor → bitwise-and →
// comparison → addition/subtraction → multiplication/division/remainder →
// cast → unary (-, !) → postfix (., [], (, ::). The bitwise tier's exact
// placement between logical and comparison is this compiler's own choice;
// see DESIGN.md.
func (p *Parser) parseExpression() (Expr, *diagnostics.Diagnostic) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expr, *diagnostics.Diagnostic) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	isAssign, err := p.peekIsSymbol(lexical.SymbolAssign)
	if err != nil {
		return nil, err
	}
	if !isAssign {
		return left, nil
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Location: tok.Location, Op: OpAssign, Left: left, Right: right}, nil
}

func (p *Parser) parseRange() (Expr, *diagnostics.Diagnostic) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var op BinaryOp
	switch {
	case tok.Lexeme.IsSymbol(lexical.SymbolDoubleDot):
		op = OpRangeExclusive
	case tok.Lexeme.IsSymbol(lexical.SymbolDoubleDotEquals):
		op = OpRangeInclusive
	default:
		return left, nil
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Location: tok.Location, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) binaryLevel(next func() (Expr, *diagnostics.Diagnostic), ops map[lexical.Symbol]BinaryOp) (Expr, *diagnostics.Diagnostic) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Lexeme.Kind != lexical.KindSymbol {
			return left, nil
		}
		op, ok := ops[tok.Lexeme.Symbol]
		if !ok {
			return left, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Location: tok.Location, Op: op, Left: left, Right: right}
	}
}

var opsLogicalOr = map[lexical.Symbol]BinaryOp{lexical.SymbolDoubleVBar: OpOr}
var opsLogicalXor = map[lexical.Symbol]BinaryOp{lexical.SymbolDoubleCircumflex: OpXor}
var opsLogicalAnd = map[lexical.Symbol]BinaryOp{lexical.SymbolDoubleAmpersand: OpAnd}
var opsBitOr = map[lexical.Symbol]BinaryOp{lexical.SymbolVBar: OpBitOr}
var opsBitXor = map[lexical.Symbol]BinaryOp{lexical.SymbolCircumflex: OpBitXor}
var opsBitAnd = map[lexical.Symbol]BinaryOp{lexical.SymbolAmpersand: OpBitAnd}
var opsComparison = map[lexical.Symbol]BinaryOp{
	lexical.SymbolDoubleEquals: OpEq, lexical.SymbolNotEquals: OpNotEq,
	lexical.SymbolLesser: OpLt, lexical.SymbolLesserEquals: OpLtEq,
	lexical.SymbolGreater: OpGt, lexical.SymbolGreaterEquals: OpGtEq,
}
var opsAddSub = map[lexical.Symbol]BinaryOp{lexical.SymbolPlus: OpAdd, lexical.SymbolMinus: OpSub}
var opsMulDivRem = map[lexical.Symbol]BinaryOp{
	lexical.SymbolAsterisk: OpMul, lexical.SymbolSlash: OpDiv, lexical.SymbolPercent: OpRem,
}

func (p *Parser) parseLogicalOr() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseLogicalXor, opsLogicalOr)
}
func (p *Parser) parseLogicalXor() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseLogicalAnd, opsLogicalXor)
}
func (p *Parser) parseLogicalAnd() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseBitOr, opsLogicalAnd)
}
func (p *Parser) parseBitOr() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseBitXor, opsBitOr)
}
func (p *Parser) parseBitXor() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseBitAnd, opsBitXor)
}
func (p *Parser) parseBitAnd() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseComparison, opsBitAnd)
}
func (p *Parser) parseComparison() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseAddSub, opsComparison)
}
func (p *Parser) parseAddSub() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseMulDivRem, opsAddSub)
}
func (p *Parser) parseMulDivRem() (Expr, *diagnostics.Diagnostic) {
	return p.binaryLevel(p.parseCast, opsMulDivRem)
}

func (p *Parser) parseCast() (Expr, *diagnostics.Diagnostic) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		isAs, err := p.peekIsKeyword(lexical.KeywordAs)
		if err != nil {
			return nil, err
		}
		if !isAs {
			return left, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		target, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		left = &CastExpr{Location: left.Loc(), Operand: left, Target: target}
	}
}

func (p *Parser) parseUnary() (Expr, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var op UnaryOp
	switch {
	case tok.Lexeme.IsSymbol(lexical.SymbolMinus):
		op = OpNeg
	case tok.Lexeme.IsSymbol(lexical.SymbolExclamation):
		op = OpNot
	default:
		return p.parsePostfix()
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Location: tok.Location, Op: op, Operand: operand}, nil
}

func (p *Parser) parsePostfix() (Expr, *diagnostics.Diagnostic) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Lexeme.IsSymbol(lexical.SymbolDot):
			expr, err = p.parseFieldAccess(expr)
		case tok.Lexeme.IsSymbol(lexical.SymbolBracketLeft):
			expr, err = p.parseIndex(expr)
		case tok.Lexeme.IsSymbol(lexical.SymbolParenLeft):
			expr, err = p.parseCall(expr)
		case tok.Lexeme.IsSymbol(lexical.SymbolDoubleColon):
			expr, err = p.parsePathExtend(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseFieldAccess(operand Expr) (Expr, *diagnostics.Diagnostic) {
	dot, err := p.expectSymbol(lexical.SymbolDot)
	if err != nil {
		return nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Lexeme.Kind {
	case lexical.KindLiteralInteger:
		index, convErr := parseDecimalSmall(tok.Lexeme.Integer.Digits)
		if convErr != nil {
			return nil, p.expectedOneOf(tok.Location, tok.Lexeme, "tuple field index")
		}
		return &FieldExpr{Location: dot.Location, Operand: operand, IsTupleField: true, TupleIndex: index}, nil
	case lexical.KindIdentifier:
		return &FieldExpr{Location: dot.Location, Operand: operand, FieldName: tok.Lexeme.Identifier}, nil
	default:
		return nil, p.expectedOneOf(tok.Location, tok.Lexeme, "tuple field index", "identifier")
	}
}

func (p *Parser) parseIndex(operand Expr) (Expr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolBracketLeft)
	if err != nil {
		return nil, err
	}
	index, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolBracketRight); err != nil {
		return nil, err
	}
	return &IndexExpr{Location: open.Location, Operand: operand, Index: index}, nil
}

func (p *Parser) parseCall(callee Expr) (Expr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolParenLeft)
	if err != nil {
		return nil, err
	}
	var args []Expr
	isClose, err := p.peekIsSymbol(lexical.SymbolParenRight)
	if err != nil {
		return nil, err
	}
	if !isClose {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
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
				break
			}
		}
	}
	if _, err := p.expectSymbol(lexical.SymbolParenRight); err != nil {
		return nil, err
	}
	return &CallExpr{Location: open.Location, Callee: callee, Arguments: args}, nil
}

func (p *Parser) parsePathExtend(left Expr) (Expr, *diagnostics.Diagnostic) {
	colons, err := p.expectSymbol(lexical.SymbolDoubleColon)
	if err != nil {
		return nil, err
	}
	name, nameLoc, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	switch existing := left.(type) {
	case *IdentifierExpr:
		return &PathExpr{
			Location:         existing.Location,
			Segments:         []string{existing.Name, name},
			SegmentLocations: []Location{existing.Location, nameLoc},
		}, nil
	case *PathExpr:
		return &PathExpr{
			Location:         existing.Location,
			Segments:         append(append([]string{}, existing.Segments...), name),
			SegmentLocations: append(append([]Location{}, existing.SegmentLocations...), nameLoc),
		}, nil
	default:
		return nil, diagnostics.New(
			diagnostics.CategoryScope,
			diagnostics.KindExpectedNamespace,
			colons.Location,
			"left-hand side of '::' must be a module, type, or enumeration path",
		)
	}
}

func (p *Parser) parsePrimary() (Expr, *diagnostics.Diagnostic) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Lexeme.Kind == lexical.KindLiteralBoolean,
		tok.Lexeme.Kind == lexical.KindLiteralInteger,
		tok.Lexeme.Kind == lexical.KindLiteralString:
		return p.parseLiteral()

	case tok.Lexeme.Kind == lexical.KindIdentifier:
		return p.parseIdentifierOrStructLiteral()

	case tok.Lexeme.IsSymbol(lexical.SymbolParenLeft):
		return p.parseParenOrTupleExpr()

	case tok.Lexeme.IsSymbol(lexical.SymbolBracketLeft):
		return p.parseArrayExpr()

	case tok.Lexeme.IsSymbol(lexical.SymbolBraceLeft):
		return p.parseBlockExpr()

	case tok.Lexeme.IsKeyword(lexical.KeywordIf):
		return p.parseConditionalExpr()

	case tok.Lexeme.IsKeyword(lexical.KeywordMatch):
		return p.parseMatchExpr()

	case tok.Lexeme.IsKeyword(lexical.KeywordLoop):
		return p.parseLoopExpr()

	case tok.Lexeme.IsKeyword(lexical.KeywordBreak):
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &BreakExpr{Location: tok.Location}, nil

	case tok.Lexeme.IsKeyword(lexical.KeywordContinue):
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &ContinueExpr{Location: tok.Location}, nil

	case tok.Lexeme.IsKeyword(lexical.KeywordReturn):
		return p.parseReturnExpr()

	case tok.Lexeme.IsKeyword(lexical.KeywordSelfValue):
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &IdentifierExpr{Location: tok.Location, Name: "self"}, nil

	default:
		return nil, p.expectedOneOf(tok.Location, tok.Lexeme, "expression")
	}
}

func (p *Parser) parseLiteral() (*LiteralExpr, *diagnostics.Diagnostic) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Lexeme.Kind {
	case lexical.KindLiteralBoolean:
		return &LiteralExpr{Location: tok.Location, Kind: LiteralBoolean, Boolean: tok.Lexeme.Boolean}, nil
	case lexical.KindLiteralInteger:
		return &LiteralExpr{Location: tok.Location, Kind: LiteralInteger, Integer: tok.Lexeme.Integer}, nil
	case lexical.KindLiteralString:
		return &LiteralExpr{Location: tok.Location, Kind: LiteralString, String: tok.Lexeme.String}, nil
	default:
		return nil, p.expectedOneOf(tok.Location, tok.Lexeme, "literal")
	}
}

// parseIdentifierOrStructLiteral disambiguates `name`, `name::path`,
// `name(args)` (handled by parsePostfix), and `name { field: value }`
// struct literals. Struct literals are suppressed while restrictStruct is
// set (inside if/match/for scrutinees), the same ambiguity resolution the
// languages this grammar is modeled on use.
func (p *Parser) parseIdentifierOrStructLiteral() (Expr, *diagnostics.Diagnostic) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	ident := &IdentifierExpr{Location: tok.Location, Name: tok.Lexeme.Identifier}

	if p.restrictStruct {
		return ident, nil
	}

	isBrace, err := p.peekIsSymbol(lexical.SymbolBraceLeft)
	if err != nil {
		return nil, err
	}
	if !isBrace {
		return ident, nil
	}
	return p.parseStructLiteral(&PathExpr{Location: tok.Location, Segments: []string{tok.Lexeme.Identifier}})
}

func (p *Parser) parseStructLiteral(path *PathExpr) (Expr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolBraceLeft)
	if err != nil {
		return nil, err
	}
	var fields []StructExprField
	for {
		isClose, err := p.peekIsSymbol(lexical.SymbolBraceRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		name, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(lexical.SymbolColon); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fields = append(fields, StructExprField{Name: name, Value: value})

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
	return &StructExpr{Location: open.Location, Path: path, Fields: fields}, nil
}

func (p *Parser) parseParenOrTupleExpr() (Expr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolParenLeft)
	if err != nil {
		return nil, err
	}
	isClose, err := p.peekIsSymbol(lexical.SymbolParenRight)
	if err != nil {
		return nil, err
	}
	if isClose {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &TupleExpr{Location: open.Location}, nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	isComma, err := p.peekIsSymbol(lexical.SymbolComma)
	if err != nil {
		return nil, err
	}
	if !isComma {
		if _, err := p.expectSymbol(lexical.SymbolParenRight); err != nil {
			return nil, err
		}
		return first, nil
	}

	elements := []Expr{first}
	for {
		if _, err := p.next(); err != nil { // consume ','
			return nil, err
		}
		isClose, err := p.peekIsSymbol(lexical.SymbolParenRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
		isComma, err := p.peekIsSymbol(lexical.SymbolComma)
		if err != nil {
			return nil, err
		}
		if !isComma {
			break
		}
	}
	if _, err := p.expectSymbol(lexical.SymbolParenRight); err != nil {
		return nil, err
	}
	return &TupleExpr{Location: open.Location, Elements: elements}, nil
}

func (p *Parser) parseArrayExpr() (Expr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolBracketLeft)
	if err != nil {
		return nil, err
	}
	isClose, err := p.peekIsSymbol(lexical.SymbolBracketRight)
	if err != nil {
		return nil, err
	}
	if isClose {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &ArrayExpr{Location: open.Location}, nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	isSemi, err := p.peekIsSymbol(lexical.SymbolSemicolon)
	if err != nil {
		return nil, err
	}
	if isSemi {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		count, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(lexical.SymbolBracketRight); err != nil {
			return nil, err
		}
		return &ArrayExpr{Location: open.Location, Repeat: &ArrayRepeat{Value: first, Count: count}}, nil
	}

	elements := []Expr{first}
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
		isClose, err := p.peekIsSymbol(lexical.SymbolBracketRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	if _, err := p.expectSymbol(lexical.SymbolBracketRight); err != nil {
		return nil, err
	}
	return &ArrayExpr{Location: open.Location, Elements: elements}, nil
}

func (p *Parser) parseBlockExpr() (*BlockExpr, *diagnostics.Diagnostic) {
	open, err := p.expectSymbol(lexical.SymbolBraceLeft)
	if err != nil {
		return nil, err
	}
	var statements []Stmt
	for {
		isClose, err := p.peekIsSymbol(lexical.SymbolBraceRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceRight); err != nil {
		return nil, err
	}

	block := &BlockExpr{Location: open.Location, Statements: statements}
	if n := len(statements); n > 0 {
		if tail, ok := statements[n-1].(*ExpressionStmt); ok && !tail.HasSemicolon {
			block.Tail = tail.Expr
			block.Statements = statements[:n-1]
		}
	}
	return block, nil
}

// withRestrictedStruct parses fn in a context where bare `Name { ... }`
// must not be read as a struct literal (if/match/for scrutinees).
func (p *Parser) withRestrictedStruct(fn func() (Expr, *diagnostics.Diagnostic)) (Expr, *diagnostics.Diagnostic) {
	prev := p.restrictStruct
	p.restrictStruct = true
	expr, err := fn()
	p.restrictStruct = prev
	return expr, err
}

func (p *Parser) parseConditionalExpr() (Expr, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordIf)
	if err != nil {
		return nil, err
	}
	cond, err := p.withRestrictedStruct(p.parseExpression)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}

	result := &ConditionalExpr{Location: tok.Location, Condition: cond, Then: then}

	isElse, err := p.peekIsKeyword(lexical.KeywordElse)
	if err != nil {
		return nil, err
	}
	if !isElse {
		return result, nil
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	isIf, err := p.peekIsKeyword(lexical.KeywordIf)
	if err != nil {
		return nil, err
	}
	if isIf {
		elseIf, err := p.parseConditionalExpr()
		if err != nil {
			return nil, err
		}
		result.Else = elseIf
		return result, nil
	}
	elseBlock, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}
	result.Else = elseBlock
	return result, nil
}

func (p *Parser) parseMatchExpr() (Expr, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordMatch)
	if err != nil {
		return nil, err
	}
	scrutinee, err := p.withRestrictedStruct(p.parseExpression)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceLeft); err != nil {
		return nil, err
	}

	var arms []MatchArm
	for {
		isClose, err := p.peekIsSymbol(lexical.SymbolBraceRight)
		if err != nil {
			return nil, err
		}
		if isClose {
			break
		}
		pattern, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(lexical.SymbolFatArrow); err != nil {
			return nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arms = append(arms, MatchArm{Pattern: pattern, Body: body})

		isComma, err := p.peekIsSymbol(lexical.SymbolComma)
		if err != nil {
			return nil, err
		}
		if isComma {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expectSymbol(lexical.SymbolBraceRight); err != nil {
		return nil, err
	}
	return &MatchExpr{Location: tok.Location, Scrutinee: scrutinee, Arms: arms}, nil
}

func (p *Parser) parseLoopExpr() (Expr, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordLoop)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}
	return &LoopExpr{Location: tok.Location, Body: body}, nil
}

func (p *Parser) parseReturnExpr() (Expr, *diagnostics.Diagnostic) {
	tok, err := p.expectKeyword(lexical.KeywordReturn)
	if err != nil {
		return nil, err
	}
	isTerm, err := p.peekIsSymbol(lexical.SymbolSemicolon)
	if err != nil {
		return nil, err
	}
	if isTerm {
		return &ReturnExpr{Location: tok.Location}, nil
	}
	isCloseBrace, err := p.peekIsSymbol(lexical.SymbolBraceRight)
	if err != nil {
		return nil, err
	}
	if isCloseBrace {
		return &ReturnExpr{Location: tok.Location}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ReturnExpr{Location: tok.Location, Value: value}, nil
}

func parseDecimalSmall(digits string) (int, error) {
	n := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, errNotDecimal
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

var errNotDecimal = &notDecimalError{}

type notDecimalError struct{}

func (*notDecimalError) Error() string { return "not a decimal integer" }
