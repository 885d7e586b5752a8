package parser

import (
	"strconv"
	"strings"

	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/lexer"
)

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf("unexpected token %s (%q) in expression", p.curToken.Type, p.curToken.Literal)
		p.nextToken()
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.SEMICOLON) && precedence < p.curPrecedence() {
		infix := p.infixParseFns[p.curToken.Type]
		if infix == nil {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	pos := p.pos()
	name := p.curToken.Literal
	p.nextToken()
	if p.curIs(lexer.LBRACE) && startsUpper(name) {
		return p.parseStructLiteralFields(name, pos)
	}
	return &ast.Identifier{Name: name, Pos: pos}
}

func startsUpper(s string) bool {
	return s != "" && strings.ToUpper(s[:1]) == s[:1]
}

func (p *Parser) parseSelf() ast.Expr {
	pos := p.pos()
	p.nextToken()
	return &ast.Self{Pos: pos}
}

func (p *Parser) parseIntLiteral() ast.Expr {
	pos := p.pos()
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", p.curToken.Literal)
	}
	p.nextToken()
	return &ast.Literal{Kind: ast.IntLit, IntValue: v, Pos: pos}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	pos := p.pos()
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf("invalid float literal %q", p.curToken.Literal)
	}
	p.nextToken()
	return &ast.Literal{Kind: ast.FloatLit, FloatValue: v, Pos: pos}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	pos := p.pos()
	v := p.curToken.Literal
	p.nextToken()
	return &ast.Literal{Kind: ast.StringLit, StringValue: v, Pos: pos}
}

func (p *Parser) parseInterpolatedStringLiteral() ast.Expr {
	pos := p.pos()
	v := p.curToken.Literal
	p.nextToken()
	return &ast.Literal{Kind: ast.StringLit, StringValue: v, IsInterpolated: true, Pos: pos}
}

func (p *Parser) parseMultilineStringLiteral() ast.Expr {
	pos := p.pos()
	v := p.curToken.Literal
	p.nextToken()
	return &ast.Literal{Kind: ast.StringLit, StringValue: v, IsMultiline: true, Pos: pos}
}

func (p *Parser) parseCharLiteral() ast.Expr {
	pos := p.pos()
	r := []rune(p.curToken.Literal)
	var v rune
	if len(r) > 0 {
		v = r[0]
	}
	p.nextToken()
	return &ast.Literal{Kind: ast.CharLit, CharValue: v, Pos: pos}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	pos := p.pos()
	v := p.curIs(lexer.TRUE)
	p.nextToken()
	return &ast.Literal{Kind: ast.BoolLit, BoolValue: v, Pos: pos}
}

func (p *Parser) parseNullLiteral() ast.Expr {
	pos := p.pos()
	p.nextToken()
	return &ast.Literal{Kind: ast.NullLit, Pos: pos}
}

func (p *Parser) parseUnary() ast.Expr {
	pos := p.pos()
	op := p.curToken.Literal
	p.nextToken()
	operand := p.parseExpression(UNARY)
	return &ast.Unary{Op: op, Operand: operand, Pos: pos}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	pos := p.pos()
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.Binary{Op: op, Left: left, Right: right, Pos: pos}
}

func (p *Parser) parseCast(left ast.Expr) ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "as"
	target := p.parseType()
	return &ast.Cast{Value: left, TargetType: target, Pos: pos}
}

func (p *Parser) parseRange(left ast.Expr) ast.Expr {
	pos := p.pos()
	p.nextToken() // consume ".."
	end := p.parseExpression(RANGE)
	r := &ast.Range{Start: left, End: end, Pos: pos}
	if p.curIs(lexer.STEP) {
		p.nextToken()
		r.Step = p.parseExpression(RANGE)
	}
	return r
}

func (p *Parser) parsePipe(left ast.Expr) ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "|"
	right := p.parseExpression(PIPE)
	return &ast.Pipe{Left: left, Right: right, Pos: pos}
}

func (p *Parser) parseNullCoalesce(left ast.Expr) ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "??"
	right := p.parseExpression(COALESCE)
	return &ast.NullCoalesce{Left: left, Right: right, Pos: pos}
}

// parseGroupedOrTuple parses `(expr)` or `(e1, e2, ...)`.
func (p *Parser) parseGroupedOrTuple() ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "("
	if p.curIs(lexer.RPAREN) {
		p.nextToken()
		return &ast.TupleExpression{Pos: pos}
	}
	first := p.parseExpression(LOWEST)
	if p.curIs(lexer.COMMA) {
		elems := []ast.Expr{first}
		for p.curIs(lexer.COMMA) {
			p.nextToken()
			elems = append(elems, p.parseExpression(LOWEST))
		}
		p.expect(lexer.RPAREN)
		return &ast.TupleExpression{Elements: elems, Pos: pos}
	}
	p.expect(lexer.RPAREN)
	return first
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "["
	var elems []ast.Expr
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACKET)
	return &ast.ArrayLiteral{Elements: elems, Pos: pos}
}

func (p *Parser) parseMapLiteral() ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "{"
	var entries []ast.MapEntry
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		key := p.parseExpression(LOWEST)
		p.expect(lexer.COLON)
		value := p.parseExpression(LOWEST)
		entries = append(entries, ast.MapEntry{Key: key, Value: value})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.MapLiteral{Entries: entries, Pos: pos}
}

// parseCallOrMethodArgs parses the `(args)` suffix of a call expression,
// treating `left` as either a plain function-call callee or, when `left`
// is a MemberAccess, a method call on its object.
func (p *Parser) parseCallOrMethodArgs(left ast.Expr) ast.Expr {
	pos := p.pos()
	args := p.parseArgList()
	if member, ok := left.(*ast.MemberAccess); ok {
		return &ast.MethodCall{Object: member.Object, Name: member.Field, Args: args, Pos: pos}
	}
	return &ast.FunctionCall{Callee: left, Args: args, Pos: pos}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

// parseMemberOrMethod parses `obj.field` as a MemberAccess; the caller's
// outer Pratt loop upgrades it to a MethodCall if `(` follows.
func (p *Parser) parseMemberOrMethod(left ast.Expr) ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "."
	field := p.curToken.Literal
	isUpper := startsUpper(field)
	p.nextToken()

	if ident, ok := left.(*ast.Identifier); ok && isUpper && !p.curIs(lexer.LPAREN) {
		// EnumName.Variant: the left identifier names a type, not a value.
		return &ast.EnumLiteral{EnumName: ident.Name, Variant: field, Pos: pos}
	}
	return &ast.MemberAccess{Object: left, Field: field, Pos: pos}
}

func (p *Parser) parseSafeNavigation(left ast.Expr) ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "?."
	field := p.curToken.Literal
	p.nextToken()
	return &ast.SafeNavigation{Object: left, Field: field, Pos: pos}
}

func (p *Parser) parseIndex(left ast.Expr) ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "["
	index := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACKET)
	return &ast.IndexAccess{Object: left, Index: index, Pos: pos}
}

// parseCommand parses `cmd(...)`, `exec(...)`, `spawn(...)`, per spec.md
// §4.4. The argument list may be a single Command-typed expression
// (pipeline form) or a list of plain expressions.
func (p *Parser) parseCommand() ast.Expr {
	pos := p.pos()
	kind := commandKindFor(p.curToken.Type)
	p.nextToken()
	args := p.parseArgList()
	return &ast.Command{Kind: kind, Args: args, Pos: pos}
}

func (p *Parser) parseAsyncCommand() ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "async"
	kind := commandKindFor(p.curToken.Type)
	p.nextToken()
	args := p.parseArgList()
	return &ast.Command{Kind: kind, IsAsync: true, Args: args, Pos: pos}
}

func commandKindFor(tt lexer.TokenType) ast.CommandKind {
	switch tt {
	case lexer.EXEC:
		return ast.Exec
	case lexer.SPAWN:
		return ast.Spawn
	default:
		return ast.Cmd
	}
}

func (p *Parser) parseAwait() ast.Expr {
	pos := p.pos()
	p.nextToken() // consume "await"
	value := p.parseExpression(UNARY)
	return &ast.Await{Value: value, Pos: pos}
}

// parseStructLiteralFields parses the `{field: value, ...}` part of
// `TypeName{field: value, ...}`. parseIdentifier calls it when an
// uppercase-initial identifier is immediately followed by `{`: struct
// literals share the IDENT prefix slot with bare identifiers and are
// disambiguated by that look-ahead.
func (p *Parser) parseStructLiteralFields(typeName string, pos ast.Pos) ast.Expr {
	p.nextToken() // consume "{"
	var fields []ast.FieldInit
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		fieldPos := p.pos()
		name := p.curToken.Literal
		p.nextToken()
		p.expect(lexer.COLON)
		value := p.parseExpression(LOWEST)
		fields = append(fields, ast.FieldInit{Name: name, Value: value, Pos: fieldPos})
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.StructLiteral{TypeName: typeName, Fields: fields, Pos: pos}
}
