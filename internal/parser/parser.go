// Package parser implements brash's recursive-descent/Pratt parser,
// producing an *ast.Program from a token stream. Grounded on the
// teacher's internal/parser/parser.go: a prefix/infix parse-function
// table keyed by token type, precedence constants, and a curToken/
// peekToken two-token lookahead buffer, adapted to brash's `end`-
// terminated block grammar (no indentation sensitivity) and its own
// operator precedence table from spec.md §4.2.
package parser

import (
	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/diag"
	"github.com/brashlang/brash/internal/lexer"
	"github.com/brashlang/brash/internal/types"
)

// Precedence levels, low to high, per spec.md §4.2: "pipe, null-coalesce,
// logical-or, logical-and, comparison, cast, range, additive,
// multiplicative, unary, call/member/index".
const (
	_ int = iota
	LOWEST
	PIPE
	COALESCE
	LOGICAL_OR
	LOGICAL_AND
	COMPARISON
	CAST
	RANGE
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.PIPE:      PIPE,
	lexer.QQUESTION: COALESCE,
	lexer.OR:        LOGICAL_OR,
	lexer.AND:       LOGICAL_AND,
	lexer.EQ:        COMPARISON,
	lexer.NEQ:       COMPARISON,
	lexer.LT:        COMPARISON,
	lexer.GT:        COMPARISON,
	lexer.LTE:       COMPARISON,
	lexer.GTE:       COMPARISON,
	lexer.AS:        CAST,
	lexer.DOTDOT:    RANGE,
	lexer.PLUS:      ADDITIVE,
	lexer.MINUS:     ADDITIVE,
	lexer.STAR:      MULTIPLICATIVE,
	lexer.SLASH:     MULTIPLICATIVE,
	lexer.PERCENT:   MULTIPLICATIVE,
	lexer.LPAREN:    CALL,
	lexer.DOT:       CALL,
	lexer.QDOT:      CALL,
	lexer.LBRACKET:  CALL,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser consumes a lexer.Lexer and builds an *ast.Program, reporting
// syntax errors to a diag.Sink with codes E000 (lex) and E001 (parse)
// per spec.md §4.2.
type Parser struct {
	l    *lexer.Lexer
	sink *diag.Sink
	file string

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser over l, reporting diagnostics to sink.
func New(l *lexer.Lexer, file string, sink *diag.Sink) *Parser {
	p := &Parser{l: l, file: file, sink: sink}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.ISTRING, p.parseInterpolatedStringLiteral)
	p.registerPrefix(lexer.MLSTRING, p.parseMultilineStringLiteral)
	p.registerPrefix(lexer.CHAR, p.parseCharLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.SELF, p.parseSelf)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedOrTuple)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseMapLiteral)
	p.registerPrefix(lexer.MINUS, p.parseUnary)
	p.registerPrefix(lexer.BANG, p.parseUnary)
	p.registerPrefix(lexer.CMD, p.parseCommand)
	p.registerPrefix(lexer.EXEC, p.parseCommand)
	p.registerPrefix(lexer.SPAWN, p.parseCommand)
	p.registerPrefix(lexer.ASYNC, p.parseAsyncCommand)
	p.registerPrefix(lexer.AWAIT, p.parseAwait)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, tt := range []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE,
		lexer.AND, lexer.OR,
	} {
		p.registerInfix(tt, p.parseBinary)
	}
	p.registerInfix(lexer.AS, p.parseCast)
	p.registerInfix(lexer.DOTDOT, p.parseRange)
	p.registerInfix(lexer.PIPE, p.parsePipe)
	p.registerInfix(lexer.QQUESTION, p.parseNullCoalesce)
	p.registerInfix(lexer.LPAREN, p.parseCallOrMethodArgs)
	p.registerInfix(lexer.DOT, p.parseMemberOrMethod)
	p.registerInfix(lexer.QDOT, p.parseSafeNavigation)
	p.registerInfix(lexer.LBRACKET, p.parseIndex)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) { p.prefixParseFns[tt] = fn }
func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn)   { p.infixParseFns[tt] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{Line: p.curToken.Line, Column: p.curToken.Column - 1, File: p.file}
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peekToken.Type == tt }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s (%q)", tt, p.curToken.Type, p.curToken.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.sink.Errorf(p.file, p.curToken.Line, p.curToken.Column, diag.E001, format, args...)
}

// skipTerminators consumes statement-separator tokens (newline, `;`).
func (p *Parser) skipTerminators() {
	for p.curIs(lexer.NEWLINE) || p.curIs(lexer.SEMICOLON) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Pos: p.pos()}
	p.skipTerminators()
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipTerminators()
	}
	for _, e := range p.l.Errors() {
		p.sink.Errorf(p.file, 0, 0, diag.E000, "%s", e)
	}
	return prog
}

func blockTerminator(tt lexer.TokenType) bool {
	switch tt {
	case lexer.END, lexer.ELSE, lexer.ELIF, lexer.CATCH, lexer.EOF:
		return true
	default:
		return false
	}
}

// parseBlock parses statements until a block terminator keyword is seen
// (without consuming it).
func (p *Parser) parseBlock() []ast.Stmt {
	var stmts []ast.Stmt
	p.skipTerminators()
	for !blockTerminator(p.curToken.Type) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipTerminators()
		if p.curIs(lexer.EOF) {
			break
		}
	}
	return stmts
}

// parseType parses a type annotation: `int`, `string?`, `int[]`,
// `map<K,V>`, `(T, T)`, or a NamedType identifier, per spec.md §6.
func (p *Parser) parseType() types.Type {
	var base types.Type
	switch p.curToken.Type {
	case lexer.IDENT:
		base = p.namedOrPrimitive(p.curToken.Literal)
		p.nextToken()
	case lexer.VOID:
		base = types.NewVoid()
		p.nextToken()
	case lexer.LPAREN:
		p.nextToken()
		var elems []types.Type
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			elems = append(elems, p.parseType())
			if p.curIs(lexer.COMMA) {
				p.nextToken()
			}
		}
		p.expect(lexer.RPAREN)
		base = &types.Tuple{Elements: elems}
	default:
		p.errorf("expected a type, got %s", p.curToken.Type)
		p.nextToken()
		return &types.Unknown{}
	}

	for {
		switch {
		case p.curIs(lexer.LBRACKET) && p.peekIs(lexer.RBRACKET):
			p.nextToken()
			p.nextToken()
			base = &types.Array{Elem: base}
		case p.curIs(lexer.QUESTION):
			p.nextToken()
			base = &types.Nullable{Base: base}
		default:
			return base
		}
	}
}

func (p *Parser) namedOrPrimitive(name string) types.Type {
	switch name {
	case "int":
		return types.NewInt()
	case "float":
		return types.NewFloat()
	case "string":
		return types.NewString()
	case "bool":
		return types.NewBool()
	case "char":
		return types.NewChar()
	case "any":
		return types.NewAny()
	case "map":
		return p.parseMapType()
	default:
		return &types.Named{Name: name}
	}
}

func (p *Parser) parseMapType() types.Type {
	if !p.peekIs(lexer.LT) {
		return &types.Named{Name: "map"}
	}
	p.nextToken() // consume "map"
	p.nextToken() // consume "<"
	key := p.parseType()
	if p.curIs(lexer.COMMA) {
		p.nextToken()
	}
	value := p.parseType()
	if p.curIs(lexer.GT) {
		p.nextToken()
	}
	return &types.Map{Key: key, Value: value}
}

func (p *Parser) parseIdentPath() string {
	name := p.curToken.Literal
	p.nextToken()
	for p.curIs(lexer.DOT) && p.peekIs(lexer.IDENT) {
		p.nextToken()
		name += "." + p.curToken.Literal
		p.nextToken()
	}
	return name
}
