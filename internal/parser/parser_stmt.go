package parser

import (
	"github.com/brashlang/brash/internal/ast"
	"github.com/brashlang/brash/internal/lexer"
	"github.com/brashlang/brash/internal/types"
)

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseVariableOrTupleDeclaration(ast.Let)
	case lexer.CONST:
		return p.parseVariableOrTupleDeclaration(ast.Const)
	case lexer.PUB:
		return p.parsePublicDeclaration()
	case lexer.FN:
		return p.parseFunctionDeclaration(false, false)
	case lexer.ASYNC:
		p.nextToken()
		return p.parseFunctionDeclaration(true, false)
	case lexer.STRUCT:
		return p.parseStructDeclaration(false)
	case lexer.ENUM:
		return p.parseEnumDeclaration(false)
	case lexer.IMPL:
		return p.parseImplBlock()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.FOR:
		return p.parseForLoop()
	case lexer.WHILE:
		return p.parseWhileLoop()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.IMPORT:
		return p.parseImportStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.BREAK:
		pos := p.pos()
		p.nextToken()
		return &ast.BreakStatement{Pos: pos}
	case lexer.CONTINUE:
		pos := p.pos()
		p.nextToken()
		return &ast.ContinueStatement{Pos: pos}
	case lexer.SH:
		return p.parseShStatement()
	default:
		return p.parseAssignmentOrExpressionStatement()
	}
}

func (p *Parser) parsePublicDeclaration() ast.Stmt {
	p.nextToken() // consume "pub"
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseVariableOrTupleDeclarationPublic(ast.Let, true)
	case lexer.CONST:
		return p.parseVariableOrTupleDeclarationPublic(ast.Const, true)
	case lexer.FN:
		return p.parseFunctionDeclaration(false, true)
	case lexer.ASYNC:
		p.nextToken()
		return p.parseFunctionDeclaration(true, true)
	case lexer.STRUCT:
		return p.parseStructDeclaration(true)
	case lexer.ENUM:
		return p.parseEnumDeclaration(true)
	default:
		p.errorf("pub is not valid before %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseVariableOrTupleDeclaration(kind ast.DeclKind) ast.Stmt {
	return p.parseVariableOrTupleDeclarationPublic(kind, false)
}

// parseVariableOrTupleDeclarationPublic parses `let [mut] name[: T] = expr`,
// `let mut name[: T] = expr`, or a tuple destructuring
// `let (mut? a, mut? b) = expr`.
func (p *Parser) parseVariableOrTupleDeclarationPublic(kind ast.DeclKind, isPublic bool) ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume let/const

	if kind == ast.Let && p.curIs(lexer.LPAREN) {
		return p.parseTupleVariableDeclaration(pos)
	}

	if kind == ast.Let && p.curIs(lexer.MUT) {
		kind = ast.Mut
		p.nextToken()
	}

	if !p.curIs(lexer.IDENT) {
		p.errorf("expected identifier after let/const, got %s", p.curToken.Type)
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()

	var declType types.Type
	if p.curIs(lexer.COLON) {
		p.nextToken()
		declType = p.parseType()
	}

	var value ast.Expr
	if p.curIs(lexer.ASSIGN) {
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}

	return &ast.VariableDeclaration{
		Kind: kind, Name: name, Type: declType, Value: value, IsPublic: isPublic, Pos: pos,
	}
}

func (p *Parser) parseTupleVariableDeclaration(pos ast.Pos) ast.Stmt {
	p.nextToken() // consume "("
	var elements []ast.TupleElement
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		mutable := false
		if p.curIs(lexer.MUT) {
			mutable = true
			p.nextToken()
		}
		if p.curIs(lexer.IDENT) {
			elements = append(elements, ast.TupleElement{Name: p.curToken.Literal, IsMutable: mutable})
			p.nextToken()
		}
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.ASSIGN)
	value := p.parseExpression(LOWEST)
	return &ast.TupleVariableDeclaration{Elements: elements, Value: value, Pos: pos}
}

func (p *Parser) parseFunctionDeclaration(isAsync, isPublic bool) ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "fn"
	name := p.curToken.Literal
	p.nextToken()
	params := p.parseParams()

	var retType types.Type
	if p.curIs(lexer.COLON) {
		p.nextToken()
		retType = p.parseType()
	}

	body := p.parseBlock()
	p.expect(lexer.END)

	return &ast.FunctionDeclaration{
		Name: name, Params: params, ReturnType: retType, Body: body,
		IsAsync: isAsync, IsPublic: isPublic, Pos: pos,
	}
}

func (p *Parser) parseParams() []*ast.Param {
	p.expect(lexer.LPAREN)
	var params []*ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		pos := p.pos()
		mutable := false
		if p.curIs(lexer.MUT) {
			mutable = true
			p.nextToken()
		}
		if p.curIs(lexer.SELF) {
			params = append(params, &ast.Param{Name: "self", IsMutable: mutable, Pos: pos})
			p.nextToken()
		} else {
			name := p.curToken.Literal
			p.nextToken()
			var pt types.Type
			if p.curIs(lexer.COLON) {
				p.nextToken()
				pt = p.parseType()
			}
			params = append(params, &ast.Param{Name: name, Type: pt, IsMutable: mutable, Pos: pos})
		}
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseStructDeclaration(isPublic bool) ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "struct"
	name := p.curToken.Literal
	p.nextToken()
	p.skipTerminators()

	var fields []ast.FieldDecl
	for !p.curIs(lexer.END) && !p.curIs(lexer.EOF) {
		fieldPos := p.pos()
		fname := p.curToken.Literal
		p.nextToken()
		p.expect(lexer.COLON)
		ftype := p.parseType()
		fields = append(fields, ast.FieldDecl{Name: fname, Type: ftype, Pos: fieldPos})
		p.skipTerminators()
	}
	p.expect(lexer.END)
	return &ast.StructDeclaration{Name: name, Fields: fields, IsPublic: isPublic, Pos: pos}
}

func (p *Parser) parseEnumDeclaration(isPublic bool) ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "enum"
	name := p.curToken.Literal
	p.nextToken()
	p.skipTerminators()

	var variants []string
	for !p.curIs(lexer.END) && !p.curIs(lexer.EOF) {
		variants = append(variants, p.curToken.Literal)
		p.nextToken()
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		}
		p.skipTerminators()
	}
	p.expect(lexer.END)
	return &ast.EnumDeclaration{Name: name, Variants: variants, IsPublic: isPublic, Pos: pos}
}

func (p *Parser) parseImplBlock() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "impl"
	typeName := p.curToken.Literal
	p.nextToken()
	p.skipTerminators()

	var methods []*ast.MethodDeclaration
	for !p.curIs(lexer.END) && !p.curIs(lexer.EOF) {
		isStatic := false
		if p.curIs(lexer.STATIC) {
			isStatic = true
			p.nextToken()
		}
		if !p.curIs(lexer.FN) {
			p.errorf("expected fn inside impl block, got %s", p.curToken.Type)
			p.nextToken()
			continue
		}
		methods = append(methods, p.parseMethodDeclaration(isStatic))
		p.skipTerminators()
	}
	p.expect(lexer.END)
	return &ast.ImplBlock{TypeName: typeName, Methods: methods, Pos: pos}
}

func (p *Parser) parseMethodDeclaration(isStatic bool) *ast.MethodDeclaration {
	pos := p.pos()
	p.nextToken() // consume "fn"
	name := p.curToken.Literal
	p.nextToken()
	params := p.parseParams()

	var retType types.Type
	if p.curIs(lexer.COLON) {
		p.nextToken()
		retType = p.parseType()
	}

	body := p.parseBlock()
	p.expect(lexer.END)
	return &ast.MethodDeclaration{Name: name, IsStatic: isStatic, Params: params, ReturnType: retType, Body: body, Pos: pos}
}

func (p *Parser) parseIfStatement() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "if"
	cond := p.parseExpression(LOWEST)
	p.skipTerminators()
	then := p.parseBlock()

	var elifs []ast.ElseIf
	for p.curIs(lexer.ELIF) {
		elifPos := p.pos()
		p.nextToken()
		elifCond := p.parseExpression(LOWEST)
		p.skipTerminators()
		elifBody := p.parseBlock()
		elifs = append(elifs, ast.ElseIf{Condition: elifCond, Body: elifBody, Pos: elifPos})
	}

	var elseBody []ast.Stmt
	if p.curIs(lexer.ELSE) {
		p.nextToken()
		p.skipTerminators()
		elseBody = p.parseBlock()
	}
	p.expect(lexer.END)
	return &ast.IfStatement{Condition: cond, Then: then, ElseIfs: elifs, Else: elseBody, Pos: pos}
}

func (p *Parser) parseForLoop() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "for"
	varName := p.curToken.Literal
	p.nextToken()
	p.expect(lexer.IN)
	source := p.parseExpression(LOWEST)
	p.skipTerminators()
	body := p.parseBlock()
	p.expect(lexer.END)
	return &ast.ForLoop{Variable: varName, Source: source, Body: body, Pos: pos}
}

func (p *Parser) parseWhileLoop() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "while"
	cond := p.parseExpression(LOWEST)
	p.skipTerminators()
	body := p.parseBlock()
	p.expect(lexer.END)
	return &ast.WhileLoop{Condition: cond, Body: body, Pos: pos}
}

func (p *Parser) parseTryStatement() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "try"
	p.skipTerminators()
	tryBlock := p.parseBlock()
	p.expect(lexer.CATCH)
	errVar := p.curToken.Literal
	p.nextToken()
	p.skipTerminators()
	catchBlock := p.parseBlock()
	p.expect(lexer.END)
	return &ast.TryStatement{ErrorVar: errVar, TryBlock: tryBlock, CatchBlock: catchBlock, Pos: pos}
}

func (p *Parser) parseThrowStatement() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "throw"
	value := p.parseExpression(LOWEST)
	return &ast.ThrowStatement{Value: value, Pos: pos}
}

func (p *Parser) parseImportStatement() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "import"

	if p.curIs(lexer.STRING) {
		module := p.curToken.Literal
		p.nextToken()
		return &ast.ImportStatement{Module: module, Pos: pos}
	}

	if p.curIs(lexer.LBRACE) {
		p.nextToken()
		var items []string
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			items = append(items, p.curToken.Literal)
			p.nextToken()
			if p.curIs(lexer.COMMA) {
				p.nextToken()
			}
		}
		p.expect(lexer.RBRACE)
		p.expect(lexer.FROM)
		module := p.curToken.Literal
		p.nextToken()
		return &ast.ImportStatement{FromModule: module, Items: items, Pos: pos}
	}

	// import Name from "m"
	name := p.curToken.Literal
	p.nextToken()
	p.expect(lexer.FROM)
	module := p.curToken.Literal
	p.nextToken()
	return &ast.ImportStatement{FromModule: module, Items: []string{name}, Pos: pos}
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "return"
	if p.curIs(lexer.NEWLINE) || p.curIs(lexer.SEMICOLON) || blockTerminator(p.curToken.Type) {
		return &ast.ReturnStatement{Pos: pos}
	}
	value := p.parseExpression(LOWEST)
	return &ast.ReturnStatement{Value: value, Pos: pos}
}

// parseShStatement parses `sh { ...raw script text... }`. The script text
// is rebuilt from the brash tokens between the braces, up to the matching
// closing brace, by joining their literals with single spaces. The
// original spacing is not preserved, and string tokens contribute their
// unquoted contents.
func (p *Parser) parseShStatement() ast.Stmt {
	pos := p.pos()
	p.nextToken() // consume "sh"
	p.expect(lexer.LBRACE)
	var script string
	depth := 1
	for depth > 0 && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.LBRACE) {
			depth++
		}
		if p.curIs(lexer.RBRACE) {
			depth--
			if depth == 0 {
				p.nextToken()
				break
			}
		}
		if script != "" {
			script += " "
		}
		script += p.curToken.Literal
		p.nextToken()
	}
	return &ast.ShStatement{Script: script, Pos: pos}
}

// parseAssignmentOrExpressionStatement parses either `target = value` or a
// bare expression statement, disambiguated by look-ahead after parsing the
// left-hand expression.
func (p *Parser) parseAssignmentOrExpressionStatement() ast.Stmt {
	pos := p.pos()
	expr := p.parseExpression(LOWEST)
	if p.curIs(lexer.ASSIGN) {
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return &ast.Assignment{Target: expr, Value: value, Pos: pos}
	}
	return &ast.ExpressionStatement{Expression: expr, Pos: pos}
}
