// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a token stream into the Lox AST.
package parser

import (
	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/pkg/ast"
	"github.com/loxlang/golox/pkg/token"
)

// Parser consumes tokens produced by the lexer and builds the AST. Parse
// errors are reported to sink and the parser resyncs at statement
// boundaries so a single pass can surface more than one error.
type Parser struct {
	sink   *errors.Sink
	tokens []token.Token
	pos    int
}

// New creates a Parser over the given token stream.
func New(tokens []token.Token, sink *errors.Sink) *Parser {
	return &Parser{sink: sink, tokens: tokens}
}

func sp(pos token.Position) ast.Span { return ast.Span{Position: pos} }

// ParseProgram parses the entire token stream into the top-level Block
// so callers always get a single root node regardless of how many
// top-level statements the source contains.
func (p *Parser) ParseProgram() *ast.Block {
	start := p.peek().Pos
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return &ast.Block{Statements: stmts, Span: sp(joinPos(start, p.previous().Pos))}
}

// ---- declarations ----

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.funDecl("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	start := p.previous().Pos
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var super *ast.Variable
	if p.match(token.LESS) {
		superName := p.consume(token.IDENTIFIER, "Expect superclass name.")
		super = &ast.Variable{Name: superName, Span: sp(superName.Pos)}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	var methods []*ast.FuncDecl
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		methods = append(methods, p.funDecl("method").(*ast.FuncDecl))
	}
	end := p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassDecl{Name: name, Superclass: super, Methods: methods, Span: sp(joinPos(start, end.Pos))}
}

func (p *Parser) funDecl(kind string) ast.Stmt {
	start := p.peek().Pos
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block()

	return &ast.FuncDecl{Name: name, Params: params, Body: body, Span: sp(joinPos(start, body.Pos()))}
}

func (p *Parser) varDecl() ast.Stmt {
	start := p.previous().Pos
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}

	end := p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarDecl{Name: name, Initializer: init, Span: sp(joinPos(start, end.Pos))}
}

// ---- statements ----

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LEFT_BRACE):
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) exprStmt() ast.Stmt {
	start := p.peek().Pos
	expr := p.expression()
	end := p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr, Span: sp(joinPos(start, end.Pos))}
}

func (p *Parser) printStmt() ast.Stmt {
	start := p.previous().Pos
	expr := p.expression()
	end := p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Expr: expr, Span: sp(joinPos(start, end.Pos))}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	} else {
		value = &ast.Literal{Kind: ast.LitNil, Span: sp(keyword.Pos)}
	}
	end := p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value, Span: sp(joinPos(keyword.Pos, end.Pos))}
}

func (p *Parser) ifStmt() ast.Stmt {
	start := p.previous().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	test := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Test: test, Then: then, Else: elseBranch, Span: sp(joinPos(start, then.Pos()))}
}

func (p *Parser) whileStmt() ast.Stmt {
	start := p.previous().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	test := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Test: test, Body: body, Span: sp(joinPos(start, body.Pos()))}
}

// forStmt desugars `for (init; cond; step) body` into the equivalent
// while-loop block.
func (p *Parser) forStmt() ast.Stmt {
	start := p.previous().Pos
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	end := p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{
			Statements: []ast.Stmt{body, &ast.ExprStmt{Expr: increment, Span: sp(increment.Pos())}},
			Span:       sp(joinPos(body.Pos(), increment.Pos())),
		}
	}

	if condition == nil {
		condition = &ast.Literal{Kind: ast.LitBool, Bool: true, Span: sp(start)}
	}
	loop := ast.Stmt(&ast.While{Test: condition, Body: body, Span: sp(joinPos(start, end.Pos))})

	if initializer != nil {
		loop = &ast.Block{Statements: []ast.Stmt{initializer, loop}, Span: sp(joinPos(start, end.Pos))}
	}

	return loop
}

func (p *Parser) block() *ast.Block {
	start := p.previous().Pos
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	end := p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return &ast.Block{Statements: stmts, Span: sp(joinPos(start, end.Pos))}
}

// ---- expressions ----

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value, Span: sp(joinPos(target.Pos(), value.Pos()))}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value, Span: sp(joinPos(target.Pos(), value.Pos()))}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right, Span: sp(joinPos(expr.Pos(), right.Pos()))}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right, Span: sp(joinPos(expr.Pos(), right.Pos()))}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EQUAL_EQUAL, token.BANG_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right, Span: sp(joinPos(expr.Pos(), right.Pos()))}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right, Span: sp(joinPos(expr.Pos(), right.Pos()))}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right, Span: sp(joinPos(expr.Pos(), right.Pos()))}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right, Span: sp(joinPos(expr.Pos(), right.Pos()))}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		operand := p.unary()
		return &ast.Unary{Op: op, Operand: operand, Span: sp(joinPos(op.Pos, operand.Pos()))}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name, Span: sp(joinPos(expr.Pos(), name.Pos))}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args, Span: sp(joinPos(callee.Pos(), paren.Pos))}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Kind: ast.LitBool, Bool: false, Span: sp(p.previous().Pos)}
	case p.match(token.TRUE):
		return &ast.Literal{Kind: ast.LitBool, Bool: true, Span: sp(p.previous().Pos)}
	case p.match(token.NIL):
		return &ast.Literal{Kind: ast.LitNil, Span: sp(p.previous().Pos)}
	case p.match(token.NUMBER):
		tok := p.previous()
		return &ast.Literal{Kind: ast.LitNumber, Number: tok.Literal.Number, Span: sp(tok.Pos)}
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.Literal{Kind: ast.LitString, Str: tok.Literal.Str, Span: sp(tok.Pos)}
	case p.match(token.THIS):
		tok := p.previous()
		return &ast.This{Keyword: tok, Span: sp(tok.Pos)}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method, Span: sp(joinPos(keyword.Pos, method.Pos))}
	case p.match(token.IDENTIFIER):
		tok := p.previous()
		return &ast.Variable{Name: tok, Span: sp(tok.Pos)}
	case p.match(token.LEFT_PAREN):
		start := p.previous().Pos
		inner := p.expression()
		end := p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: inner, Span: sp(joinPos(start, end.Pos))}
	default:
		p.errorAt(p.peek(), "Expect expression.")
		panic(parseError{})
	}
}

// ---- token-stream helpers ----

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.pos++
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	return !p.atEnd() && p.peek().Type == t
}

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		tok := p.peek()
		p.pos++
		return tok
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) atEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.pos] }

func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

// parseError unwinds declaration() to the resync point; the diagnostic
// itself is already recorded in the sink by errorAt before panicking.
type parseError struct{}

func (p *Parser) errorAt(tok token.Token, message string) {
	p.sink.Report(errors.Parse, tok.Pos, "Error at '%s': %s", tok.Lexeme, message)
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so a single parse pass can surface more than one error.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.pos++
	}
}

func joinPos(a, b token.Position) token.Position {
	return token.Position{Line: a.Line, Start: a.Start, End: b.End}
}
