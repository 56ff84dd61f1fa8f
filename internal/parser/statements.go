package parser

import (
	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

// statement -> exprStmt | forStmt | ifStmt | printStmt
//           | returnStmt | whileStmt | breakStmt | block
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.BREAK):
		return p.breakStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.Block{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// block -> "{" declaration* "}"   (the opening brace has already been consumed)
func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RIGHT_BRACE, diagnostics.ErrUnexpectedToken, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, diagnostics.ErrUnexpectedToken, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, diagnostics.ErrUnexpectedToken, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Condition: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, diagnostics.ErrUnexpectedToken, "Expect ';' after value.")
	return &ast.Print{Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, diagnostics.ErrUnexpectedToken, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) breakStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.SEMICOLON, diagnostics.ErrUnexpectedToken, "Expect ';' after 'break'.")
	return &ast.Break{Keyword: keyword}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, diagnostics.ErrUnexpectedToken, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, diagnostics.ErrUnexpectedToken, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Condition: cond, Body: body}
}

// forStatement desugars `for (init; cond; incr) body` at parse time
// into `{ init; while (cond) { body; incr; } }` per spec §4.2.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, diagnostics.ErrUnexpectedToken, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, diagnostics.ErrUnexpectedToken, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, diagnostics.ErrUnexpectedToken, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Statements: []ast.Stmt{body, &ast.Expression{Expression: increment}}}
	}

	if condition == nil {
		condition = ast.NewLiteral(&p.ids, true)
	}
	body = &ast.While{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.Block{Statements: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, diagnostics.ErrUnexpectedToken, "Expect ';' after expression.")
	return &ast.Expression{Expression: expr}
}
