package parser

import (
	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

// declaration -> classDecl | funDecl | varDecl | statement
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDecl -> "class" IDENT ("<" IDENT)? "{" function* "}"
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, diagnostics.ErrUnexpectedToken, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		superTok := p.consume(token.IDENTIFIER, diagnostics.ErrUnexpectedToken, "Expect superclass name.")
		superclass = ast.NewVariable(&p.ids, superTok)
	}

	p.consume(token.LEFT_BRACE, diagnostics.ErrUnexpectedToken, "Expect '{' before class body.")

	var methods []*ast.Function
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		m := p.function("method")
		methods = append(methods, m.(*ast.Function))
	}
	p.consume(token.RIGHT_BRACE, diagnostics.ErrUnexpectedToken, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

// function -> IDENT "(" params? ")" block
func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.IDENTIFIER, diagnostics.ErrUnexpectedToken, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, diagnostics.ErrUnexpectedToken, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.reportNonFatal(p.peek(), diagnostics.ErrTooManyParams, "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, diagnostics.ErrUnexpectedToken, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, diagnostics.ErrUnexpectedToken, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, diagnostics.ErrUnexpectedToken, "Expect '{' before "+kind+" body.")
	body := p.block()

	return &ast.Function{Name: name, Params: params, Body: body}
}

// varDecl -> "var" IDENT ("=" expression)? ";"
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, diagnostics.ErrUnexpectedToken, "Expect variable name.")

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, diagnostics.ErrUnexpectedToken, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: initializer}
}
