package parser

import (
	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

// expression -> assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment -> (call ".")? IDENT "=" assignment | logic_or
//
// Per spec §4.2: parse an expression; if followed by '=', the left-hand
// side must already have parsed out as a Variable (-> Assign) or a Get
// (-> Set). Anything else is reported but non-fatal, and the
// already-parsed left-hand expression is returned unchanged.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return ast.NewAssign(&p.ids, target.Name, value)
		case *ast.Get:
			return ast.NewSet(&p.ids, target.Object, target.Name, value)
		default:
			p.reportNonFatal(equals, diagnostics.ErrInvalidAssignTgt, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

// logic_or -> logic_and ("or" logic_and)*
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogical(&p.ids, expr, op, right)
	}
	return expr
}

// logic_and -> equality ("and" equality)*
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogical(&p.ids, expr, op, right)
	}
	return expr
}

// equality -> comparison (("!=" | "==") comparison)*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinary(&p.ids, expr, op, right)
	}
	return expr
}

// comparison -> term (("<"|"<="|">"|">=") term)*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = ast.NewBinary(&p.ids, expr, op, right)
	}
	return expr
}

// term -> factor (("-"|"+") factor)*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = ast.NewBinary(&p.ids, expr, op, right)
	}
	return expr
}

// factor -> unary (("/"|"*") unary)*
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinary(&p.ids, expr, op, right)
	}
	return expr
}

// unary -> ("!"|"-") unary | call
func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnary(&p.ids, op, right)
	}
	return p.call()
}

// call -> primary ( "(" args? ")" | "." IDENT )*
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, diagnostics.ErrUnexpectedToken, "Expect property name after '.'.")
			expr = ast.NewGet(&p.ids, expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.reportNonFatal(p.peek(), diagnostics.ErrTooManyArgs, "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, diagnostics.ErrUnexpectedToken, "Expect ')' after arguments.")
	return ast.NewCall(&p.ids, callee, paren, args)
}

// primary -> NUMBER | STRING | "true" | "false" | "nil"
//         | "this" | IDENT | "(" expression ")"
//         | "super" "." IDENT
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return ast.NewLiteral(&p.ids, false)
	case p.match(token.TRUE):
		return ast.NewLiteral(&p.ids, true)
	case p.match(token.NIL):
		return ast.NewLiteral(&p.ids, nil)
	case p.match(token.NUMBER, token.STRING):
		return ast.NewLiteral(&p.ids, p.previous().Literal)
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, diagnostics.ErrExpectSuperDot, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, diagnostics.ErrUnexpectedToken, "Expect superclass method name.")
		return ast.NewSuper(&p.ids, keyword, method)
	case p.match(token.THIS):
		return ast.NewThis(&p.ids, p.previous())
	case p.match(token.IDENTIFIER):
		return ast.NewVariable(&p.ids, p.previous())
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, diagnostics.ErrUnexpectedToken, "Expect ')' after expression.")
		return ast.NewGrouping(&p.ids, expr)
	default:
		panic(p.errAt(p.peek(), diagnostics.ErrExpectedExpr, "Expect expression."))
	}
}
