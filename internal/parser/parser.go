// Package parser is a recursive-descent parser producing an AST from a
// token stream, per the grammar in spec §4.2. Error recovery uses
// panic/recover as a stand-in for the reference implementation's
// exception-based control flow: a parse error panics a sentinel value,
// caught at the top of the declaration loop, which then synchronizes
// and keeps parsing so multiple errors can surface in one pass.
package parser

import (
	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
	"github.com/nightjar-lang/nightjar/internal/token"
)

const maxArgs = 255

// parseError unwinds the current declaration/statement once a parse
// error has already been recorded in p.errors.
type parseError struct{}

// Parser consumes a token stream and builds an AST.
type Parser struct {
	tokens  []token.Token
	current int
	ids     ast.IDs
	errors  []*diagnostics.Error
}

// New constructs a Parser over tokens (which must end in an Eof token,
// as produced by lexer.ScanTokens).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs the parser to completion, returning every top-level
// statement it could recover. Check Success() (or inspect Errors())
// to see whether any declaration was discarded.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// Success reports whether parsing completed without any reported error.
func (p *Parser) Success() bool { return len(p.errors) == 0 }

// Errors returns every parse error collected during Parse.
func (p *Parser) Errors() []*diagnostics.Error { return p.errors }

// --- token cursor helpers ----------------------------------------------

func (p *Parser) peek() token.Token     { return p.tokens[p.current] }
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool         { return p.peek().Type == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return t == token.EOF
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of type t, or records a parse error at
// the current token and panics to unwind to the nearest recovery point.
func (p *Parser) consume(t token.Type, code, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errAt(p.peek(), code, message))
}

// errAt records a diagnostic (without unwinding) and returns the
// parseError sentinel for the caller to panic with. Errors that are
// reported but not fatal (e.g. the 255 argument/parameter limit, per
// spec §4.2) go through reportNonFatal instead.
func (p *Parser) errAt(tok token.Token, code, message string) parseError {
	p.errors = append(p.errors, diagnostics.New(diagnostics.Parse, code, tok, message))
	return parseError{}
}

func (p *Parser) reportNonFatal(tok token.Token, code, message string) {
	p.errors = append(p.errors, diagnostics.New(diagnostics.Parse, code, tok, message))
}

// synchronize discards tokens until it reaches one likely to start a
// fresh declaration or statement, per spec §4.2.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
