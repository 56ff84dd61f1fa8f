package lexer

import (
	"testing"

	"github.com/nightjar-lang/nightjar/internal/token"
)

func typesOf(tokens []token.Token) []token.Type {
	types := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanTokensPunctuationAndOperators(t *testing.T) {
	tokens, errs := New("(){},.-+;*!!====<<=>>=/").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.BANG, token.BANG_EQUAL, token.EQUAL_EQUAL, token.EQUAL, token.LESS, token.LESS_EQUAL,
		token.GREATER, token.GREATER_EQUAL, token.SLASH, token.EOF,
	}
	got := typesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens, errs := New("and class myVar while").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Type{token.AND, token.CLASS, token.IDENTIFIER, token.WHILE, token.EOF}
	got := typesOf(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if tokens[2].Literal != "myVar" {
		t.Errorf("identifier literal = %v, want %q", tokens[2].Literal, "myVar")
	}
}

func TestScanNumberLiteral(t *testing.T) {
	tokens, errs := New("123 4.5").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Literal.(float64) != 123 {
		t.Errorf("got %v, want 123", tokens[0].Literal)
	}
	if tokens[1].Literal.(float64) != 4.5 {
		t.Errorf("got %v, want 4.5", tokens[1].Literal)
	}
}

func TestScanStringLiteralMultiLine(t *testing.T) {
	tokens, errs := New("\"hello\nworld\"").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Literal != "hello\nworld" {
		t.Errorf("got %q, want %q", tokens[0].Literal, "hello\nworld")
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := New(`"unterminated`).ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
}

func TestScanNestedBlockComment(t *testing.T) {
	tokens, errs := New("/* outer /* inner */ still comment */ 1").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(tokens) != 2 || tokens[0].Type != token.NUMBER {
		t.Fatalf("expected a single NUMBER token followed by EOF, got %v", typesOf(tokens))
	}
}

func TestScanUnterminatedBlockComment(t *testing.T) {
	_, errs := New("/* never closed").ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
}

func TestScanLineComment(t *testing.T) {
	tokens, errs := New("1 // a comment\n2").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
}

func TestScanUnexpectedCharacterContinuesScanning(t *testing.T) {
	tokens, errs := New("1 @ 2").ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	// Scanning continues past the bad character: both numbers and EOF
	// still show up in the stream.
	want := []token.Type{token.NUMBER, token.NUMBER, token.EOF}
	got := typesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
}
