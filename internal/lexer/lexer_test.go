package lexer

import "testing"

func TestNextToken_Operators(t *testing.T) {
	input := `+ - * / % == != < <= > >= && || ! = += -= *= /= %= ++ -- ( ) { } , ; :`

	expected := []TokenType{
		PLUS, MINUS, STAR, SLASH, PERCENT,
		EQ_EQ, NOT_EQ, LT, LE, GT, GE,
		AND_AND, OR_OR, BANG,
		ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		INC, DEC,
		LPAREN, RPAREN, LBRACE, RBRACE, COMMA, SEMICOLON, COLON,
		EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, want, tok.Literal)
		}
	}
}

func TestNextToken_KeywordsAndTypes(t *testing.T) {
	input := `fn let const if else while for break continue return print true false int float bool string void`

	expected := []TokenType{
		FN, LET, CONST, IF, ELSE, WHILE, FOR, BREAK, CONTINUE, RETURN, PRINT, TRUE, FALSE,
		TYPE_INT, TYPE_FLOAT, TYPE_BOOL, TYPE_STRING, TYPE_VOID,
		EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, want)
		}
	}
}

func TestNextToken_Identifiers(t *testing.T) {
	input := "x _foo bar123 Bar123"
	l := New(input)

	for _, want := range []string{"x", "_foo", "bar123", "Bar123"} {
		tok := l.NextToken()
		if tok.Type != IDENT || tok.Literal != want {
			t.Fatalf("got %v %q, want IDENT %q", tok.Type, tok.Literal, want)
		}
	}
}

func TestNextToken_CaseSensitive(t *testing.T) {
	// Identifiers are exact source bytes; no case-folding (spec.md §3).
	l := New("Let let LET")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "Let" {
		t.Fatalf("expected IDENT 'Let', got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != LET {
		t.Fatalf("expected LET keyword, got %v", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "LET" {
		t.Fatalf("expected IDENT 'LET', got %v %q", tok.Type, tok.Literal)
	}
}

func TestNextToken_Numbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		lit   string
	}{
		{"42", INT, "42"},
		{"0", INT, "0"},
		{"3.14", FLOAT, "3.14"},
		{"1.", INT, "1"}, // no digit after '.', not a float
		{"1e10", FLOAT, "1e10"},
		{"1.5e-3", FLOAT, "1.5e-3"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Errorf("input %q: got %v %q, want %v %q", tt.input, tok.Type, tok.Literal, tt.typ, tt.lit)
		}
	}
}

func TestNextToken_Strings(t *testing.T) {
	l := New(`"hello world" "escaped \"quote\"" "tab\there"`)

	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello world" {
		t.Fatalf("got %q", tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != `escaped \"quote\"` {
		t.Fatalf("got %q", tok.Literal)
	}

	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != `tab\there` {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New(`"no closing quote`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("got %v", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestNextToken_Comments(t *testing.T) {
	input := `1 // line comment
2 /* block
comment */ 3`

	l := New(input)
	for _, want := range []string{"1", "2", "3"} {
		tok := l.NextToken()
		if tok.Type != INT || tok.Literal != want {
			t.Fatalf("got %v %q, want INT %q", tok.Type, tok.Literal, want)
		}
	}
	tok := l.NextToken()
	if tok.Type != EOF {
		t.Fatalf("expected EOF, got %v", tok.Type)
	}
}

func TestNextToken_PositionTracking(t *testing.T) {
	input := "fn int\nmain"
	l := New(input)

	tok := l.NextToken() // fn
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("fn: got %v", tok.Pos)
	}
	tok = l.NextToken() // int
	if tok.Pos.Line != 1 || tok.Pos.Column != 4 {
		t.Fatalf("int: got %v", tok.Pos)
	}
	tok = l.NextToken() // main
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("main: got %v", tok.Pos)
	}
}

func TestNextToken_IllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %v", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestNextToken_FullProgram(t *testing.T) {
	input := `fn int add(int a, int b) {
	return a + b;
}`

	want := []TokenType{
		FN, TYPE_INT, IDENT, LPAREN, TYPE_INT, IDENT, COMMA, TYPE_INT, IDENT, RPAREN, LBRACE,
		RETURN, IDENT, PLUS, IDENT, SEMICOLON,
		RBRACE, EOF,
	}

	l := New(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Type, tok.Literal, w)
		}
	}
}
