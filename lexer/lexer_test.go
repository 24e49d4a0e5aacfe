package lexer

import (
	"testing"

	"minic/token"
)

// helper that strips the trailing EOF for easier assertions
func tokenizeNoEOF(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens := New(source).Tokenize()
	if len(tokens) == 0 {
		t.Fatal("expected at least the EOF token")
	}
	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		t.Fatalf("last token is %s, not EOF", last.Kind)
	}
	return tokens[:len(tokens)-1]
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestEmptyInput(t *testing.T) {
	tokens := New("").Tokenize()
	if len(tokens) != 1 || tokens[0].Kind != token.EOF {
		t.Fatalf("expected a single EOF token, got %v", tokens)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected token.Kind
	}{
		{"int", token.INTKW},
		{"bool", token.BOOLKW},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"for", token.FOR},
		{"return", token.RETURN},
		{"print", token.PRINT},
	}
	for _, tt := range tests {
		tokens := tokenizeNoEOF(t, tt.keyword)
		if len(tokens) != 1 || tokens[0].Kind != tt.expected {
			t.Errorf("%q: expected %s, got %v", tt.keyword, tt.expected, tokens)
		}
	}
}

func TestBoolLiterals(t *testing.T) {
	tokens := tokenizeNoEOF(t, "true false")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != token.BOOLLIT || !tokens[0].BoolValue {
		t.Errorf("true: got %+v", tokens[0])
	}
	if tokens[1].Kind != token.BOOLLIT || tokens[1].BoolValue {
		t.Errorf("false: got %+v", tokens[1])
	}
}

func TestIntLiteralValue(t *testing.T) {
	tokens := tokenizeNoEOF(t, "42 007")
	if tokens[0].IntValue != 42 || tokens[0].Lexeme != "42" {
		t.Errorf("got %+v", tokens[0])
	}
	if tokens[1].IntValue != 7 || tokens[1].Lexeme != "007" {
		t.Errorf("got %+v", tokens[1])
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		source   string
		expected token.Kind
	}{
		{"+", token.PLUS},
		{"-", token.MINUS},
		{"*", token.STAR},
		{"/", token.SLASH},
		{"%", token.PERCENT},
		{"==", token.EQ},
		{"!=", token.NE},
		{"<", token.LT},
		{">", token.GT},
		{"<=", token.LE},
		{">=", token.GE},
		{"&&", token.AND},
		{"||", token.OR},
		{"!", token.NOT},
		{"=", token.ASSIGN},
		{"(", token.LPAREN},
		{")", token.RPAREN},
		{"{", token.LBRACE},
		{"}", token.RBRACE},
		{";", token.SEMICOLON},
		{",", token.COMMA},
	}
	for _, tt := range tests {
		tokens := tokenizeNoEOF(t, tt.source)
		if len(tokens) != 1 || tokens[0].Kind != tt.expected {
			t.Errorf("%q: expected %s, got %v", tt.source, tt.expected, tokens)
		}
	}
}

func TestTwoCharOperatorsDoNotSplit(t *testing.T) {
	tokens := tokenizeNoEOF(t, "a<=b")
	want := []token.Kind{token.IDENT, token.LE, token.IDENT}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLineComment(t *testing.T) {
	tokens := tokenizeNoEOF(t, "int x; // int y;\nint z;")
	got := kindsOf(tokens)
	want := []token.Kind{
		token.INTKW, token.IDENT, token.SEMICOLON,
		token.INTKW, token.IDENT, token.SEMICOLON,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBlockComment(t *testing.T) {
	tokens := tokenizeNoEOF(t, "int /* a\nb */ x;")
	got := kindsOf(tokens)
	if len(got) != 3 || got[0] != token.INTKW || got[1] != token.IDENT {
		t.Fatalf("got %v", got)
	}
}

// An unterminated block comment swallows the rest of the input without
// producing an error token.
func TestUnterminatedBlockComment(t *testing.T) {
	tokens := tokenizeNoEOF(t, "int x /* never closed")
	got := kindsOf(tokens)
	want := []token.Kind{token.INTKW, token.IDENT}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIllegalCharacterContinuesScanning(t *testing.T) {
	tokens := tokenizeNoEOF(t, "int @ x")
	got := kindsOf(tokens)
	want := []token.Kind{token.INTKW, token.ILLEGAL, token.IDENT}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if tokens[1].Lexeme != "@" {
		t.Errorf("illegal token should carry the offending character, got %q", tokens[1].Lexeme)
	}
}

func TestLoneAmpersandIsIllegal(t *testing.T) {
	tokens := tokenizeNoEOF(t, "a & b")
	if tokens[1].Kind != token.ILLEGAL || tokens[1].Lexeme != "&" {
		t.Fatalf("got %+v", tokens[1])
	}
}

func TestPositions(t *testing.T) {
	tokens := tokenizeNoEOF(t, "int x;\n  x = 1;")
	tests := []struct {
		index        int
		line, column int
	}{
		{0, 1, 1}, // int
		{1, 1, 5}, // x
		{2, 1, 6}, // ;
		{3, 2, 3}, // x
		{4, 2, 5}, // =
		{5, 2, 7}, // 1
	}
	for _, tt := range tests {
		pos := tokens[tt.index].Pos
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("token %d (%s): expected %d:%d, got %d:%d",
				tt.index, tokens[tt.index].Kind, tt.line, tt.column, pos.Line, pos.Column)
		}
	}
}

func TestUnderscoreIdentifiers(t *testing.T) {
	tokens := tokenizeNoEOF(t, "_x x_1 if0")
	for _, tok := range tokens {
		if tok.Kind != token.IDENT {
			t.Errorf("%q should be IDENT, got %s", tok.Lexeme, tok.Kind)
		}
	}
}
