package token

type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	INTLIT
	BOOLLIT
	IDENT

	INTKW
	BOOLKW
	IF
	ELSE
	WHILE
	FOR
	RETURN
	PRINT

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	EQ
	NE
	LT
	GT
	LE
	GE
	AND
	OR
	NOT
	ASSIGN

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SEMICOLON
	COMMA
)

func (k Kind) String() string {
	data := map[Kind]string{
		EOF:       "EOF",
		ILLEGAL:   "ILLEGAL",
		INTLIT:    "INT_LIT",
		BOOLLIT:   "BOOL_LIT",
		IDENT:     "IDENT",
		INTKW:     "INT",
		BOOLKW:    "BOOL",
		IF:        "IF",
		ELSE:      "ELSE",
		WHILE:     "WHILE",
		FOR:       "FOR",
		RETURN:    "RETURN",
		PRINT:     "PRINT",
		PLUS:      "PLUS",
		MINUS:     "MINUS",
		STAR:      "STAR",
		SLASH:     "SLASH",
		PERCENT:   "PERCENT",
		EQ:        "EQ",
		NE:        "NE",
		LT:        "LT",
		GT:        "GT",
		LE:        "LE",
		GE:        "GE",
		AND:       "AND",
		OR:        "OR",
		NOT:       "NOT",
		ASSIGN:    "ASSIGN",
		LPAREN:    "LPAREN",
		RPAREN:    "RPAREN",
		LBRACE:    "LBRACE",
		RBRACE:    "RBRACE",
		SEMICOLON: "SEMICOLON",
		COMMA:     "COMMA",
	}
	return data[k]
}

type Position struct {
	Line   int
	Column int
}

// Token is immutable once produced by the lexer. IntValue and BoolValue
// are only meaningful for INTLIT and BOOLLIT tokens.
type Token struct {
	Kind      Kind
	Lexeme    string
	Pos       Position
	IntValue  int
	BoolValue bool
}
