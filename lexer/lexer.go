// Package lexer turns source text into a flat, EOF-terminated token
// sequence.
package lexer

import (
	"strconv"

	"minic/token"
)

var keywords = map[string]token.Kind{
	"int":    token.INTKW,
	"bool":   token.BOOLKW,
	"if":     token.IF,
	"else":   token.ELSE,
	"while":  token.WHILE,
	"for":    token.FOR,
	"return": token.RETURN,
	"print":  token.PRINT,
}

type Lexer struct {
	source  string
	current int
	line    int
	column  int
}

func New(source string) *Lexer {
	return &Lexer{source: source, line: 1, column: 1}
}

// Tokenize scans the whole source. Unknown characters become ILLEGAL
// tokens and scanning continues; the lexer itself never fails.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		l.skipWhitespaceAndComments()
		if l.current >= len(l.source) {
			break
		}
		tokens = append(tokens, l.next())
	}
	tokens = append(tokens, token.Token{Kind: token.EOF, Pos: l.pos()})
	return tokens
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) peek(offset int) byte {
	if l.current+offset >= len(l.source) {
		return 0
	}
	return l.source[l.current+offset]
}

func (l *Lexer) advance() byte {
	ch := l.source[l.current]
	l.current++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.current < len(l.source) {
		switch {
		case isSpace(l.peek(0)):
			l.advance()
		case l.peek(0) == '/' && l.peek(1) == '/':
			for l.current < len(l.source) && l.peek(0) != '\n' {
				l.advance()
			}
		case l.peek(0) == '/' && l.peek(1) == '*':
			l.advance()
			l.advance()
			// an unterminated block comment swallows the rest of the
			// input without producing an error token
			for l.current < len(l.source) && !(l.peek(0) == '*' && l.peek(1) == '/') {
				l.advance()
			}
			if l.current < len(l.source) {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) next() token.Token {
	pos := l.pos()
	ch := l.peek(0)

	if isDigit(ch) {
		start := l.current
		for l.current < len(l.source) && isDigit(l.peek(0)) {
			l.advance()
		}
		lexeme := l.source[start:l.current]
		value, _ := strconv.Atoi(lexeme)
		return token.Token{Kind: token.INTLIT, Lexeme: lexeme, Pos: pos, IntValue: value}
	}

	if isAlpha(ch) {
		start := l.current
		for l.current < len(l.source) && (isAlpha(l.peek(0)) || isDigit(l.peek(0))) {
			l.advance()
		}
		lexeme := l.source[start:l.current]
		if kind, ok := keywords[lexeme]; ok {
			return token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}
		}
		if lexeme == "true" || lexeme == "false" {
			return token.Token{
				Kind:      token.BOOLLIT,
				Lexeme:    lexeme,
				Pos:       pos,
				BoolValue: lexeme == "true",
			}
		}
		return token.Token{Kind: token.IDENT, Lexeme: lexeme, Pos: pos}
	}

	l.advance()

	switch ch {
	case '+':
		return token.Token{Kind: token.PLUS, Lexeme: "+", Pos: pos}
	case '-':
		return token.Token{Kind: token.MINUS, Lexeme: "-", Pos: pos}
	case '*':
		return token.Token{Kind: token.STAR, Lexeme: "*", Pos: pos}
	case '/':
		return token.Token{Kind: token.SLASH, Lexeme: "/", Pos: pos}
	case '%':
		return token.Token{Kind: token.PERCENT, Lexeme: "%", Pos: pos}
	case '(':
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Pos: pos}
	case ')':
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Pos: pos}
	case '{':
		return token.Token{Kind: token.LBRACE, Lexeme: "{", Pos: pos}
	case '}':
		return token.Token{Kind: token.RBRACE, Lexeme: "}", Pos: pos}
	case ';':
		return token.Token{Kind: token.SEMICOLON, Lexeme: ";", Pos: pos}
	case ',':
		return token.Token{Kind: token.COMMA, Lexeme: ",", Pos: pos}
	case '=':
		if l.peek(0) == '=' {
			l.advance()
			return token.Token{Kind: token.EQ, Lexeme: "==", Pos: pos}
		}
		return token.Token{Kind: token.ASSIGN, Lexeme: "=", Pos: pos}
	case '!':
		if l.peek(0) == '=' {
			l.advance()
			return token.Token{Kind: token.NE, Lexeme: "!=", Pos: pos}
		}
		return token.Token{Kind: token.NOT, Lexeme: "!", Pos: pos}
	case '<':
		if l.peek(0) == '=' {
			l.advance()
			return token.Token{Kind: token.LE, Lexeme: "<=", Pos: pos}
		}
		return token.Token{Kind: token.LT, Lexeme: "<", Pos: pos}
	case '>':
		if l.peek(0) == '=' {
			l.advance()
			return token.Token{Kind: token.GE, Lexeme: ">=", Pos: pos}
		}
		return token.Token{Kind: token.GT, Lexeme: ">", Pos: pos}
	case '&':
		if l.peek(0) == '&' {
			l.advance()
			return token.Token{Kind: token.AND, Lexeme: "&&", Pos: pos}
		}
	case '|':
		if l.peek(0) == '|' {
			l.advance()
			return token.Token{Kind: token.OR, Lexeme: "||", Pos: pos}
		}
	}

	return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Pos: pos}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
