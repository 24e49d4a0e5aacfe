// Package parser builds the syntax tree by recursive descent over the
// token sequence.
package parser

import (
	"github.com/ztrue/tracerr"

	"minic/ast"
	"minic/errors"
	"minic/ir"
	"minic/token"
)

type Parser struct {
	tokens  []token.Token
	current int
	diags   []error
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token sequence. A malformed statement is
// recorded as a diagnostic and dropped; parsing resynchronizes at the
// next semicolon and resumes, so the result may hold fewer statements
// than the source had.
func (p *Parser) Parse() ast.Program {
	var program ast.Program
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			p.diags = append(p.diags, err)
			p.synchronize()
			continue
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program
}

// Diagnostics lists one error per statement discarded during Parse.
func (p *Parser) Diagnostics() []error { return p.diags }

func (p *Parser) parseStatement() (stmt ast.Statement, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = tracerr.Wrap(rerr)
		}
	}()
	stmt = p.statement()
	return
}

func (p *Parser) synchronize() {
	for !p.atEnd() && !p.check(token.SEMICOLON) {
		p.advance()
	}
	if p.check(token.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) peek() token.Token {
	if p.current >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) peekNext() token.Token {
	if p.current+1 >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) check(kind token.Kind) bool { return p.peek().Kind == kind }

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind token.Kind) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(errors.UnexpectedToken{Expected: []token.Kind{kind}, Got: p.peek()})
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.INTKW), p.match(token.BOOLKW):
		return p.declaration()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LBRACE):
		return p.blockStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) declaration() ast.Statement {
	kw := p.previous()
	name := p.consume(token.IDENT).Lexeme
	decl := ast.Declaration{Name: name, Type: kw.Lexeme, Pos: kw.Pos}
	if p.match(token.ASSIGN) {
		decl.Init = p.expression()
	}
	p.consume(token.SEMICOLON)
	return decl
}

func (p *Parser) ifStatement() ast.Statement {
	pos := p.previous().Pos
	p.consume(token.LPAREN)
	cond := p.expression()
	p.consume(token.RPAREN)

	stmt := ast.If{Cond: cond, Pos: pos}
	stmt.Then = p.branch()
	if p.match(token.ELSE) {
		stmt.Else = p.branch()
	}
	return stmt
}

func (p *Parser) whileStatement() ast.Statement {
	pos := p.previous().Pos
	p.consume(token.LPAREN)
	cond := p.expression()
	p.consume(token.RPAREN)

	return ast.While{Cond: cond, Body: p.branch(), Pos: pos}
}

func (p *Parser) forStatement() ast.Statement {
	pos := p.previous().Pos
	p.consume(token.LPAREN)

	stmt := ast.For{Pos: pos}
	if !p.check(token.SEMICOLON) {
		if p.match(token.INTKW) || p.match(token.BOOLKW) {
			kw := p.previous()
			name := p.consume(token.IDENT).Lexeme
			decl := ast.Declaration{Name: name, Type: kw.Lexeme, Pos: kw.Pos}
			if p.match(token.ASSIGN) {
				decl.Init = p.expression()
			}
			stmt.Init = decl
		} else {
			name := p.consume(token.IDENT)
			p.consume(token.ASSIGN)
			stmt.Init = ast.Assignment{Name: name.Lexeme, Value: p.expression(), Pos: name.Pos}
		}
	}
	p.consume(token.SEMICOLON)

	if !p.check(token.SEMICOLON) {
		stmt.Cond = p.expression()
	}
	p.consume(token.SEMICOLON)

	if !p.check(token.RPAREN) {
		stmt.Update = p.expression()
	}
	p.consume(token.RPAREN)

	stmt.Body = p.branch()
	return stmt
}

func (p *Parser) returnStatement() ast.Statement {
	pos := p.previous().Pos
	stmt := ast.Return{Pos: pos}
	if !p.check(token.SEMICOLON) {
		stmt.Value = p.expression()
	}
	p.consume(token.SEMICOLON)
	return stmt
}

func (p *Parser) printStatement() ast.Statement {
	pos := p.previous().Pos
	p.consume(token.LPAREN)
	value := p.expression()
	p.consume(token.RPAREN)
	p.consume(token.SEMICOLON)
	return ast.Print{Value: value, Pos: pos}
}

// blockStatement is entered with the opening brace already consumed.
func (p *Parser) blockStatement() ast.Statement {
	block := ast.Block{Pos: p.previous().Pos}
	for !p.check(token.RBRACE) && !p.atEnd() {
		block.Statements = append(block.Statements, p.statement())
	}
	p.consume(token.RBRACE)
	return block
}

// branch parses either a braced statement list or a single statement.
func (p *Parser) branch() []ast.Statement {
	if p.match(token.LBRACE) {
		var list []ast.Statement
		for !p.check(token.RBRACE) && !p.atEnd() {
			list = append(list, p.statement())
		}
		p.consume(token.RBRACE)
		return list
	}
	return []ast.Statement{p.statement()}
}

func (p *Parser) expressionStatement() ast.Statement {
	if p.check(token.IDENT) && p.peekNext().Kind == token.ASSIGN {
		name := p.advance()
		p.advance()
		value := p.expression()
		p.consume(token.SEMICOLON)
		return ast.Assignment{Name: name.Lexeme, Value: value, Pos: name.Pos}
	}

	// a bare expression has no effect; the statement slot becomes an
	// empty block
	pos := p.peek().Pos
	p.expression()
	p.consume(token.SEMICOLON)
	return ast.Block{Pos: pos}
}

func (p *Parser) expression() ast.Expression { return p.orExpression() }

func (p *Parser) orExpression() ast.Expression {
	expr := p.andExpression()
	for p.match(token.OR) {
		pos := p.previous().Pos
		expr = ast.Binary{Left: expr, Op: ir.OR, Right: p.andExpression(), Pos: pos}
	}
	return expr
}

func (p *Parser) andExpression() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		pos := p.previous().Pos
		expr = ast.Binary{Left: expr, Op: ir.AND, Right: p.equality(), Pos: pos}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.relational()
	for {
		var op ir.BinOp
		switch {
		case p.match(token.EQ):
			op = ir.EQ
		case p.match(token.NE):
			op = ir.NE
		default:
			return expr
		}
		pos := p.previous().Pos
		expr = ast.Binary{Left: expr, Op: op, Right: p.relational(), Pos: pos}
	}
}

func (p *Parser) relational() ast.Expression {
	expr := p.additive()
	for {
		var op ir.BinOp
		switch {
		case p.match(token.LT):
			op = ir.LT
		case p.match(token.GT):
			op = ir.GT
		case p.match(token.LE):
			op = ir.LE
		case p.match(token.GE):
			op = ir.GE
		default:
			return expr
		}
		pos := p.previous().Pos
		expr = ast.Binary{Left: expr, Op: op, Right: p.additive(), Pos: pos}
	}
}

func (p *Parser) additive() ast.Expression {
	expr := p.multiplicative()
	for {
		var op ir.BinOp
		switch {
		case p.match(token.PLUS):
			op = ir.ADD
		case p.match(token.MINUS):
			op = ir.SUB
		default:
			return expr
		}
		pos := p.previous().Pos
		expr = ast.Binary{Left: expr, Op: op, Right: p.multiplicative(), Pos: pos}
	}
}

func (p *Parser) multiplicative() ast.Expression {
	expr := p.unary()
	for {
		var op ir.BinOp
		switch {
		case p.match(token.STAR):
			op = ir.MUL
		case p.match(token.SLASH):
			op = ir.DIV
		case p.match(token.PERCENT):
			op = ir.MOD
		default:
			return expr
		}
		pos := p.previous().Pos
		expr = ast.Binary{Left: expr, Op: op, Right: p.unary(), Pos: pos}
	}
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.MINUS) {
		pos := p.previous().Pos
		return ast.Unary{Op: ir.NEG, Operand: p.unary(), Pos: pos}
	}
	if p.match(token.NOT) {
		pos := p.previous().Pos
		return ast.Unary{Op: ir.NOT, Operand: p.unary(), Pos: pos}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expression {
	if p.match(token.INTLIT) {
		tok := p.previous()
		return ast.IntLit{Value: tok.IntValue, Pos: tok.Pos}
	}
	if p.match(token.BOOLLIT) {
		tok := p.previous()
		return ast.BoolLit{Value: tok.BoolValue, Pos: tok.Pos}
	}
	if p.match(token.IDENT) {
		tok := p.previous()
		if p.match(token.LPAREN) {
			call := ast.Call{Func: tok.Lexeme, Pos: tok.Pos}
			if !p.check(token.RPAREN) {
				for {
					call.Args = append(call.Args, p.expression())
					if !p.match(token.COMMA) {
						break
					}
				}
			}
			p.consume(token.RPAREN)
			return call
		}
		return ast.Ref{Name: tok.Lexeme, Pos: tok.Pos}
	}
	if p.match(token.LPAREN) {
		expr := p.expression()
		p.consume(token.RPAREN)
		return expr
	}
	panic(errors.ExpectedExpression{Got: p.peek()})
}
