// Package ast holds the syntax tree produced by the parser. Nodes are
// plain values owned by their parent; there is no sharing between
// subtrees.
package ast

import (
	"minic/ir"
	"minic/token"
)

type Program struct {
	Statements []Statement
}

type Statement interface {
	is_Statement()
}

type Declaration struct {
	Name string
	Type string // "int" or "bool"
	Init Expression
	Pos  token.Position
}

func (s Declaration) is_Statement() {}

type Assignment struct {
	Name  string
	Value Expression
	Pos   token.Position
}

func (s Assignment) is_Statement() {}

type If struct {
	Cond Expression
	Then []Statement
	Else []Statement
	Pos  token.Position
}

func (s If) is_Statement() {}

type While struct {
	Cond Expression
	Body []Statement
	Pos  token.Position
}

func (s While) is_Statement() {}

// For carries an optional init statement, condition and update
// expression. The update has expression form only and is evaluated for
// its side effects.
type For struct {
	Init   Statement
	Cond   Expression
	Update Expression
	Body   []Statement
	Pos    token.Position
}

func (s For) is_Statement() {}

type Block struct {
	Statements []Statement
	Pos        token.Position
}

func (s Block) is_Statement() {}

type Return struct {
	Value Expression
	Pos   token.Position
}

func (s Return) is_Statement() {}

type Print struct {
	Value Expression
	Pos   token.Position
}

func (s Print) is_Statement() {}

type Expression interface {
	is_Expression()
}

type Binary struct {
	Left  Expression
	Op    ir.BinOp
	Right Expression
	Pos   token.Position
}

func (e Binary) is_Expression() {}

type Unary struct {
	Op      ir.UnOp
	Operand Expression
	Pos     token.Position
}

func (e Unary) is_Expression() {}

// Ref is a reference to a declared variable.
type Ref struct {
	Name string
	Pos  token.Position
}

func (e Ref) is_Expression() {}

type IntLit struct {
	Value int
	Pos   token.Position
}

func (e IntLit) is_Expression() {}

type BoolLit struct {
	Value bool
	Pos   token.Position
}

func (e BoolLit) is_Expression() {}

type Call struct {
	Func string
	Args []Expression
	Pos  token.Position
}

func (e Call) is_Expression() {}
