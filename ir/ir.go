// Package ir defines the three-address-code representation shared by the
// code generator, the optimizer and the interpreter.
package ir

import (
	"fmt"
	"strconv"
	"strings"
)

type BinOp int

const (
	ADD BinOp = iota
	SUB
	MUL
	DIV
	MOD
	EQ
	NE
	LT
	GT
	LE
	GE
	AND
	OR
)

func (op BinOp) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case MOD:
		return "%"
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case GT:
		return ">"
	case LE:
		return "<="
	case GE:
		return ">="
	case AND:
		return "&&"
	case OR:
		return "||"
	}
	return "?"
}

type UnOp int

const (
	NEG UnOp = iota
	NOT
)

func (op UnOp) String() string {
	if op == NOT {
		return "!"
	}
	return "-"
}

// Type is the declared type of a program variable. The numeric codes are
// part of the program contract: int is 0, bool is 1.
type Type int

const (
	INT Type = iota
	BOOL
)

func (t Type) String() string {
	if t == BOOL {
		return "bool"
	}
	return "int"
}

type OperandKind int

const (
	CONST OperandKind = iota
	VAR
	TEMP
)

// Operand is a constant, a named program variable, or a compiler
// temporary. Constants are self-describing; the other two resolve by name
// against runtime storage.
type Operand struct {
	Kind  OperandKind
	Name  string
	Value int
}

func Constant(v int) Operand        { return Operand{Kind: CONST, Value: v} }
func Variable(name string) Operand  { return Operand{Kind: VAR, Name: name} }
func Temporary(name string) Operand { return Operand{Kind: TEMP, Name: name} }

func (o Operand) IsConst() bool { return o.Kind == CONST }

func (o Operand) String() string {
	if o.Kind == CONST {
		return strconv.Itoa(o.Value)
	}
	return o.Name
}

// Instruction is a closed sum; control flow is expressed only through
// Label, Goto and IfZero in one flat instruction sequence.
type Instruction interface {
	is_Instruction()
	String() string
}

type Binary struct {
	Dest  Operand
	Op    BinOp
	Left  Operand
	Right Operand
}

func (i Binary) is_Instruction() {}

func (i Binary) String() string {
	return fmt.Sprintf("%s = %s %s %s", i.Dest, i.Left, i.Op, i.Right)
}

type Unary struct {
	Dest Operand
	Op   UnOp
	Src  Operand
}

func (i Unary) is_Instruction() {}

func (i Unary) String() string {
	return fmt.Sprintf("%s = %s%s", i.Dest, i.Op, i.Src)
}

type Assign struct {
	Dest Operand
	Src  Operand
}

func (i Assign) is_Instruction() {}

func (i Assign) String() string {
	return fmt.Sprintf("%s = %s", i.Dest, i.Src)
}

type Label struct {
	Name string
}

func (i Label) is_Instruction() {}

func (i Label) String() string { return i.Name + ":" }

type Goto struct {
	Label string
}

func (i Goto) is_Instruction() {}

func (i Goto) String() string { return "goto " + i.Label }

// IfZero jumps to Label when Cond evaluates to zero.
type IfZero struct {
	Cond  Operand
	Label string
}

func (i IfZero) is_Instruction() {}

func (i IfZero) String() string {
	return fmt.Sprintf("ifz %s goto %s", i.Cond, i.Label)
}

type Call struct {
	Dest Operand
	Func string
	Args []Operand
}

func (i Call) is_Instruction() {}

func (i Call) String() string {
	args := make([]string, len(i.Args))
	for n, arg := range i.Args {
		args[n] = arg.String()
	}
	return fmt.Sprintf("%s = %s(%s)", i.Dest, i.Func, strings.Join(args, ", "))
}

type Return struct {
	Value Operand
}

func (i Return) is_Instruction() {}

func (i Return) String() string { return "return " + i.Value.String() }

type Print struct {
	Value Operand
}

func (i Print) is_Instruction() {}

func (i Print) String() string { return fmt.Sprintf("print(%s)", i.Value) }

type Nop struct{}

func (i Nop) is_Instruction() {}

func (i Nop) String() string { return "nop" }

// Program is the sole artifact passed between codegen, optimizer and
// interpreter. Every label referenced by Goto/IfZero must exist exactly
// once as a Label instruction; the invariant is only checked when a jump
// executes.
type Program struct {
	Instructions  []Instruction
	VariableTypes map[string]Type
}

func NewProgram() *Program {
	return &Program{VariableTypes: map[string]Type{}}
}

func (p *Program) Emit(instr Instruction) {
	p.Instructions = append(p.Instructions, instr)
}

// Clone deep-copies the program so passes can transform it without
// aliasing their input.
func (p *Program) Clone() *Program {
	out := &Program{
		Instructions:  make([]Instruction, len(p.Instructions)),
		VariableTypes: make(map[string]Type, len(p.VariableTypes)),
	}
	for i, instr := range p.Instructions {
		if call, ok := instr.(Call); ok {
			call.Args = append([]Operand(nil), call.Args...)
			out.Instructions[i] = call
			continue
		}
		out.Instructions[i] = instr
	}
	for name, t := range p.VariableTypes {
		out.VariableTypes[name] = t
	}
	return out
}
