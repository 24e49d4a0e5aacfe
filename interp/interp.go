// Package interp executes TAC programs with a label-indexed
// fetch-execute loop.
package interp

import (
	"fmt"
	"io"
	"os"

	"minic/errors"
	"minic/ir"
)

type Interpreter struct {
	vars map[string]int
	out  io.Writer
	log  []int
	pc   int
}

func New() *Interpreter {
	return &Interpreter{out: os.Stdout}
}

// SetOutput redirects printed values; the default is stdout.
func (in *Interpreter) SetOutput(w io.Writer) { in.out = w }

// Output is the log of printed integers from the last Run.
func (in *Interpreter) Output() []int { return in.log }

// Run executes the program to completion or to the first fatal error.
// Declared variables start at zero (booleans are 0/1); temporaries
// become defined on first write. Return halts execution; there are no
// call frames.
func (in *Interpreter) Run(p *ir.Program) error {
	in.vars = make(map[string]int, len(p.VariableTypes))
	in.log = nil
	in.pc = 0

	for name := range p.VariableTypes {
		in.vars[name] = 0
	}

	labels := make(map[string]int)
	for i, instr := range p.Instructions {
		if label, ok := instr.(ir.Label); ok {
			labels[label.Name] = i
		}
	}

	// a missing target only surfaces when the jump executes
	jump := func(label string) error {
		idx, ok := labels[label]
		if !ok {
			return errors.UnknownLabel{Label: label}
		}
		in.pc = idx
		return nil
	}

	for in.pc < len(p.Instructions) {
		switch instr := p.Instructions[in.pc].(type) {
		case ir.Binary:
			left, err := in.value(instr.Left)
			if err != nil {
				return err
			}
			right, err := in.value(instr.Right)
			if err != nil {
				return err
			}
			result, err := evalBinary(instr.Op, left, right)
			if err != nil {
				return err
			}
			in.assign(instr.Dest, result)
		case ir.Unary:
			src, err := in.value(instr.Src)
			if err != nil {
				return err
			}
			in.assign(instr.Dest, evalUnary(instr.Op, src))
		case ir.Assign:
			src, err := in.value(instr.Src)
			if err != nil {
				return err
			}
			in.assign(instr.Dest, src)
		case ir.Label:
			// nothing to execute
		case ir.Goto:
			if err := jump(instr.Label); err != nil {
				return err
			}
		case ir.IfZero:
			cond, err := in.value(instr.Cond)
			if err != nil {
				return err
			}
			if cond == 0 {
				if err := jump(instr.Label); err != nil {
					return err
				}
			}
		case ir.Call:
			if err := in.call(instr); err != nil {
				return err
			}
		case ir.Return:
			return nil
		case ir.Print:
			value, err := in.value(instr.Value)
			if err != nil {
				return err
			}
			in.print(value)
		case ir.Nop:
		}
		in.pc++
	}
	return nil
}

func (in *Interpreter) value(op ir.Operand) (int, error) {
	if op.IsConst() {
		return op.Value, nil
	}
	value, ok := in.vars[op.Name]
	if !ok {
		return 0, errors.UndefinedName{Name: op.Name}
	}
	return value, nil
}

func (in *Interpreter) assign(op ir.Operand, value int) {
	in.vars[op.Name] = value
}

func (in *Interpreter) call(instr ir.Call) error {
	if instr.Func == "print" && len(instr.Args) > 0 {
		value, err := in.value(instr.Args[0])
		if err != nil {
			return err
		}
		in.print(value)
	}
	// no user functions exist; the result slot is defined as zero
	in.assign(instr.Dest, 0)
	return nil
}

func (in *Interpreter) print(value int) {
	fmt.Fprintf(in.out, "%d\n", value)
	in.log = append(in.log, value)
}

func evalBinary(op ir.BinOp, left, right int) (int, error) {
	switch op {
	case ir.ADD:
		return left + right, nil
	case ir.SUB:
		return left - right, nil
	case ir.MUL:
		return left * right, nil
	case ir.DIV:
		if right == 0 {
			return 0, errors.DivisionByZero{Op: "/"}
		}
		return left / right, nil
	case ir.MOD:
		if right == 0 {
			return 0, errors.DivisionByZero{Op: "%"}
		}
		return left % right, nil
	case ir.EQ:
		return boolToInt(left == right), nil
	case ir.NE:
		return boolToInt(left != right), nil
	case ir.LT:
		return boolToInt(left < right), nil
	case ir.GT:
		return boolToInt(left > right), nil
	case ir.LE:
		return boolToInt(left <= right), nil
	case ir.GE:
		return boolToInt(left >= right), nil
	case ir.AND:
		return boolToInt(left != 0 && right != 0), nil
	case ir.OR:
		return boolToInt(left != 0 || right != 0), nil
	}
	return 0, nil
}

func evalUnary(op ir.UnOp, value int) int {
	if op == ir.NEG {
		return -value
	}
	return boolToInt(value == 0)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
