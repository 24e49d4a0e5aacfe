// Package optimizer rewrites TAC programs without ever failing: an
// instruction it cannot improve is passed through unchanged.
package optimizer

import "minic/ir"

// Optimize runs constant folding followed by dead code elimination.
// Each pass walks the instruction list exactly once and neither is
// iterated to a fixpoint; the input program is never modified.
func Optimize(p *ir.Program) *ir.Program {
	return EliminateDeadCode(FoldConstants(p))
}

// FoldConstants rewrites any binary or unary instruction over constant
// operands into an assignment of the computed constant, in place in the
// sequence. Division and modulo by a constant zero fold to 0.
func FoldConstants(p *ir.Program) *ir.Program {
	out := p.Clone()
	for i, instr := range out.Instructions {
		switch instr := instr.(type) {
		case ir.Binary:
			if instr.Left.IsConst() && instr.Right.IsConst() {
				folded := foldBinary(instr.Op, instr.Left.Value, instr.Right.Value)
				out.Instructions[i] = ir.Assign{Dest: instr.Dest, Src: ir.Constant(folded)}
			}
		case ir.Unary:
			if instr.Src.IsConst() {
				folded := foldUnary(instr.Op, instr.Src.Value)
				out.Instructions[i] = ir.Assign{Dest: instr.Dest, Src: ir.Constant(folded)}
			}
		}
	}
	return out
}

func foldBinary(op ir.BinOp, left, right int) int {
	switch op {
	case ir.ADD:
		return left + right
	case ir.SUB:
		return left - right
	case ir.MUL:
		return left * right
	case ir.DIV:
		if right == 0 {
			return 0
		}
		return left / right
	case ir.MOD:
		if right == 0 {
			return 0
		}
		return left % right
	case ir.EQ:
		return boolToInt(left == right)
	case ir.NE:
		return boolToInt(left != right)
	case ir.LT:
		return boolToInt(left < right)
	case ir.GT:
		return boolToInt(left > right)
	case ir.LE:
		return boolToInt(left <= right)
	case ir.GE:
		return boolToInt(left >= right)
	case ir.AND:
		return boolToInt(left != 0 && right != 0)
	case ir.OR:
		return boolToInt(left != 0 || right != 0)
	}
	return 0
}

func foldUnary(op ir.UnOp, value int) int {
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

// EliminateDeadCode drops assign/binary/unary instructions whose
// destination is assigned but never read anywhere in the program. The
// liveness approximation is a single global use set: one filter pass,
// no transitive propagation through chains of dead temporaries.
func EliminateDeadCode(p *ir.Program) *ir.Program {
	out := p.Clone()

	used := map[string]bool{}
	assigned := map[string]bool{}
	markUse := func(op ir.Operand) {
		if !op.IsConst() {
			used[op.Name] = true
		}
	}

	for _, instr := range out.Instructions {
		switch instr := instr.(type) {
		case ir.Assign:
			assigned[instr.Dest.Name] = true
			markUse(instr.Src)
		case ir.Binary:
			assigned[instr.Dest.Name] = true
			markUse(instr.Left)
			markUse(instr.Right)
		case ir.Unary:
			assigned[instr.Dest.Name] = true
			markUse(instr.Src)
		case ir.Print:
			markUse(instr.Value)
		case ir.Return:
			markUse(instr.Value)
		case ir.IfZero:
			markUse(instr.Cond)
		case ir.Call:
			for _, arg := range instr.Args {
				markUse(arg)
			}
		}
	}

	filtered := out.Instructions[:0]
	for _, instr := range out.Instructions {
		var dest ir.Operand
		switch instr := instr.(type) {
		case ir.Assign:
			dest = instr.Dest
		case ir.Binary:
			dest = instr.Dest
		case ir.Unary:
			dest = instr.Dest
		default:
			filtered = append(filtered, instr)
			continue
		}
		if assigned[dest.Name] && !used[dest.Name] {
			continue
		}
		filtered = append(filtered, instr)
	}
	out.Instructions = filtered
	return out
}
