// Package codegen lowers a checked syntax tree into a flat TAC program.
package codegen

import (
	"fmt"

	"minic/ast"
	"minic/ir"
	"minic/sema"
)

type Generator struct {
	prog     *ir.Program
	analyzer *sema.Analyzer
	temps    int
	labels   int
}

func New(analyzer *sema.Analyzer) *Generator {
	return &Generator{analyzer: analyzer}
}

// Generate runs two passes: top-level declarations seed the variable
// table first so later statements can query types before their
// declaration is emitted, then instructions are emitted statement by
// statement. Temporary and label numbering is global and never reused.
func (g *Generator) Generate(program ast.Program) *ir.Program {
	g.prog = ir.NewProgram()
	g.temps = 0
	g.labels = 0

	for _, stmt := range program.Statements {
		if decl, ok := stmt.(ast.Declaration); ok {
			g.prog.VariableTypes[decl.Name] = g.typeCode(decl)
		}
	}
	for _, stmt := range program.Statements {
		g.statement(stmt)
	}
	return g.prog
}

// typeCode prefers the analyzer's symbol table over the literal
// declaration, so declarations rewritten during analysis keep one source
// of truth.
func (g *Generator) typeCode(decl ast.Declaration) ir.Type {
	name := decl.Type
	if t := g.analyzer.TypeOf(decl.Name); t != "" {
		name = t
	}
	if name == "bool" {
		return ir.BOOL
	}
	return ir.INT
}

func (g *Generator) temp() ir.Operand {
	name := fmt.Sprintf("t%d", g.temps)
	g.temps++
	return ir.Temporary(name)
}

func (g *Generator) label() string {
	name := fmt.Sprintf("L%d", g.labels)
	g.labels++
	return name
}

func (g *Generator) emit(instr ir.Instruction) { g.prog.Emit(instr) }

func (g *Generator) statement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case ast.Declaration:
		g.prog.VariableTypes[stmt.Name] = g.typeCode(stmt)
		if stmt.Init != nil {
			src := g.expression(stmt.Init)
			g.emit(ir.Assign{Dest: ir.Variable(stmt.Name), Src: src})
		}
	case ast.Assignment:
		src := g.expression(stmt.Value)
		g.emit(ir.Assign{Dest: ir.Variable(stmt.Name), Src: src})
	case ast.If:
		g.ifStatement(stmt)
	case ast.While:
		g.whileStatement(stmt)
	case ast.For:
		g.forStatement(stmt)
	case ast.Block:
		for _, s := range stmt.Statements {
			g.statement(s)
		}
	case ast.Print:
		g.emit(ir.Print{Value: g.expression(stmt.Value)})
	case ast.Return:
		if stmt.Value != nil {
			g.emit(ir.Return{Value: g.expression(stmt.Value)})
		} else {
			g.emit(ir.Return{Value: ir.Constant(0)})
		}
	}
}

func (g *Generator) ifStatement(stmt ast.If) {
	cond := g.expression(stmt.Cond)
	elseLabel := g.label()
	endLabel := g.label()

	g.emit(ir.IfZero{Cond: cond, Label: elseLabel})
	for _, s := range stmt.Then {
		g.statement(s)
	}

	if len(stmt.Else) > 0 {
		g.emit(ir.Goto{Label: endLabel})
		g.emit(ir.Label{Name: elseLabel})
		for _, s := range stmt.Else {
			g.statement(s)
		}
		g.emit(ir.Label{Name: endLabel})
	} else {
		g.emit(ir.Label{Name: elseLabel})
	}
}

func (g *Generator) whileStatement(stmt ast.While) {
	loopLabel := g.label()
	endLabel := g.label()

	g.emit(ir.Label{Name: loopLabel})
	cond := g.expression(stmt.Cond)
	g.emit(ir.IfZero{Cond: cond, Label: endLabel})
	for _, s := range stmt.Body {
		g.statement(s)
	}
	g.emit(ir.Goto{Label: loopLabel})
	g.emit(ir.Label{Name: endLabel})
}

func (g *Generator) forStatement(stmt ast.For) {
	if stmt.Init != nil {
		g.statement(stmt.Init)
	}

	loopLabel := g.label()
	endLabel := g.label()

	g.emit(ir.Label{Name: loopLabel})
	if stmt.Cond != nil {
		cond := g.expression(stmt.Cond)
		g.emit(ir.IfZero{Cond: cond, Label: endLabel})
	}
	for _, s := range stmt.Body {
		g.statement(s)
	}
	if stmt.Update != nil {
		// evaluated for side effects only, result discarded
		g.expression(stmt.Update)
	}
	g.emit(ir.Goto{Label: loopLabel})
	g.emit(ir.Label{Name: endLabel})
}

// expression lowers a subtree and returns the operand holding its value.
// Binary, unary and call expressions always materialize into a fresh
// temporary; fusing constants is the optimizer's job.
func (g *Generator) expression(expr ast.Expression) ir.Operand {
	switch expr := expr.(type) {
	case ast.Binary:
		left := g.expression(expr.Left)
		right := g.expression(expr.Right)
		dest := g.temp()
		g.emit(ir.Binary{Dest: dest, Op: expr.Op, Left: left, Right: right})
		return dest
	case ast.Unary:
		src := g.expression(expr.Operand)
		dest := g.temp()
		g.emit(ir.Unary{Dest: dest, Op: expr.Op, Src: src})
		return dest
	case ast.Ref:
		return ir.Variable(expr.Name)
	case ast.IntLit:
		return ir.Constant(expr.Value)
	case ast.BoolLit:
		if expr.Value {
			return ir.Constant(1)
		}
		return ir.Constant(0)
	case ast.Call:
		args := make([]ir.Operand, 0, len(expr.Args))
		for _, arg := range expr.Args {
			args = append(args, g.expression(arg))
		}
		dest := g.temp()
		g.emit(ir.Call{Dest: dest, Func: expr.Func, Args: args})
		return dest
	}
	return ir.Constant(0)
}
