// Package sema checks declarations and types over one flat scope.
// Duplicate declarations and undefined references are errors; every
// other finding is an advisory warning and never stops the pipeline.
package sema

import (
	"fmt"

	"minic/ast"
	"minic/ir"
)

type Symbol struct {
	Name        string
	Type        string
	Line        int
	Initialized bool
}

type Analyzer struct {
	symbols  map[string]Symbol
	errors   []string
	warnings []string
}

func New() *Analyzer {
	return &Analyzer{symbols: map[string]Symbol{}}
}

// Analyze walks the whole program and reports true iff no errors were
// found. The walk always completes; errors do not stop it.
func (a *Analyzer) Analyze(program ast.Program) bool {
	for _, stmt := range program.Statements {
		a.statement(stmt)
	}
	return len(a.errors) == 0
}

func (a *Analyzer) Errors() []string   { return a.errors }
func (a *Analyzer) Warnings() []string { return a.warnings }

func (a *Analyzer) Defined(name string) bool {
	_, ok := a.symbols[name]
	return ok
}

// TypeOf reports the declared type of name, or "" if it is not declared.
func (a *Analyzer) TypeOf(name string) string {
	return a.symbols[name].Type
}

func (a *Analyzer) errorf(format string, args ...interface{}) {
	a.errors = append(a.errors, fmt.Sprintf(format, args...))
}

func (a *Analyzer) warnf(format string, args ...interface{}) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}

func (a *Analyzer) statement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case ast.Declaration:
		a.declaration(stmt)
	case ast.Assignment:
		a.assignment(stmt)
	case ast.If:
		if t := a.expression(stmt.Cond); t != "bool" {
			a.warnf("line %d: if condition should be bool, got %s", stmt.Pos.Line, t)
		}
		for _, s := range stmt.Then {
			a.statement(s)
		}
		for _, s := range stmt.Else {
			a.statement(s)
		}
	case ast.While:
		if t := a.expression(stmt.Cond); t != "bool" {
			a.warnf("line %d: while condition should be bool, got %s", stmt.Pos.Line, t)
		}
		for _, s := range stmt.Body {
			a.statement(s)
		}
	case ast.For:
		if stmt.Init != nil {
			a.statement(stmt.Init)
		}
		if stmt.Cond != nil {
			if t := a.expression(stmt.Cond); t != "bool" {
				a.warnf("line %d: for condition should be bool, got %s", stmt.Pos.Line, t)
			}
		}
		if stmt.Update != nil {
			a.expression(stmt.Update)
		}
		for _, s := range stmt.Body {
			a.statement(s)
		}
	case ast.Block:
		for _, s := range stmt.Statements {
			a.statement(s)
		}
	case ast.Print:
		a.expression(stmt.Value)
	case ast.Return:
		if stmt.Value != nil {
			a.expression(stmt.Value)
		}
	}
}

func (a *Analyzer) declaration(decl ast.Declaration) {
	if _, ok := a.symbols[decl.Name]; ok {
		a.errorf("line %d: variable '%s' already declared", decl.Pos.Line, decl.Name)
		return
	}

	sym := Symbol{
		Name:        decl.Name,
		Type:        decl.Type,
		Line:        decl.Pos.Line,
		Initialized: decl.Init != nil,
	}

	// the initializer is checked before the name is visible, so
	// `int x = x;` is an undefined reference
	if decl.Init != nil {
		if t := a.expression(decl.Init); t != decl.Type {
			a.warnf("line %d: type mismatch in initialization of '%s': expected %s, got %s",
				decl.Pos.Line, decl.Name, decl.Type, t)
		}
	}

	a.symbols[decl.Name] = sym
}

func (a *Analyzer) assignment(assign ast.Assignment) {
	sym, ok := a.symbols[assign.Name]
	if !ok {
		a.errorf("line %d: variable '%s' is not declared", assign.Pos.Line, assign.Name)
		return
	}

	if t := a.expression(assign.Value); t != sym.Type {
		a.warnf("line %d: type mismatch in assignment to '%s': expected %s, got %s",
			assign.Pos.Line, assign.Name, sym.Type, t)
	}

	sym.Initialized = true
	a.symbols[assign.Name] = sym
}

func (a *Analyzer) expression(expr ast.Expression) string {
	switch expr := expr.(type) {
	case ast.Binary:
		return a.binary(expr)
	case ast.Unary:
		return a.unary(expr)
	case ast.Ref:
		sym, ok := a.symbols[expr.Name]
		if !ok {
			a.errorf("line %d: undefined variable '%s'", expr.Pos.Line, expr.Name)
			return "int"
		}
		if !sym.Initialized {
			a.warnf("line %d: variable '%s' may be uninitialized", expr.Pos.Line, expr.Name)
		}
		return sym.Type
	case ast.IntLit:
		return "int"
	case ast.BoolLit:
		return "bool"
	case ast.Call:
		for _, arg := range expr.Args {
			a.expression(arg)
		}
		// only the print builtin exists; calls evaluate to int
		return "int"
	}
	return "int"
}

func (a *Analyzer) binary(expr ast.Binary) string {
	left := a.expression(expr.Left)
	right := a.expression(expr.Right)

	switch expr.Op {
	case ir.EQ, ir.NE, ir.LT, ir.GT, ir.LE, ir.GE:
		return "bool"
	case ir.AND, ir.OR:
		if left != "bool" {
			a.warnf("line %d: logical operator expects bool, got %s", expr.Pos.Line, left)
		}
		if right != "bool" {
			a.warnf("line %d: logical operator expects bool, got %s", expr.Pos.Line, right)
		}
		return "bool"
	}

	if left != right {
		a.warnf("line %d: type mismatch in binary operation", expr.Pos.Line)
	}
	return left
}

func (a *Analyzer) unary(expr ast.Unary) string {
	operand := a.expression(expr.Operand)

	if expr.Op == ir.NEG {
		if operand != "int" {
			a.warnf("line %d: unary minus expects int, got %s", expr.Pos.Line, operand)
		}
		return "int"
	}
	if operand != "bool" {
		a.warnf("line %d: logical not expects bool, got %s", expr.Pos.Line, operand)
	}
	return "bool"
}
