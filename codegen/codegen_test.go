package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"minic/ir"
	"minic/lexer"
	"minic/parser"
	"minic/sema"
)

func lower(t *testing.T, source string) *ir.Program {
	t.Helper()
	p := parser.New(lexer.New(source).Tokenize())
	program := p.Parse()
	if diags := p.Diagnostics(); len(diags) != 0 {
		t.Fatalf("source does not parse: %v", diags)
	}
	analyzer := sema.New()
	if !analyzer.Analyze(program) {
		t.Fatalf("source does not check: %v", analyzer.Errors())
	}
	return New(analyzer).Generate(program)
}

func instructions(p *ir.Program) []string {
	out := make([]string, len(p.Instructions))
	for i, instr := range p.Instructions {
		out[i] = instr.String()
	}
	return out
}

func TestExpressionLowering(t *testing.T) {
	prog := lower(t, "int x = 5; int y = 10; int z = x + y * 2; print(z);")
	want := []string{
		"x = 5",
		"y = 10",
		"t0 = y * 2",
		"t1 = x + t0",
		"z = t1",
		"print(z)",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

// Subexpressions materialize left to right, so temp numbers read off the
// evaluation order.
func TestTempNumberingIsEvaluationOrder(t *testing.T) {
	prog := lower(t, "int x = 1; int y = (x + 2) * (x - 3);")
	want := []string{
		"x = 1",
		"t0 = x + 2",
		"t1 = x - 3",
		"t2 = t0 * t1",
		"y = t2",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestIfWithoutElse(t *testing.T) {
	prog := lower(t, "int x = 1; if (x < 2) { print(1); }")
	want := []string{
		"x = 1",
		"t0 = x < 2",
		"ifz t0 goto L0",
		"print(1)",
		"L0:",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestIfElse(t *testing.T) {
	prog := lower(t, "int x = 1; if (x < 2) { print(1); } else { print(2); }")
	want := []string{
		"x = 1",
		"t0 = x < 2",
		"ifz t0 goto L0",
		"print(1)",
		"goto L1",
		"L0:",
		"print(2)",
		"L1:",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestWhile(t *testing.T) {
	prog := lower(t, "int i = 0; while (i < 3) { i = i + 1; }")
	want := []string{
		"i = 0",
		"L0:",
		"t0 = i < 3",
		"ifz t0 goto L1",
		"t1 = i + 1",
		"i = t1",
		"goto L0",
		"L1:",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

// The update clause runs once per iteration, after the body, and its
// result is discarded.
func TestFor(t *testing.T) {
	prog := lower(t, "for (int i = 0; i < 2; i + 1) { print(i); }")
	want := []string{
		"i = 0",
		"L0:",
		"t0 = i < 2",
		"ifz t0 goto L1",
		"print(i)",
		"t1 = i + 1",
		"goto L0",
		"L1:",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

// Label numbering is global: the second if must not reuse L0/L1 even
// though the first never emitted its end label.
func TestLabelNumberingIsGlobal(t *testing.T) {
	prog := lower(t, "int x = 1; if (x < 1) { print(1); } if (x < 2) { print(2); }")
	want := []string{
		"x = 1",
		"t0 = x < 1",
		"ifz t0 goto L0",
		"print(1)",
		"L0:",
		"t1 = x < 2",
		"ifz t1 goto L2",
		"print(2)",
		"L2:",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestBoolLiteralsLowerToIntConstants(t *testing.T) {
	prog := lower(t, "bool b = true; bool c = !b;")
	want := []string{
		"b = 1",
		"t0 = !b",
		"c = t0",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestBareReturn(t *testing.T) {
	prog := lower(t, "return;")
	want := []string{"return 0"}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestCallExpression(t *testing.T) {
	prog := lower(t, "int x = 1; int y = f(x, 5);")
	want := []string{
		"x = 1",
		"t0 = f(x, 5)",
		"y = t0",
	}
	if diff := cmp.Diff(want, instructions(prog)); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestVariableTable(t *testing.T) {
	prog := lower(t, "int x; bool b;")
	want := map[string]ir.Type{"x": ir.INT, "b": ir.BOOL}
	if diff := cmp.Diff(want, prog.VariableTypes); diff != "" {
		t.Errorf("variable table mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratorResetsBetweenPrograms(t *testing.T) {
	analyzer := sema.New()
	p := parser.New(lexer.New("int x = 1 + 2;").Tokenize())
	program := p.Parse()
	if !analyzer.Analyze(program) {
		t.Fatalf("source does not check: %v", analyzer.Errors())
	}
	g := New(analyzer)
	first := g.Generate(program)
	second := g.Generate(program)
	if diff := cmp.Diff(instructions(first), instructions(second)); diff != "" {
		t.Errorf("second run should start numbering fresh (-first +second):\n%s", diff)
	}
}
