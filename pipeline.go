package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"minic/codegen"
	"minic/interp"
	"minic/lexer"
	"minic/optimizer"
	"minic/parser"
	"minic/sema"
	"minic/token"
)

type runOptions struct {
	PrintTokens bool
	PrintAST    bool
	Optimize    bool
	Output      string
}

func runAction(c *cli.Context) error {
	file := c.Args().First()
	if file == "" {
		return cli.Exit("no source file provided", 1)
	}

	opts := runOptions{
		PrintTokens: c.Bool("tokens"),
		PrintAST:    c.Bool("ast"),
		Optimize:    !c.Bool("noopt"),
		Output:      c.String("output"),
	}
	if cfg, ok := loadProject(); ok {
		if cfg.Optimize != nil && !c.IsSet("noopt") {
			opts.Optimize = *cfg.Optimize
		}
		if cfg.Output != "" && opts.Output == "" {
			opts.Output = cfg.Output
		}
	}

	source, err := os.ReadFile(file)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error reading %s: %s", file, err), 1)
	}

	if err := run(string(source), opts); err != nil {
		tracerr.Print(err)
		return cli.Exit("", 1)
	}
	return nil
}

// run drives the whole pipeline over one source text. Stages hand each
// other complete values; nothing is streamed or shared.
func run(source string, opts runOptions) error {
	fmt.Println("phase: lexical analysis")
	tokens := lexer.New(source).Tokenize()
	fmt.Printf("  tokens: %d\n", len(tokens)-1)
	if opts.PrintTokens {
		printTokens(tokens)
	}

	fmt.Println("phase: syntax analysis")
	p := parser.New(tokens)
	program := p.Parse()
	for _, diag := range p.Diagnostics() {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", diag)
	}
	fmt.Printf("  statements: %d\n", len(program.Statements))
	if opts.PrintAST {
		repr.Println(program)
	}

	fmt.Println("phase: semantic analysis")
	analyzer := sema.New()
	if !analyzer.Analyze(program) {
		for _, msg := range analyzer.Errors() {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		return fmt.Errorf("semantic analysis failed")
	}
	for _, msg := range analyzer.Warnings() {
		fmt.Printf("  warning: %s\n", msg)
	}

	fmt.Println("phase: code generation")
	prog := codegen.New(analyzer).Generate(program)
	fmt.Printf("  instructions: %d\n", len(prog.Instructions))
	fmt.Printf("  variables: %d\n", len(prog.VariableTypes))

	if opts.Optimize {
		fmt.Println("phase: optimization")
		optimized := optimizer.Optimize(prog)
		if removed := len(prog.Instructions) - len(optimized.Instructions); removed > 0 {
			fmt.Printf("  dead code elimination: %d instructions removed\n", removed)
		}
		prog = optimized
	}

	fmt.Println()
	prog.Dump(os.Stdout)
	fmt.Println()

	if opts.Output != "" {
		if err := prog.WriteFile(opts.Output); err != nil {
			return err
		}
		fmt.Printf("TAC saved to: %s\n", opts.Output)
	}

	fmt.Println("phase: interpretation")
	machine := interp.New()
	if err := machine.Run(prog); err != nil {
		return tracerr.Wrap(err)
	}
	fmt.Printf("  output lines: %d\n", len(machine.Output()))
	return nil
}

func printTokens(tokens []token.Token) {
	fmt.Println("\n=== TOKEN LIST ===")
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		fmt.Printf("  [%s] '%s' (line %d, col %d)\n",
			tok.Kind, tok.Lexeme, tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println()
}
