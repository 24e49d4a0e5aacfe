package ir

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Dump writes the textual TAC listing. The format is fixed; reference
// outputs depend on it byte for byte. Variable table order follows map
// iteration and is deliberately unspecified.
func (p *Program) Dump(w io.Writer) {
	fmt.Fprintf(w, "=== THREE-ADDRESS CODE (TAC) ===\n\n")
	for i, instr := range p.Instructions {
		fmt.Fprintf(w, "%3d:  %s\n", i, instr)
	}
	fmt.Fprintf(w, "\n=== VARIABLE TABLE ===\n")
	for name, t := range p.VariableTypes {
		fmt.Fprintf(w, "  %s : %s\n", name, t)
	}
}

func (p *Program) WriteFile(path string) error {
	var buf bytes.Buffer
	p.Dump(&buf)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
