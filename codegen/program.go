package codegen

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ezrec/arithcc/internal"
)

// DefaultLabel is the function label used when none is set.
const DefaultLabel = "main"

// Program is a generated function: a label and its instruction body.
type Program struct {
	Label   string  // Function label.
	Dialect Dialect // Assembler syntax for rendering.
	Body    []Instr // Instructions leaving the result on the stack.
}

// trailer moves the result into rax and returns.
var trailer = []Instr{
	{Insn: INSN_POP, Dst: R(REG_RAX)},
	{Insn: INSN_RET},
}

// Instructions returns the body followed by the function trailer.
func (prog *Program) Instructions() iter.Seq[Instr] {
	return internal.IterSeqConcat(slices.Values(prog.Body), slices.Values(trailer))
}

// Header returns the directive and label lines.
func (prog *Program) Header() (lines []string) {
	label := prog.Label
	if len(label) == 0 {
		label = DefaultLabel
	}

	if prog.Dialect == DIALECT_INTEL {
		lines = append(lines, ".intel_syntax noprefix")
	}
	lines = append(lines,
		fmt.Sprintf(".globl %v", label),
		fmt.Sprintf("%v:", label),
	)

	return
}

// Render returns a single instruction line in the program's dialect.
func (prog *Program) Render(in Instr) string {
	if prog.Dialect == DIALECT_ATT {
		return "  " + in.Att()
	}
	return "  " + in.Intel()
}

// Lines returns every line of assembly text.
func (prog *Program) Lines() iter.Seq[string] {
	return internal.IterSeqConcat(
		slices.Values(prog.Header()),
		internal.IterSeqMap(prog.Instructions(), prog.Render),
	)
}

// WriteTo writes the assembly text to w.
func (prog *Program) WriteTo(w io.Writer) (total int64, err error) {
	for line := range prog.Lines() {
		var n int
		n, err = fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return
		}
	}

	return
}

// Depth returns the stack depth after each body instruction.
func (prog *Program) Depth() (depth []int) {
	level := 0
	for _, in := range prog.Body {
		level += in.StackEffect()
		depth = append(depth, level)
	}

	return
}
