// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package codegen translates an expression tree into x86-64 stack machine code.
//
// Each subtree leaves exactly one value on the machine stack. An operator
// pops its right operand into rdi and its left operand into rax, computes
// into rax, and pushes rax.
package codegen

import (
	"github.com/ezrec/arithcc/parser"
)

// aluMap maps binary operators to their instruction sequences.
var aluMap = map[parser.Op][]Instr{
	parser.OP_ADD: {{Insn: INSN_ADD, Dst: R(REG_RAX), Src: R(REG_RDI)}},
	parser.OP_SUB: {{Insn: INSN_SUB, Dst: R(REG_RAX), Src: R(REG_RDI)}},
	parser.OP_MUL: {{Insn: INSN_IMUL, Dst: R(REG_RAX), Src: R(REG_RDI)}},
	parser.OP_DIV: {{Insn: INSN_CQO}, {Insn: INSN_IDIV, Dst: R(REG_RDI)}},
}

// Generate returns the program computing tree, in Intel syntax labelled DefaultLabel.
func Generate(tree parser.Node) (prog *Program) {
	prog = &Program{
		Label:   DefaultLabel,
		Dialect: DIALECT_INTEL,
	}

	parser.Walk(tree, func(n parser.Node) {
		prog.Body = append(prog.Body, gen(n)...)
	})

	return
}

// gen returns the code for a node whose operands are already on the stack.
func gen(n parser.Node) (codes []Instr) {
	switch n := n.(type) {
	case *parser.Number:
		if Imm32(n.Value) {
			codes = append(codes, Instr{Insn: INSN_PUSH, Dst: I(n.Value)})
		} else {
			codes = append(codes,
				Instr{Insn: INSN_MOV, Dst: R(REG_RAX), Src: I(n.Value)},
				Instr{Insn: INSN_PUSH, Dst: R(REG_RAX)},
			)
		}
	case *parser.Binary:
		codes = append(codes,
			Instr{Insn: INSN_POP, Dst: R(REG_RDI)},
			Instr{Insn: INSN_POP, Dst: R(REG_RAX)},
		)
		codes = append(codes, aluMap[n.Op]...)
		codes = append(codes, Instr{Insn: INSN_PUSH, Dst: R(REG_RAX)})
	}

	return
}
