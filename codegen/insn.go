// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package codegen

import (
	"fmt"
	"math"
)

// Insn is an x86-64 instruction mnemonic.
type Insn int

//go:generate go tool stringer -linecomment -type=Insn
const (
	INSN_PUSH = Insn(0) // push
	INSN_POP  = Insn(1) // pop
	INSN_MOV  = Insn(2) // mov
	INSN_ADD  = Insn(3) // add
	INSN_SUB  = Insn(4) // sub
	INSN_IMUL = Insn(5) // imul
	INSN_CQO  = Insn(6) // cqo
	INSN_IDIV = Insn(7) // idiv
	INSN_RET  = Insn(8) // ret
)

// Reg is a 64-bit general purpose register.
type Reg int

//go:generate go tool stringer -linecomment -type=Reg
const (
	REG_RAX = Reg(0) // rax
	REG_RDI = Reg(1) // rdi
	REG_RDX = Reg(2) // rdx
)

// OperandKind is the type of an instruction operand.
type OperandKind int

const (
	OPERAND_NONE = OperandKind(0) // No operand.
	OPERAND_REG  = OperandKind(1) // Register operand.
	OPERAND_IMM  = OperandKind(2) // Immediate operand.
)

// Operand is a register or an immediate value.
type Operand struct {
	Kind OperandKind
	Reg  Reg
	Imm  int64
}

// R returns a register operand.
func R(reg Reg) Operand {
	return Operand{Kind: OPERAND_REG, Reg: reg}
}

// I returns an immediate operand.
func I(imm int64) Operand {
	return Operand{Kind: OPERAND_IMM, Imm: imm}
}

// Instr is a single instruction. Dst is the Intel syntax first operand.
type Instr struct {
	Insn Insn
	Dst  Operand
	Src  Operand
}

// StackEffect returns the change in stack depth caused by the instruction.
func (in Instr) StackEffect() int {
	switch in.Insn {
	case INSN_PUSH:
		return 1
	case INSN_POP:
		return -1
	}
	return 0
}

// Imm32 returns true if imm is encodable as a sign-extended 32-bit immediate.
func Imm32(imm int64) bool {
	return imm >= math.MinInt32 && imm <= math.MaxInt32
}

// Intel renders the instruction in Intel syntax without the operand prefixes.
func (in Instr) Intel() string {
	switch {
	case in.Src.Kind != OPERAND_NONE:
		return fmt.Sprintf("%v %v, %v", in.Insn, in.Dst.intel(), in.Src.intel())
	case in.Dst.Kind != OPERAND_NONE:
		return fmt.Sprintf("%v %v", in.Insn, in.Dst.intel())
	}
	return in.Insn.String()
}

// Att renders the instruction in AT&T syntax.
func (in Instr) Att() string {
	switch in.Insn {
	case INSN_CQO:
		return "cqto"
	case INSN_RET:
		return "ret"
	}

	mnemonic := in.Insn.String() + "q"
	if in.Insn == INSN_MOV && in.Src.Kind == OPERAND_IMM && !Imm32(in.Src.Imm) {
		mnemonic = "movabsq"
	}

	if in.Src.Kind != OPERAND_NONE {
		return fmt.Sprintf("%v %v, %v", mnemonic, in.Src.att(), in.Dst.att())
	}
	return fmt.Sprintf("%v %v", mnemonic, in.Dst.att())
}

func (op Operand) intel() string {
	if op.Kind == OPERAND_IMM {
		return fmt.Sprintf("%d", op.Imm)
	}
	return op.Reg.String()
}

func (op Operand) att() string {
	if op.Kind == OPERAND_IMM {
		return fmt.Sprintf("$%d", op.Imm)
	}
	return "%" + op.Reg.String()
}
