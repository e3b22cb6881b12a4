// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator executes generated programs on a model of the x86-64
// integer unit and stack.
package emulator

import (
	"fmt"
	"log"
	"math"
	"slices"
	"strings"

	"github.com/ezrec/arithcc/codegen"
)

// Emulator state. Registers, stack, and the loaded program.
type Emulator struct {
	Verbose  bool             // If set, enables verbose logging.
	Program  *codegen.Program // Reference to the program to execute.
	Register [3]int64         // Register bank, indexed by codegen.Reg.
	Stack    Stack            // Machine stack.
	Ip       int              // Index of the next instruction.
	Ticks    int              // Instructions executed since a reset.
	MaxDepth int              // Deepest stack seen since a reset.

	code []codegen.Instr
	done bool
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &codegen.Program{},
	}

	return
}

// Reset the machine state and reload the program.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset")
	}

	emu.code = slices.Collect(emu.Program.Instructions())
	clear(emu.Register[:])
	emu.Stack.Reset()
	emu.Ip = 0
	emu.Ticks = 0
	emu.MaxDepth = 0
	emu.done = false
}

// String dumps the register and stack state.
func (emu *Emulator) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "ip=%d", emu.Ip)
	for n, value := range emu.Register {
		fmt.Fprintf(&sb, " %v=%d", codegen.Reg(n), value)
	}
	fmt.Fprintf(&sb, " stack=%v", emu.Stack.Data)

	return sb.String()
}

// Tick executes a single instruction. Returns done after the final ret.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.done || emu.Ip >= len(emu.code) {
		emu.done = true
		done = true
		return
	}

	ip := emu.Ip
	defer func() {
		if err != nil {
			err = &ErrRuntime{Index: ip, Err: err}
		}
	}()

	in := emu.code[ip]
	if emu.Verbose {
		log.Printf("%03d: %v", ip, in.Intel())
	}

	err = emu.Execute(in)
	if err != nil {
		return
	}

	emu.Ip++
	emu.Ticks++
	emu.MaxDepth = max(emu.MaxDepth, emu.Stack.Depth())

	done = emu.done
	return
}

// Run resets the emulator, executes the program to completion and
// returns the value of rax.
func (emu *Emulator) Run() (value int64, err error) {
	emu.Reset()

	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return 0, err
		}
	}

	value = emu.Register[codegen.REG_RAX]
	if emu.Verbose {
		log.Printf("emulator: %v ticks, max depth %v, rax=%v", emu.Ticks, emu.MaxDepth, value)
	}

	return
}

// getValue reads a register or immediate operand.
func (emu *Emulator) getValue(op codegen.Operand) (value int64, err error) {
	switch op.Kind {
	case codegen.OPERAND_IMM:
		value = op.Imm
	case codegen.OPERAND_REG:
		value, err = emu.getReg(op)
	default:
		err = ErrOperandInvalid
	}
	return
}

// getReg reads a register operand.
func (emu *Emulator) getReg(op codegen.Operand) (value int64, err error) {
	if op.Kind != codegen.OPERAND_REG || op.Reg < 0 || int(op.Reg) >= len(emu.Register) {
		err = ErrOperandInvalid
		return
	}
	value = emu.Register[op.Reg]
	return
}

// setReg writes a register operand.
func (emu *Emulator) setReg(op codegen.Operand, value int64) (err error) {
	if op.Kind != codegen.OPERAND_REG || op.Reg < 0 || int(op.Reg) >= len(emu.Register) {
		err = ErrOperandInvalid
		return
	}
	emu.Register[op.Reg] = value
	return
}

// Execute performs a single instruction.
func (emu *Emulator) Execute(in codegen.Instr) (err error) {
	rax := &emu.Register[codegen.REG_RAX]
	rdx := &emu.Register[codegen.REG_RDX]

	switch in.Insn {
	case codegen.INSN_PUSH:
		var value int64
		value, err = emu.getValue(in.Dst)
		if err != nil {
			return
		}
		if !emu.Stack.Push(value) {
			err = ErrStackFull
		}
	case codegen.INSN_POP:
		value, ok := emu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		err = emu.setReg(in.Dst, value)
	case codegen.INSN_MOV:
		var value int64
		value, err = emu.getValue(in.Src)
		if err != nil {
			return
		}
		err = emu.setReg(in.Dst, value)
	case codegen.INSN_ADD, codegen.INSN_SUB, codegen.INSN_IMUL:
		var a, b int64
		a, err = emu.getReg(in.Dst)
		if err != nil {
			return
		}
		b, err = emu.getValue(in.Src)
		if err != nil {
			return
		}
		err = emu.setReg(in.Dst, doAlu(in.Insn, a, b))
	case codegen.INSN_CQO:
		*rdx = *rax >> 63
	case codegen.INSN_IDIV:
		var divisor int64
		divisor, err = emu.getReg(in.Dst)
		if err != nil {
			return
		}
		// Only sign-extended dividends are modelled.
		if *rdx != *rax>>63 {
			err = ErrDivideOverflow
			return
		}
		switch {
		case divisor == 0:
			err = ErrDivideByZero
		case *rax == math.MinInt64 && divisor == -1:
			err = ErrDivideOverflow
		default:
			*rax, *rdx = *rax/divisor, *rax%divisor
		}
	case codegen.INSN_RET:
		emu.done = true
	default:
		err = ErrInsnInvalid
	}

	return
}

// doAlu computes a two's complement wrapping ALU operation.
func doAlu(insn codegen.Insn, a int64, b int64) int64 {
	switch insn {
	case codegen.INSN_ADD:
		return a + b
	case codegen.INSN_SUB:
		return a - b
	case codegen.INSN_IMUL:
		return a * b
	}
	return a
}
