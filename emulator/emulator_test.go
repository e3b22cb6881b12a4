package emulator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/arithcc/codegen"
	"github.com/ezrec/arithcc/lexer"
	"github.com/ezrec/arithcc/parser"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Program)

	// An empty body underflows in the trailer.
	value, err := emu.Run()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(int64(0), value)
}

func doRun(t *testing.T, input string) (value int64, err error) {
	toks, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("%v: %v", input, err)
	}
	tree, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("%v: %v", input, err)
	}

	emu := NewEmulator()
	emu.Program = codegen.Generate(tree)
	return emu.Run()
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Input string
		Value int64
	}){
		{Input: "0", Value: 0},
		{Input: "42", Value: 42},
		{Input: "1+2*3", Value: 7},
		{Input: "(1+2)*3", Value: 9},
		{Input: "10-2-3", Value: 5},
		{Input: "8/3", Value: 2},
		{Input: " 1 + 1 ", Value: 2},
		{Input: "(0-7)/2", Value: -3},
		{Input: "7/(0-2)", Value: -3},
		{Input: "(0-7)/(0-2)", Value: 3},
		{Input: "5-10", Value: -5},
		{Input: "2*(3+4)*5/7", Value: 10},
		{Input: "3000000000*3", Value: 9000000000},
		{Input: "9223372036854775807+1", Value: math.MinInt64},
		{Input: "99999999999999999999", Value: math.MaxInt64},
	}

	for _, entry := range table {
		value, err := doRun(t, entry.Input)
		assert.NoError(err, entry.Input)
		assert.Equal(entry.Value, value, entry.Input)
	}
}

func TestEmulatorTrap(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Input string
		Err   error
		Index int
	}){
		{Input: "1/0", Err: ErrDivideByZero, Index: 5},
		{Input: "1/(2-2)", Err: ErrDivideByZero, Index: 10},
		{Input: "(0-9223372036854775807-1)/(0-1)", Err: ErrDivideOverflow, Index: 21},
	}

	for _, entry := range table {
		_, err := doRun(t, entry.Input)
		assert.ErrorIs(err, entry.Err, entry.Input)

		var errRuntime *ErrRuntime
		if assert.True(errors.As(err, &errRuntime), entry.Input) {
			assert.Equal(entry.Index, errRuntime.Index, entry.Input)
		}
	}
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program.Body = []codegen.Instr{
		{Insn: codegen.INSN_PUSH, Dst: codegen.I(6)},
		{Insn: codegen.INSN_PUSH, Dst: codegen.I(7)},
		{Insn: codegen.INSN_POP, Dst: codegen.R(codegen.REG_RDI)},
		{Insn: codegen.INSN_POP, Dst: codegen.R(codegen.REG_RAX)},
		{Insn: codegen.INSN_IMUL, Dst: codegen.R(codegen.REG_RAX), Src: codegen.R(codegen.REG_RDI)},
		{Insn: codegen.INSN_PUSH, Dst: codegen.R(codegen.REG_RAX)},
	}
	emu.Reset()

	depth := []int{1, 2, 1, 0, 0, 1, 0, 0}
	for n, expected := range depth {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.Equal(n == len(depth)-1, done, emu.String())
		assert.Equal(expected, emu.Stack.Depth(), emu.String())
	}

	assert.Equal(int64(42), emu.Register[codegen.REG_RAX])
	assert.Equal(int64(7), emu.Register[codegen.REG_RDI])
	assert.Equal(2, emu.MaxDepth)
	assert.Equal(8, emu.Ticks)

	// Ticking after completion is a no-op.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(8, emu.Ticks)
}

func TestEmulatorStackLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Stack.Limit = 2
	emu.Program.Body = []codegen.Instr{
		{Insn: codegen.INSN_PUSH, Dst: codegen.I(1)},
		{Insn: codegen.INSN_PUSH, Dst: codegen.I(2)},
		{Insn: codegen.INSN_PUSH, Dst: codegen.I(3)},
	}

	_, err := emu.Run()
	assert.ErrorIs(err, ErrStackFull)
}

func TestEmulatorInvalid(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.ErrorIs(emu.Execute(codegen.Instr{Insn: codegen.Insn(99)}), ErrInsnInvalid)
	assert.ErrorIs(emu.Execute(codegen.Instr{Insn: codegen.INSN_PUSH}), ErrOperandInvalid)
	assert.ErrorIs(emu.Execute(codegen.Instr{Insn: codegen.INSN_MOV, Dst: codegen.I(1), Src: codegen.I(2)}), ErrOperandInvalid)

	// rdx not a sign extension of rax.
	emu.Register[codegen.REG_RAX] = 1
	emu.Register[codegen.REG_RDX] = 1
	emu.Register[codegen.REG_RDI] = 1
	assert.ErrorIs(emu.Execute(codegen.Instr{Insn: codegen.INSN_IDIV, Dst: codegen.R(codegen.REG_RDI)}), ErrDivideOverflow)

	emu.Register[codegen.REG_RAX] = -5
	assert.NoError(emu.Execute(codegen.Instr{Insn: codegen.INSN_CQO}))
	assert.Equal(int64(-1), emu.Register[codegen.REG_RDX])
	emu.Register[codegen.REG_RDI] = 2
	assert.NoError(emu.Execute(codegen.Instr{Insn: codegen.INSN_IDIV, Dst: codegen.R(codegen.REG_RDI)}))
	assert.Equal(int64(-2), emu.Register[codegen.REG_RAX])
	assert.Equal(int64(-1), emu.Register[codegen.REG_RDX])
}
