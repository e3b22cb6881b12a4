package compiler

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/arithcc/codegen"
	"github.com/ezrec/arithcc/config"
	"github.com/ezrec/arithcc/emulator"
	"github.com/ezrec/arithcc/lexer"
	"github.com/ezrec/arithcc/parser"
)

func TestCompile(t *testing.T) {
	assert := assert.New(t)

	cc := NewCompiler(nil)

	table := [](struct {
		Input string
		Value int64
	}){
		{Input: "1+2*3", Value: 7},
		{Input: "(1+2)*3", Value: 9},
		{Input: "10-2-3", Value: 5},
		{Input: "8/3", Value: 2},
		{Input: " 1 + 1 ", Value: 2},
		{Input: "((2+3)*(7-4))/(1+1)", Value: 7},
		{Input: "100/7/2", Value: 7},
		{Input: "1-100", Value: -99},
	}

	for _, entry := range table {
		unit, err := cc.Compile(entry.Input)
		if !assert.NoError(err, entry.Input) {
			continue
		}
		assert.Equal(entry.Input, unit.Source)

		value, err := cc.Run(unit)
		assert.NoError(err, entry.Input)
		assert.Equal(entry.Value, value, entry.Input)

		assert.NoError(cc.Check(unit), entry.Input)
	}
}

func TestCompileConfig(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Syntax = "att"
	cfg.Label = "calc"
	cc := NewCompiler(cfg)

	unit, err := cc.Compile("2*21")
	assert.NoError(err)

	lines := slices.Collect(unit.Program.Lines())
	assert.Equal(".globl calc", lines[0])
	assert.Equal("calc:", lines[1])
	assert.Equal("  pushq $2", lines[2])
	assert.Equal("  ret", lines[len(lines)-1])

	value, err := cc.Run(unit)
	assert.NoError(err)
	assert.Equal(int64(42), value)
}

func TestCompileError(t *testing.T) {
	assert := assert.New(t)

	cc := &Compiler{}

	unit, err := cc.Compile("1 + a")
	assert.Nil(unit)
	assert.ErrorIs(err, lexer.ErrInvalidCharacter)

	unit, err = cc.Compile("(1+2")
	assert.Nil(unit)
	assert.ErrorIs(err, parser.ErrExpectedPunct)
	var pos Positioned
	if assert.True(errors.As(err, &pos)) {
		assert.Equal(4, pos.Position())
	}

	unit, err = cc.Compile("4 4")
	assert.Nil(unit)
	assert.ErrorIs(err, parser.ErrTrailing)
}

func TestCheckTrap(t *testing.T) {
	assert := assert.New(t)

	cc := NewCompiler(nil)

	// Both the emulator and the evaluator trap the same way.
	for _, input := range []string{"1/0", "1/(5-5)", "(0-9223372036854775807-1)/(0-1)"} {
		unit, err := cc.Compile(input)
		assert.NoError(err, input)
		assert.NoError(cc.Check(unit), input)

		_, err = cc.Run(unit)
		assert.Error(err, input)
	}
}

func TestCheckMismatch(t *testing.T) {
	assert := assert.New(t)

	cc := NewCompiler(nil)

	unit, err := cc.Compile("7-2")
	assert.NoError(err)

	// Swap the operand pops.
	body := unit.Program.Body
	body[2], body[3] = body[3], body[2]
	err = cc.Check(unit)
	assert.ErrorIs(err, ErrCheckMismatch)
	var errCheck *ErrCheck
	if assert.True(errors.As(err, &errCheck)) {
		assert.Equal(int64(-5), errCheck.Emulated)
		assert.Equal(int64(5), errCheck.Evaluated)
	}

	// Drop the final push.
	unit, err = cc.Compile("7-2")
	assert.NoError(err)
	unit.Program.Body = unit.Program.Body[:len(unit.Program.Body)-1]
	assert.ErrorIs(cc.Check(unit), ErrStackBalance)

	// Extra pop.
	unit.Program.Body = append([]codegen.Instr{{Insn: codegen.INSN_POP, Dst: codegen.R(codegen.REG_RDI)}}, unit.Program.Body...)
	assert.ErrorIs(cc.Check(unit), ErrStackBalance)

	// Only one side traps.
	unit, err = cc.Compile("1/1")
	assert.NoError(err)
	unit.Program.Body[1] = codegen.Instr{Insn: codegen.INSN_PUSH, Dst: codegen.I(0)}
	err = cc.Check(unit)
	assert.ErrorIs(err, ErrCheckMismatch)
	if assert.True(errors.As(err, &errCheck)) {
		assert.ErrorIs(errCheck.EmuErr, emulator.ErrDivideByZero)
		assert.NoError(errCheck.EvalErr)
	}
}

func TestReport(t *testing.T) {
	assert := assert.New(t)

	cc := NewCompiler(nil)

	table := [](struct {
		Input  string
		Output string
	}){
		{Input: "1+x", Output: "1+x\n  ^ invalid token\n"},
		{Input: "(1+2", Output: "(1+2\n    ^ expected ')'\n"},
		{Input: "1 + * 2", Output: "1 + * 2\n    ^ expected a number\n"},
		{Input: "3 3", Output: "3 3\n  ^ extra token\n"},
		{Input: "\t1 ? 2", Output: "\t1 ? 2\n\t  ^ invalid token\n"},
	}

	for _, entry := range table {
		_, err := cc.Compile(entry.Input)
		assert.Error(err, entry.Input)

		buf := &bytes.Buffer{}
		Report(buf, entry.Input, err)
		assert.Equal(entry.Output, buf.String(), entry.Input)
	}
}

func TestReportCaret(t *testing.T) {
	assert := assert.New(t)

	cc := NewCompiler(nil)

	// The caret lines up under every possible bad byte offset.
	base := "1+2*3-4/5+(6)"
	for k := 0; k <= len(base); k++ {
		input := base[:k] + "#" + base[k:]
		_, err := cc.Compile(input)

		buf := &bytes.Buffer{}
		Report(buf, input, err)
		lines := strings.Split(buf.String(), "\n")
		assert.Equal(input, lines[0])
		assert.Equal(k, strings.Index(lines[1], "^"), input)
	}
}

func TestReportPlain(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	Report(buf, "ignored", ErrStackBalance)
	assert.Equal("generated code is not stack balanced\n", buf.String())
}
