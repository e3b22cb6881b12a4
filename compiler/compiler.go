// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package compiler runs the lexer, parser and code generator over a single
// arithmetic expression and reports diagnostics.
package compiler

import (
	"errors"
	"log"

	"github.com/ezrec/arithcc/codegen"
	"github.com/ezrec/arithcc/config"
	"github.com/ezrec/arithcc/emulator"
	"github.com/ezrec/arithcc/evaluate"
	"github.com/ezrec/arithcc/lexer"
	"github.com/ezrec/arithcc/parser"
)

// Unit is the result of compiling one expression.
type Unit struct {
	Source  string           // Original input.
	Tree    parser.Node      // Parsed expression tree.
	Program *codegen.Program // Generated code.
}

// Compiler holds the settings for compilation runs.
type Compiler struct {
	Verbose bool           // If set, logs each pipeline stage.
	Config  *config.Config // Settings. Nil uses config.Default().
}

// NewCompiler creates a compiler with the given settings.
func NewCompiler(cfg *config.Config) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Compiler{
		Verbose: cfg.Verbose,
		Config:  cfg,
	}
}

func (cc *Compiler) config() *config.Config {
	if cc.Config == nil {
		cc.Config = config.Default()
	}
	return cc.Config
}

// Compile lexes, parses and generates code for input.
// Errors are *lexer.ErrLex or *parser.ErrSyntax.
func (cc *Compiler) Compile(input string) (unit *Unit, err error) {
	cfg := cc.config()

	toks, err := lexer.Tokenize(input)
	if err != nil {
		return
	}
	if cc.Verbose {
		log.Printf("lexer: %v tokens", toks.Len())
	}

	tree, err := parser.Parse(toks)
	if err != nil {
		return
	}
	if cc.Verbose {
		log.Printf("parser: %v", parser.Format(tree))
	}

	prog := codegen.Generate(tree)
	prog.Label = cfg.Label
	prog.Dialect = cfg.Dialect()
	if cc.Verbose {
		log.Printf("codegen: %v instructions, %v syntax", len(prog.Body), prog.Dialect)
	}

	unit = &Unit{
		Source:  input,
		Tree:    tree,
		Program: prog,
	}

	return
}

// Run executes the generated code on the emulator and returns its result.
func (cc *Compiler) Run(unit *Unit) (value int64, err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = cc.Verbose
	emu.Program = unit.Program
	emu.Stack.Limit = cc.config().StackLimit

	return emu.Run()
}

// Check verifies that the generated code is stack balanced and that
// executing it agrees with the reference evaluator, traps included.
func (cc *Compiler) Check(unit *Unit) (err error) {
	depth := unit.Program.Depth()
	for _, level := range depth {
		if level < 0 {
			return ErrStackBalance
		}
	}
	if len(depth) == 0 || depth[len(depth)-1] != 1 {
		return ErrStackBalance
	}

	emulated, emuErr := cc.Run(unit)
	evaluated, evalErr := evaluate.Eval(unit.Tree)
	if cc.Verbose {
		log.Printf("check: emulated %v (%v), evaluated %v (%v)", emulated, emuErr, evaluated, evalErr)
	}

	mismatch := &ErrCheck{
		Emulated:  emulated,
		Evaluated: evaluated,
		EmuErr:    emuErr,
		EvalErr:   evalErr,
	}

	switch {
	case emuErr == nil && evalErr == nil:
		if emulated != evaluated {
			err = mismatch
		}
	case emuErr != nil && evalErr != nil:
		if !sameTrap(emuErr, evalErr) {
			err = mismatch
		}
	default:
		err = mismatch
	}

	return
}

// sameTrap returns true if both errors are the same division trap.
func sameTrap(a, b error) bool {
	for _, trap := range []error{emulator.ErrDivideByZero, emulator.ErrDivideOverflow} {
		if errors.Is(a, trap) && errors.Is(b, trap) {
			return true
		}
	}
	return false
}
