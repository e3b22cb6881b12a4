package compiler

import "github.com/ezrec/arithcc/translate"

var f = translate.From

var (
	ErrCheckMismatch = translate.Error("emulated result differs from evaluated result")
	ErrStackBalance  = translate.Error("generated code is not stack balanced")
)

// ErrCheck is a disagreement between the emulator and the evaluator.
type ErrCheck struct {
	Emulated  int64 // Value returned by the generated code.
	Evaluated int64 // Value computed by the reference evaluator.
	EmuErr    error // Trap raised by the generated code, if any.
	EvalErr   error // Trap raised by the reference evaluator, if any.
}

func (err *ErrCheck) Error() string {
	return f("%v: emulated %v (%v), evaluated %v (%v)", ErrCheckMismatch, err.Emulated, err.EmuErr, err.Evaluated, err.EvalErr)
}

func (err *ErrCheck) Unwrap() error {
	return ErrCheckMismatch
}
