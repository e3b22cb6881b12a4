package emulator

import "github.com/ezrec/arithcc/translate"

var f = translate.From

var (
	ErrStackEmpty     = translate.Error("stack empty")
	ErrStackFull      = translate.Error("stack full")
	ErrDivideByZero   = translate.Error("divide by zero")
	ErrDivideOverflow = translate.Error("divide overflow")
	ErrInsnInvalid    = translate.Error("instruction invalid")
	ErrOperandInvalid = translate.Error("operand invalid")
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Index int // Index of the faulting instruction.
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("instruction %d %v", err.Index, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
