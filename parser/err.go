package parser

import "github.com/ezrec/arithcc/translate"

var f = translate.From

var (
	ErrExpectedNumber = translate.Error("expected a number")
	ErrExpectedPunct  = translate.Error("expected punctuation")
	ErrTrailing       = translate.Error("extra token")
)

// ErrExpected is a missing punctuation character.
type ErrExpected byte

func (err ErrExpected) Error() string {
	return f("expected '%c'", rune(err))
}

func (err ErrExpected) Is(target error) bool {
	return target == ErrExpectedPunct
}

// ErrSyntax is a grammar mismatch at a byte offset of the source.
type ErrSyntax struct {
	Offset int   // Offset of the offending token.
	Err    error // Underlying error.
}

func (err *ErrSyntax) Error() string {
	return f("offset %d: %v", err.Offset, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// Position returns the byte offset of the error.
func (err *ErrSyntax) Position() int {
	return err.Offset
}

// Message returns the error text without the location.
func (err *ErrSyntax) Message() string {
	return err.Err.Error()
}
