package lexer

import "github.com/ezrec/arithcc/translate"

var f = translate.From

var (
	ErrInvalidCharacter = translate.Error("invalid token")
)

// ErrLex is a lexical error at a byte offset of the source.
type ErrLex struct {
	Offset int   // Offset of the unscannable byte.
	Char   byte  // The unscannable byte.
	Err    error // Underlying error.
}

func (err *ErrLex) Error() string {
	return f("offset %d %q: %v", err.Offset, string(err.Char), err.Err)
}

func (err *ErrLex) Unwrap() error {
	return err.Err
}

// Position returns the byte offset of the error.
func (err *ErrLex) Position() int {
	return err.Offset
}

// Message returns the error text without the location.
func (err *ErrLex) Message() string {
	return err.Err.Error()
}
