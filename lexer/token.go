// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package lexer

// Kind is the type of a token.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_PUNCT = Kind(0) // punct
	KIND_NUM   = Kind(1) // num
	KIND_EOF   = Kind(2) // eof
)

// Puncts are the single character operator and punctuation tokens.
const Puncts = "+-*/()"

// Token is a lexical unit pointing back into the source.
type Token struct {
	Kind   Kind  // Kind of token.
	Offset int   // Byte offset of the token in the source.
	Punct  byte  // When Kind is KIND_PUNCT, the character.
	Value  int64 // When Kind is KIND_NUM, its value.
}

// Position returns the source byte offset of the token.
func (tok Token) Position() int {
	return tok.Offset
}

// Is returns true if the token is the punctuation character op.
func (tok Token) Is(op byte) bool {
	return tok.Kind == KIND_PUNCT && tok.Punct == op
}

// Tokens is an immutable token sequence with a forward-only cursor.
type Tokens struct {
	list []Token
	pos  int
}

// NewTokens wraps a token list. The list must end with a KIND_EOF token.
func NewTokens(list []Token) *Tokens {
	return &Tokens{list: list}
}

// Len returns the number of tokens, including the final KIND_EOF.
func (toks *Tokens) Len() int {
	return len(toks.list)
}

// All returns a copy of the token list.
func (toks *Tokens) All() []Token {
	return append([]Token(nil), toks.list...)
}

// Reset rewinds the cursor to the first token.
func (toks *Tokens) Reset() {
	toks.pos = 0
}

// Peek returns the current token without advancing.
func (toks *Tokens) Peek() Token {
	return toks.list[toks.pos]
}

// Next returns the current token and advances, stopping at KIND_EOF.
func (toks *Tokens) Next() (tok Token) {
	tok = toks.list[toks.pos]
	if tok.Kind != KIND_EOF {
		toks.pos++
	}
	return
}

// AtEOF returns true when the cursor is on the KIND_EOF token.
func (toks *Tokens) AtEOF() bool {
	return toks.Peek().Kind == KIND_EOF
}

// Consume advances past the current token if it is the punctuation op.
func (toks *Tokens) Consume(op byte) bool {
	if !toks.Peek().Is(op) {
		return false
	}
	toks.pos++
	return true
}
