// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package lexer splits an arithmetic expression into tokens.
package lexer

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// number scans a run of digits starting at offset, saturating at
// math.MaxInt64. Returns the value and the offset past the run.
func number(input string, offset int) (value int64, end int) {
	for end = offset; end < len(input) && isDigit(input[end]); end++ {
		digit := int64(input[end] - '0')
		if value > (math.MaxInt64-digit)/10 {
			value = math.MaxInt64
			continue
		}
		value = value*10 + digit
	}

	return
}

// Tokenize splits input into tokens, terminated by a KIND_EOF token.
func Tokenize(input string) (toks *Tokens, err error) {
	var list []Token

	for p := 0; p < len(input); {
		c := input[p]

		// Skip whitespace.
		if c < utf8.RuneSelf && unicode.IsSpace(rune(c)) {
			p++
			continue
		}

		// Punctuators
		if strings.IndexByte(Puncts, c) >= 0 {
			list = append(list, Token{Kind: KIND_PUNCT, Offset: p, Punct: c})
			p++
			continue
		}

		// Numeric literal
		if isDigit(c) {
			tok := Token{Kind: KIND_NUM, Offset: p}
			tok.Value, p = number(input, p)
			list = append(list, tok)
			continue
		}

		err = &ErrLex{Offset: p, Char: c, Err: ErrInvalidCharacter}
		return
	}

	list = append(list, Token{Kind: KIND_EOF, Offset: len(input)})
	toks = NewTokens(list)

	return
}
