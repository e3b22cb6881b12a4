// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package parser builds an expression tree from a token sequence by
// recursive descent.
//
//	expr    = mul ("+" mul | "-" mul)*
//	mul     = primary ("*" primary | "/" primary)*
//	primary = num | "(" expr ")"
package parser

import (
	"github.com/ezrec/arithcc/lexer"
)

// Parser holds the token cursor for a single parse.
type Parser struct {
	toks *lexer.Tokens
}

// NewParser creates a parser reading from the start of toks.
func NewParser(toks *lexer.Tokens) *Parser {
	toks.Reset()
	return &Parser{toks: toks}
}

// Parse parses a complete expression. Every token up to KIND_EOF must be consumed.
func Parse(toks *lexer.Tokens) (node Node, err error) {
	p := NewParser(toks)

	node, err = p.Expr()
	if err != nil {
		return
	}

	err = p.End()
	if err != nil {
		node = nil
	}

	return
}

// End fails unless the cursor is at the end of input.
func (p *Parser) End() (err error) {
	if !p.toks.AtEOF() {
		err = &ErrSyntax{Offset: p.toks.Peek().Offset, Err: ErrTrailing}
	}
	return
}

// binaryOf consumes the first of ops found at the cursor.
func (p *Parser) binaryOf(ops string) (op Op, offset int, ok bool) {
	tok := p.toks.Peek()
	for _, c := range []byte(ops) {
		if p.toks.Consume(c) {
			return opMap[c], tok.Offset, true
		}
	}
	return
}

// expect consumes the punctuation op or fails.
func (p *Parser) expect(op byte) (err error) {
	if !p.toks.Consume(op) {
		err = &ErrSyntax{Offset: p.toks.Peek().Offset, Err: ErrExpected(op)}
	}
	return
}

// expectNumber consumes a number literal or fails.
func (p *Parser) expectNumber() (num *Number, err error) {
	tok := p.toks.Peek()
	if tok.Kind != lexer.KIND_NUM {
		err = &ErrSyntax{Offset: tok.Offset, Err: ErrExpectedNumber}
		return
	}
	p.toks.Next()

	num = &Number{Value: tok.Value, Offset: tok.Offset}
	return
}

// chain parses operand ((ops) operand)*, folding to the left.
func (p *Parser) chain(ops string, operand func() (Node, error)) (node Node, err error) {
	node, err = operand()
	if err != nil {
		return
	}

	for {
		op, offset, ok := p.binaryOf(ops)
		if !ok {
			return
		}

		var rhs Node
		rhs, err = operand()
		if err != nil {
			node = nil
			return
		}

		bin := NewBinary(op, node, rhs)
		bin.Offset = offset
		node = bin
	}
}

// Expr parses expr = mul ("+" mul | "-" mul)*
func (p *Parser) Expr() (Node, error) {
	return p.chain("+-", p.Mul)
}

// Mul parses mul = primary ("*" primary | "/" primary)*
func (p *Parser) Mul() (Node, error) {
	return p.chain("*/", p.Primary)
}

// Primary parses primary = num | "(" expr ")"
func (p *Parser) Primary() (node Node, err error) {
	if p.toks.Consume('(') {
		node, err = p.Expr()
		if err != nil {
			return
		}
		err = p.expect(')')
		if err != nil {
			node = nil
		}
		return
	}

	num, err := p.expectNumber()
	if err != nil {
		return
	}

	node = num
	return
}
