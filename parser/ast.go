// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package parser

import (
	"fmt"
	"strings"
)

// Op is a binary operator.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD = Op(0) // +
	OP_SUB = Op(1) // -
	OP_MUL = Op(2) // *
	OP_DIV = Op(3) // /
)

// opMap maps punctuation to binary operators.
var opMap = map[byte]Op{
	'+': OP_ADD,
	'-': OP_SUB,
	'*': OP_MUL,
	'/': OP_DIV,
}

// Node is an expression tree node. It is either a *Number or a *Binary.
type Node interface {
	node()
}

// Number is an integer literal leaf.
type Number struct {
	Value  int64 // Literal value.
	Offset int   // Source offset of the literal.
}

// Binary is an operator with exactly two operands.
type Binary struct {
	Op     Op   // Operator.
	Lhs    Node // Left operand.
	Rhs    Node // Right operand.
	Offset int  // Source offset of the operator.
}

func (*Number) node() {}
func (*Binary) node() {}

// NewNumber creates a literal leaf.
func NewNumber(value int64) *Number {
	return &Number{Value: value}
}

// NewBinary creates an operator node from two complete subtrees.
func NewBinary(op Op, lhs, rhs Node) *Binary {
	return &Binary{Op: op, Lhs: lhs, Rhs: rhs}
}

// Equal returns true if the two trees have the same shape, operators and values.
// Source offsets are ignored.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Number:
		b, ok := b.(*Number)
		return ok && a.Value == b.Value
	case *Binary:
		b, ok := b.(*Binary)
		return ok && a.Op == b.Op && Equal(a.Lhs, b.Lhs) && Equal(a.Rhs, b.Rhs)
	}

	return false
}

// Format renders the tree fully parenthesised, e.g. "(1 + (2 * 3))".
func Format(n Node) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Number:
		fmt.Fprintf(sb, "%d", n.Value)
	case *Binary:
		sb.WriteByte('(')
		format(sb, n.Lhs)
		fmt.Fprintf(sb, " %v ", n.Op)
		format(sb, n.Rhs)
		sb.WriteByte(')')
	}
}

// Walk visits the tree in post-order: both operands before their operator.
func Walk(n Node, visit func(Node)) {
	if bin, ok := n.(*Binary); ok {
		Walk(bin.Lhs, visit)
		Walk(bin.Rhs, visit)
	}
	visit(n)
}
