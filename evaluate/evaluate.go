// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package evaluate computes the value of an expression tree with Starlark,
// independently of the code generator.
//
// Every operation is reduced to 64-bit two's complement and division
// truncates toward zero, so the result matches the generated machine code.
package evaluate

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/arithcc/emulator"
	"github.com/ezrec/arithcc/parser"
	"github.com/ezrec/arithcc/translate"
)

var (
	ErrResultInvalid = translate.Error("result is not an integer")
	ErrArgument      = translate.Error("integer arguments required")
)

var mask64 = new(big.Int).SetUint64(math.MaxUint64)

// Source renders the tree as a Starlark expression.
func Source(tree parser.Node) string {
	var sb strings.Builder
	source(&sb, tree)
	return sb.String()
}

func source(sb *strings.Builder, n parser.Node) {
	switch n := n.(type) {
	case *parser.Number:
		fmt.Fprintf(sb, "%d", n.Value)
	case *parser.Binary:
		if n.Op == parser.OP_DIV {
			sb.WriteString("tdiv(")
			source(sb, n.Lhs)
			sb.WriteString(", ")
			source(sb, n.Rhs)
			sb.WriteString(")")
			return
		}
		sb.WriteString("wrap(")
		source(sb, n.Lhs)
		fmt.Fprintf(sb, " %v ", n.Op)
		source(sb, n.Rhs)
		sb.WriteString(")")
	}
}

// intArgs unpacks n positional integer arguments.
func intArgs(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, n int) (ints []starlark.Int, err error) {
	if len(args) != n || len(kwargs) != 0 {
		err = fmt.Errorf("%v: %w", b.Name(), ErrArgument)
		return
	}
	for _, arg := range args {
		value, ok := arg.(starlark.Int)
		if !ok {
			err = fmt.Errorf("%v: %w", b.Name(), ErrArgument)
			return
		}
		ints = append(ints, value)
	}
	return
}

// wrap reduces an integer to int64 two's complement.
func wrap(value starlark.Int) int64 {
	return int64(new(big.Int).And(value.BigInt(), mask64).Uint64())
}

// Eval returns the value of the tree.
// Division traps return emulator.ErrDivideByZero or emulator.ErrDivideOverflow.
func Eval(tree parser.Node) (value int64, err error) {
	var trap error

	pred := starlark.StringDict{
		"wrap": starlark.NewBuiltin("wrap", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			ints, err := intArgs(b, args, kwargs, 1)
			if err != nil {
				return nil, err
			}
			return starlark.MakeInt64(wrap(ints[0])), nil
		}),
		"tdiv": starlark.NewBuiltin("tdiv", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			ints, err := intArgs(b, args, kwargs, 2)
			if err != nil {
				return nil, err
			}
			lhs, rhs := wrap(ints[0]), wrap(ints[1])
			switch {
			case rhs == 0:
				trap = emulator.ErrDivideByZero
			case lhs == math.MinInt64 && rhs == -1:
				trap = emulator.ErrDivideOverflow
			default:
				return starlark.MakeInt64(lhs / rhs), nil
			}
			return nil, trap
		}),
	}

	thread := starlark.Thread{Name: "evaluate"}
	opts := syntax.FileOptions{}
	prog := "rc = " + Source(tree) + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if trap != nil {
		err = trap
		return
	}
	if err != nil {
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrResultInvalid
		return
	}

	value = wrap(st_int)
	return
}
