package compiler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Positioned is an error located at a byte offset of the source.
type Positioned interface {
	error
	Position() int
}

// messager is an error that can describe itself without its location.
type messager interface {
	Message() string
}

var (
	colorCaret   = lipgloss.Color("#EF4444")
	colorMessage = lipgloss.Color("#F59E0B")
)

// Report writes a diagnostic for err to w.
//
// Errors with a source position echo the input and point a caret at the
// offending byte:
//
//	1+x
//	  ^ invalid token
func Report(w io.Writer, input string, err error) {
	r := lipgloss.NewRenderer(w)
	caretStyle := r.NewStyle().Foreground(colorCaret).Bold(true)
	messageStyle := r.NewStyle().Foreground(colorMessage)

	var pos Positioned
	if !errors.As(err, &pos) {
		fmt.Fprintln(w, messageStyle.Render(err.Error()))
		return
	}

	msg := err.Error()
	var m messager
	if errors.As(err, &m) {
		msg = m.Message()
	}

	fmt.Fprintln(w, input)
	fmt.Fprintf(w, "%v%v %v\n", indent(input, pos.Position()), caretStyle.Render("^"), messageStyle.Render(msg))
}

// indent returns blanks covering input up to offset, keeping tabs so the
// caret lines up in a terminal.
func indent(input string, offset int) string {
	var sb strings.Builder
	for n := range offset {
		if n < len(input) && input[n] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
