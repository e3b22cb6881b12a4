package codegen

import "github.com/ezrec/arithcc/translate"

var (
	ErrDialectUnknown = translate.Error("unknown assembler dialect")
	ErrLabelInvalid   = translate.Error("invalid function label")
)

// Dialect is an assembler syntax.
type Dialect int

//go:generate go tool stringer -linecomment -type=Dialect
const (
	DIALECT_INTEL = Dialect(0) // intel
	DIALECT_ATT   = Dialect(1) // att
)

// ParseDialect returns the dialect with the given name.
func ParseDialect(name string) (dialect Dialect, err error) {
	switch name {
	case DIALECT_INTEL.String():
		dialect = DIALECT_INTEL
	case DIALECT_ATT.String():
		dialect = DIALECT_ATT
	default:
		err = ErrDialectUnknown
	}
	return
}

// ValidLabel returns nil if label is usable as an assembler symbol.
func ValidLabel(label string) error {
	if len(label) == 0 {
		return ErrLabelInvalid
	}
	for n, c := range []byte(label) {
		switch {
		case c == '_' || c == '.' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && n > 0:
		default:
			return ErrLabelInvalid
		}
	}
	return nil
}
