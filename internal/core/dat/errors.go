package dat

import (
	"fmt"

	perr "acdat/internal/platform/errors"
)

var (
	// ErrEmptyPatternSet is returned when construction is given no usable patterns
	ErrEmptyPatternSet = perr.New(perr.ErrorCodeInvalidArgument, "dat: empty pattern set")

	// ErrUnsupportedCharacter is returned when a pattern (or a strictly validated text)
	// holds a byte outside the automaton alphabet
	ErrUnsupportedCharacter = perr.New(perr.ErrorCodeInvalidArgument, "dat: unsupported character")
)

// unsupported wraps ErrUnsupportedCharacter with position details and a field label
func unsupported(field string, s string, at int, alpha Alphabet) error {
	err := perr.Wrapf(ErrUnsupportedCharacter, perr.ErrorCodeInvalidArgument,
		"%s: byte %s at offset %d of %q is outside the %s alphabet", field, quoteByte(s[at]), at, s, alpha.Name())
	return perr.WithField(err, field)
}

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return fmt.Sprintf("%q", rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
