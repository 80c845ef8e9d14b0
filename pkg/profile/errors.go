package profile

import (
	"errors"
	"fmt"
)

// ErrMalformedHex is returned when a payload string has odd length or
// contains a character outside [0-9a-fA-F].
var ErrMalformedHex = errors.New("malformed hex payload")

// HexError describes where a hex payload string failed to decode.
// It matches ErrMalformedHex under errors.Is.
type HexError struct {
	// Offset is the character index of the offending digit, or the string
	// length when the length is odd.
	Offset int

	// Reason is a short description of the failure.
	Reason string
}

func (e *HexError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d", ErrMalformedHex, e.Reason, e.Offset)
}

// Is reports whether target is ErrMalformedHex.
func (e *HexError) Is(target error) bool {
	return target == ErrMalformedHex
}
