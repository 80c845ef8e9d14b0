package match

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when scoring needs a local byte the local
// profile does not have.
var ErrIndexOutOfRange = errors.New("local profile index out of range")

// IndexError reports the local byte index that was consulted.
// It matches ErrIndexOutOfRange under errors.Is.
type IndexError struct {
	LocalIndex int
	LocalLen   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d, local profile has %d bytes", ErrIndexOutOfRange, e.LocalIndex, e.LocalLen)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
