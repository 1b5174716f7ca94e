package bigbuf

import (
	"errors"
	"fmt"
)

// ErrEmpty is reported by pop and shift-down operations on a buffer that
// holds no active digits. The operations that return a digit alongside it
// return 0, the value an empty buffer represents.
var ErrEmpty = errors.New("bigbuf: buffer is empty")

// InvalidDigitError reports a supplied digit value outside [0, Base).
// Digit carries the offending value; for parse failures it is the rune that
// could not be converted.
type InvalidDigitError struct {
	// Digit is the offending value.
	Digit int
}

// Error returns the error message for an InvalidDigitError.
func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("bigbuf: invalid digit value %d (must be in [0,%d))", e.Digit, Base)
}

// IndexError reports an index outside the buffer's [0, capacity) range for
// an operation that requires a valid slot.
type IndexError struct {
	// Index is the offending index.
	Index int
	// Capacity is the buffer's fixed capacity.
	Capacity int
}

// Error returns the error message for an IndexError.
func (e *IndexError) Error() string {
	return fmt.Sprintf("bigbuf: index %d out of range for capacity %d", e.Index, e.Capacity)
}

// CapacityError reports an operation that would need to grow the active
// length beyond the buffer's fixed capacity.
type CapacityError struct {
	// Capacity is the buffer's fixed capacity.
	Capacity int
}

// Error returns the error message for a CapacityError.
func (e *CapacityError) Error() string {
	return fmt.Sprintf("bigbuf: capacity %d exceeded", e.Capacity)
}

// UnsupportedError reports an input the buffer does not model, such as a
// negative value passed to Add.
type UnsupportedError struct {
	// Op is the operation that rejected the input.
	Op string
	// Value is the offending input.
	Value int64
}

// Error returns the error message for an UnsupportedError.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("bigbuf: %s does not support value %d", e.Op, e.Value)
}
