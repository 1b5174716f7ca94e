// Package bigbuf implements a fixed-capacity, digit-addressable big-integer
// buffer: an arbitrary-precision unsigned integer stored as a little-endian
// sequence of base-10 digits in storage allocated once at construction.
// The package exposes directional manipulation from both the least- and
// most-significant ends, random-access digit reads and writes with automatic
// length growth, and carry-propagating addition at an arbitrary digit
// position. A Buffer is a plain value with no shared state; copies are made
// explicitly with Clone.
package bigbuf

// Base is the numeric base of every stored digit. The buffer is a base-10
// structure by construction; digits are always in [0, Base).
const Base = 10

// DefaultCapacity is the number of digit slots allocated when the caller does
// not request a specific capacity.
const DefaultCapacity = 64

// Buffer is a fixed-capacity little-endian digit buffer.
//
// digits[0] is the units digit. digits[length-1] is the most significant
// active digit. The slice is allocated once by New and never reallocated;
// capacity is its immutable length. The region digits[length:cap] is always
// zero — every operation that shrinks the active length re-zeroes the slots
// it vacates, so a write past the current length needs no intermediate fill.
type Buffer struct {
	digits []uint8
	length int
}

// New creates an empty Buffer with the given capacity. All digit slots are
// zero and the active length is zero. A capacity below 1 falls back to
// DefaultCapacity.
//
// Parameters:
//   - capacity: The fixed maximum number of digits the buffer can hold.
//
// Returns:
//   - *Buffer: A new empty buffer.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer{digits: make([]uint8, capacity)}
}

// Len returns the number of active digits.
func (b *Buffer) Len() int { return b.length }

// Cap returns the fixed capacity chosen at construction.
func (b *Buffer) Cap() int { return len(b.digits) }

// IsEmpty reports whether the buffer holds no active digits.
// An empty buffer represents the value zero.
func (b *Buffer) IsEmpty() bool { return b.length == 0 }

// Clone returns a deep copy of the buffer. The copy shares no storage with
// the original; Buffer is a value type and this is the only sanctioned way
// to duplicate one.
func (b *Buffer) Clone() *Buffer {
	digits := make([]uint8, len(b.digits))
	copy(digits, b.digits)
	return &Buffer{digits: digits, length: b.length}
}

// checkDigit reports whether d is a representable digit value.
func checkDigit(d uint8) bool { return d < Base }

// checkIndex reports whether i addresses a valid slot of this buffer.
func checkIndex(b *Buffer, i int) bool { return 0 <= i && i < len(b.digits) }

// PushLow appends d as the new most-significant digit, growing the active
// length by one. In the printed representation this prepends d to the front
// of the number: 1234 with PushLow(5) becomes 51234.
//
// Parameters:
//   - d: The digit value to append; must be in [0, Base).
//
// Returns:
//   - error: An InvalidDigitError if d is not a digit, a CapacityError if
//     the buffer is full, nil otherwise. The buffer is unmodified on error.
func (b *Buffer) PushLow(d uint8) error {
	if !checkDigit(d) {
		return &InvalidDigitError{Digit: int(d)}
	}
	if b.length == len(b.digits) {
		return &CapacityError{Capacity: len(b.digits)}
	}
	b.digits[b.length] = d
	b.length++
	return nil
}

// PopHigh removes and returns the current most-significant digit, shrinking
// the active length by one: 1234 becomes 234 and PopHigh returns 1.
//
// Returns:
//   - uint8: The removed digit, or 0 if the buffer was empty.
//   - error: ErrEmpty if the buffer held no digits, nil otherwise.
func (b *Buffer) PopHigh() (uint8, error) {
	if b.length == 0 {
		return 0, ErrEmpty
	}
	b.length--
	d := b.digits[b.length]
	b.digits[b.length] = 0 // keep [length, cap) zeroed
	return d, nil
}

// PushHigh inserts d as the new least-significant digit, moving every
// existing digit one position toward higher significance. This is the
// multiply-by-ten-and-add primitive: 1234 with PushHigh(0) becomes 12340.
//
// Parameters:
//   - d: The digit value to insert; must be in [0, Base).
//
// Returns:
//   - error: An InvalidDigitError if d is not a digit, a CapacityError if
//     the shift would exceed capacity, nil otherwise. The buffer is
//     unmodified on error.
func (b *Buffer) PushHigh(d uint8) error {
	if !checkDigit(d) {
		return &InvalidDigitError{Digit: int(d)}
	}
	if err := b.ShiftUp(); err != nil {
		return err
	}
	b.digits[0] = d
	return nil
}

// PopLow removes and returns the current least-significant digit, moving
// every remaining digit one position toward lower significance. This is the
// integer-divide-by-ten primitive: 1234 becomes 123 and PopLow returns 4.
//
// Returns:
//   - uint8: The removed digit, or 0 if the buffer was empty.
//   - error: ErrEmpty if the buffer held no digits, nil otherwise.
func (b *Buffer) PopLow() (uint8, error) {
	if b.length == 0 {
		return 0, ErrEmpty
	}
	d := b.digits[0]
	if err := b.ShiftDown(); err != nil {
		return 0, err
	}
	return d, nil
}

// ShiftUp grows the active length by one and moves every digit one index
// higher, setting index 0 to zero. It multiplies the represented value by
// the base. Iteration runs from the top index downward so no source digit is
// overwritten before it is read.
//
// Returns:
//   - error: A CapacityError if the buffer is already full, nil otherwise.
//     The buffer is unmodified on error.
func (b *Buffer) ShiftUp() error {
	if b.length == len(b.digits) {
		return &CapacityError{Capacity: len(b.digits)}
	}
	b.length++
	for i := b.length - 1; i > 0; i-- {
		b.digits[i] = b.digits[i-1]
	}
	b.digits[0] = 0
	return nil
}

// ShiftDown moves every digit one index lower, discarding the units digit,
// zeroes the vacated top slot, and shrinks the active length by one. It
// integer-divides the represented value by the base. Iteration runs from
// index 0 upward so no source digit is overwritten before it is read.
//
// Returns:
//   - error: ErrEmpty if the buffer held no digits, nil otherwise.
func (b *Buffer) ShiftDown() error {
	if b.length == 0 {
		return ErrEmpty
	}
	for i := 0; i < b.length-1; i++ {
		b.digits[i] = b.digits[i+1]
	}
	b.length--
	b.digits[b.length] = 0 // keep [length, cap) zeroed
	return nil
}

// ReadAt returns the digit at logical index i, where index 0 is the units
// digit. Any index outside [0, capacity) — including negative indices —
// reads as 0: an unrepresented high digit is an implicit leading zero, and
// arithmetic correctness depends on that interpretation, so out-of-range
// reads never fail.
func (b *Buffer) ReadAt(i int) uint8 {
	if !checkIndex(b, i) {
		return 0
	}
	return b.digits[i]
}

// WriteAt stores d at index i. Writing at or past the current length grows
// the active length to i+1; the skipped intermediate digits are already zero
// by the buffer's zero-fill invariant. Capacity never changes.
//
// Parameters:
//   - i: The target index; must be in [0, capacity).
//   - d: The digit value to store; must be in [0, Base).
//
// Returns:
//   - error: An IndexError if i is outside capacity, an InvalidDigitError if
//     d is not a digit, nil otherwise. The buffer is unmodified on error.
func (b *Buffer) WriteAt(i int, d uint8) error {
	if !checkIndex(b, i) {
		return &IndexError{Index: i, Capacity: len(b.digits)}
	}
	if !checkDigit(d) {
		return &InvalidDigitError{Digit: int(d)}
	}
	b.digits[i] = d
	if i >= b.length {
		b.length = i + 1
	}
	return nil
}
