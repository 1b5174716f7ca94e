package bigbuf

// carryChain simulates adding d at index i without mutating the buffer.
// It returns the index one past the last digit the addition would write.
// A second pass with write=true performs the identical walk for real; the
// two passes read the same values because the first one writes nothing.
func (b *Buffer) carryChain(i int, d uint8, write bool) int {
	idx := i
	carry := int(d)
	for carry != 0 {
		sum := int(b.ReadAt(idx)) + carry
		digit := uint8(sum % Base)
		carry = sum / Base
		if write {
			b.digits[idx] = digit
			if idx >= b.length {
				b.length = idx + 1
			}
		}
		idx++
	}
	return idx
}

// AddAt adds the single digit d to the digit at index i, propagating the
// carry toward higher indices until it is absorbed.
//
// The carry chain is validated before anything is written: a dry pass walks
// the chain read-only, and only if every affected index fits within capacity
// does a second pass commit the digits. A failed AddAt therefore never
// leaves the buffer partially updated.
//
// Parameters:
//   - i: The target index; must be in [0, capacity).
//   - d: The digit value to add; must be in [0, Base).
//
// Returns:
//   - error: An InvalidDigitError if d is not a single digit, an IndexError
//     if i is outside capacity, a CapacityError if the carry chain would run
//     past capacity, nil otherwise. The buffer is unmodified on error.
func (b *Buffer) AddAt(i int, d uint8) error {
	if !checkDigit(d) {
		return &InvalidDigitError{Digit: int(d)}
	}
	if !checkIndex(b, i) {
		return &IndexError{Index: i, Capacity: len(b.digits)}
	}
	if d == 0 {
		return nil
	}
	if end := b.carryChain(i, d, false); end > len(b.digits) {
		return &CapacityError{Capacity: len(b.digits)}
	}
	b.carryChain(i, d, true)
	return nil
}

// Add folds a non-negative machine integer into the buffer, decomposing n
// into base-10 digits least-significant first and applying AddAt at indices
// 0, 1, 2, ... in turn. The work happens on a scratch copy that replaces the
// receiver only on success, so a capacity overflow partway through the
// decomposition leaves the buffer unmodified.
//
// Parameters:
//   - n: The value to add; must be non-negative.
//
// Returns:
//   - error: An UnsupportedError if n is negative, a CapacityError or
//     IndexError if the result does not fit, nil otherwise.
func (b *Buffer) Add(n int64) error {
	if n < 0 {
		return &UnsupportedError{Op: "add", Value: n}
	}
	scratch := b.Clone()
	for idx := 0; n > 0; idx++ {
		if idx >= len(scratch.digits) {
			return &IndexError{Index: idx, Capacity: len(scratch.digits)}
		}
		if err := scratch.AddAt(idx, uint8(n%Base)); err != nil {
			return err
		}
		n /= Base
	}
	*b = *scratch
	return nil
}
