package bigbuf

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse builds a Buffer from a decimal string. The text is scanned from its
// last rune to its first; whitespace and '_' separators are skipped, and
// every other rune must be an ASCII digit, which is pushed at the
// least-significant end. The digit sequence is preserved exactly as written:
// "00012" produces five active digits, not two.
//
// The whole parse is rejected on the first rune that is neither a digit nor
// a separator; no partially-filled buffer is returned.
//
// Parameters:
//   - text: The decimal text, optionally containing whitespace or '_'.
//   - capacity: The fixed capacity of the new buffer; values below 1 fall
//     back to DefaultCapacity.
//
// Returns:
//   - *Buffer: The parsed buffer, nil on error.
//   - error: An InvalidDigitError (wrapped with the rune position) if the
//     text contains a non-digit, a CapacityError if the digits do not fit.
func Parse(text string, capacity int) (*Buffer, error) {
	b := New(capacity)
	runes := []rune(text)
	for i := len(runes) - 1; i >= 0; i-- {
		ch := runes[i]
		if unicode.IsSpace(ch) || ch == '_' {
			continue
		}
		if ch < '0' || ch > '9' {
			return nil, fmt.Errorf("bigbuf: parse %q: unexpected character %q at position %d: %w",
				text, ch, i, &InvalidDigitError{Digit: int(ch)})
		}
		if err := b.PushLow(uint8(ch - '0')); err != nil {
			return nil, fmt.Errorf("bigbuf: parse %q: %w", text, err)
		}
	}
	return b, nil
}

// String renders the buffer most-significant digit first. A zero-length
// buffer represents the value zero and renders as "0".
func (b *Buffer) String() string {
	if b.length == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(b.length)
	for i := b.length - 1; i >= 0; i-- {
		sb.WriteByte('0' + b.digits[i])
	}
	return sb.String()
}
