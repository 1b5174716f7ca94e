package bigbuf

import (
	"errors"
	"fmt"
	"testing"
)

func TestAddAt(t *testing.T) {
	t.Parallel()

	t.Run("SimpleAddition", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "12", DefaultCapacity)
		if err := b.AddAt(0, 1); err != nil {
			t.Fatalf("AddAt(0, 1) failed: %v", err)
		}
		assertState(t, b, "13", 2)
	})

	t.Run("RejectsMultiDigitValue", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "13", DefaultCapacity)
		err := b.AddAt(0, 27)
		var digitErr *InvalidDigitError
		if !errors.As(err, &digitErr) || digitErr.Digit != 27 {
			t.Fatalf("AddAt(0, 27) error = %v, want InvalidDigitError{Digit: 27}", err)
		}
		assertState(t, b, "13", 2)
	})

	t.Run("CarryPropagation", func(t *testing.T) {
		t.Parallel()
		carryCases := []struct {
			text    string
			index   int
			digit   uint8
			want    string
			wantLen int
		}{
			{"99", 0, 1, "100", 3},
			{"19", 0, 1, "20", 2},
			{"994", 1, 1, "1004", 4},
			{"999999", 0, 1, "1000000", 7},
			{"5", 0, 5, "10", 2},
		}
		for _, tc := range carryCases {
			t.Run(fmt.Sprintf("%s+%d@%d", tc.text, tc.digit, tc.index), func(t *testing.T) {
				t.Parallel()
				b := mustParse(t, tc.text, DefaultCapacity)
				if err := b.AddAt(tc.index, tc.digit); err != nil {
					t.Fatalf("AddAt(%d, %d) failed: %v", tc.index, tc.digit, err)
				}
				assertState(t, b, tc.want, tc.wantLen)
				assertZeroTail(t, b)
			})
		}
	})

	t.Run("ZeroIsANoOp", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "42", DefaultCapacity)
		if err := b.AddAt(0, 0); err != nil {
			t.Fatalf("AddAt(0, 0) failed: %v", err)
		}
		assertState(t, b, "42", 2)
	})

	t.Run("LengthGrowsOnlyThroughCarry", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "12", DefaultCapacity)
		for d := uint8(0); d < Base; d++ {
			before := b.Len()
			if err := b.AddAt(0, d); err != nil {
				t.Fatalf("AddAt(0, %d) failed: %v", d, err)
			}
			if b.Len() != before {
				t.Fatalf("AddAt(0, %d) changed length %d -> %d without reaching a new index",
					d, before, b.Len())
			}
		}
	})

	t.Run("TargetsUnusedIndexWithinCapacity", func(t *testing.T) {
		t.Parallel()
		b := New(8)
		if err := b.AddAt(5, 3); err != nil {
			t.Fatalf("AddAt(5, 3) failed: %v", err)
		}
		assertState(t, b, "300000", 6)
	})

	t.Run("RejectsIndexOutsideCapacity", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "12", DefaultCapacity)
		var idxErr *IndexError
		if err := b.AddAt(10000, 9); !errors.As(err, &idxErr) {
			t.Fatalf("AddAt(10000, 9) error = %v, want IndexError", err)
		}
		assertState(t, b, "12", 2)
	})

	// The carry chain is validated before any digit is written: an overflow
	// must leave every digit exactly as it was.
	t.Run("OverflowLeavesBufferUntouched", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "99", 2)
		err := b.AddAt(0, 1)
		var capErr *CapacityError
		if !errors.As(err, &capErr) {
			t.Fatalf("AddAt overflow error = %v, want CapacityError", err)
		}
		assertState(t, b, "99", 2)
	})
}

func TestAdd(t *testing.T) {
	t.Parallel()

	t.Run("CumulativeAddition", func(t *testing.T) {
		t.Parallel()
		b := New(DefaultCapacity)
		if err := b.Add(1234); err != nil {
			t.Fatalf("Add(1234) failed: %v", err)
		}
		assertState(t, b, "1234", 4)
		if err := b.Add(2); err != nil {
			t.Fatalf("Add(2) failed: %v", err)
		}
		assertState(t, b, "1236", 4)
	})

	t.Run("ZeroOnEmptyBuffer", func(t *testing.T) {
		t.Parallel()
		b := New(DefaultCapacity)
		if err := b.Add(0); err != nil {
			t.Fatalf("Add(0) failed: %v", err)
		}
		assertState(t, b, "0", 0)
	})

	t.Run("RejectsNegativeValues", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "7", DefaultCapacity)
		err := b.Add(-1)
		var unsupported *UnsupportedError
		if !errors.As(err, &unsupported) {
			t.Fatalf("Add(-1) error = %v, want UnsupportedError", err)
		}
		if unsupported.Op != "add" || unsupported.Value != -1 {
			t.Errorf("UnsupportedError = %+v, want Op \"add\", Value -1", unsupported)
		}
		assertState(t, b, "7", 1)
	})

	t.Run("OverflowLeavesBufferUntouched", func(t *testing.T) {
		t.Parallel()
		b := mustParse(t, "9", 1)
		err := b.Add(1)
		var capErr *CapacityError
		if !errors.As(err, &capErr) {
			t.Fatalf("Add overflow error = %v, want CapacityError", err)
		}
		assertState(t, b, "9", 1)
	})

	t.Run("LargeValue", func(t *testing.T) {
		t.Parallel()
		b := New(DefaultCapacity)
		if err := b.Add(9_223_372_036_854_775_807); err != nil {
			t.Fatalf("Add(max int64) failed: %v", err)
		}
		assertState(t, b, "9223372036854775807", 19)
	})
}
