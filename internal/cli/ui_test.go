package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigbuf/internal/service"
	"github.com/agbru/bigbuf/internal/testutil"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"Microseconds", 500 * time.Microsecond, "500µs"},
		{"Milliseconds", 250 * time.Millisecond, "250ms"},
		{"Seconds", 2 * time.Second, "2s"},
		{"Zero", 0, "0µs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tt.duration); got != tt.want {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := formatNumberString(tt.input); got != tt.want {
				t.Errorf("formatNumberString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplaySnapshot(t *testing.T) {
	t.Run("ShortValue", func(t *testing.T) {
		var out bytes.Buffer
		DisplaySnapshot(&out, service.Snapshot{Name: "main", Value: "4096", Length: 4, Capacity: 64}, false)

		output := testutil.StripAnsiCodes(out.String())
		if !strings.Contains(output, "main = 4,096") {
			t.Errorf("expected formatted value, got %s", output)
		}
		if !strings.Contains(output, "Length:   4") || !strings.Contains(output, "Capacity: 64") {
			t.Errorf("expected state lines, got %s", output)
		}
	})

	t.Run("LongValueTruncated", func(t *testing.T) {
		long := strings.Repeat("9", TruncationLimit+1)
		var out bytes.Buffer
		DisplaySnapshot(&out, service.Snapshot{Name: "main", Value: long, Length: len(long), Capacity: 256}, false)

		output := testutil.StripAnsiCodes(out.String())
		if !strings.Contains(output, "(truncated)") {
			t.Errorf("expected truncation marker, got %s", output)
		}
		if strings.Contains(output, long) {
			t.Error("expected value to be truncated")
		}
	})

	t.Run("VerboseShowsFullValue", func(t *testing.T) {
		long := strings.Repeat("9", TruncationLimit+1)
		var out bytes.Buffer
		DisplaySnapshot(&out, service.Snapshot{Name: "main", Value: long, Length: len(long), Capacity: 256}, true)

		if !strings.Contains(testutil.StripAnsiCodes(out.String()), "9,999") {
			t.Error("expected full formatted value in verbose mode")
		}
	})
}
