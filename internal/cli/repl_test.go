package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigbuf/internal/service"
	"github.com/agbru/bigbuf/internal/testutil"
)

func newTestREPL(t *testing.T, from string) (*REPL, *bytes.Buffer) {
	t.Helper()
	repl := NewREPL(service.NewBufferService(0), REPLConfig{
		Capacity: 8,
		From:     from,
		Timeout:  time.Second,
	})
	var out bytes.Buffer
	repl.SetOutput(&out)
	if err := repl.ensureWorkingBuffer(); err != nil {
		t.Fatalf("Failed to create working buffer: %v", err)
	}
	return repl, &out
}

func TestNewREPL(t *testing.T) {
	t.Parallel()
	repl := NewREPL(service.NewBufferService(0), REPLConfig{Capacity: 8})
	if repl == nil {
		t.Fatal("NewREPL returned nil")
	}
	if repl.current != WorkingBuffer {
		t.Errorf("Expected current buffer %q, got %q", WorkingBuffer, repl.current)
	}
}

func TestProcessCommand(t *testing.T) {
	repl, out := newTestREPL(t, "12")

	// Strip colors for testing
	strip := testutil.StripAnsiCodes

	t.Run("pushlow prepends high digit", func(t *testing.T) {
		repl.processCommand("pushlow 7")
		output := strip(out.String())
		if !strings.Contains(output, "value: 712") {
			t.Errorf("Expected 'value: 712', got %s", output)
		}
		out.Reset()
	})

	t.Run("pophigh prints digit", func(t *testing.T) {
		repl.processCommand("pophigh")
		output := strip(out.String())
		if !strings.Contains(output, "digit: 7") {
			t.Errorf("Expected 'digit: 7', got %s", output)
		}
		if !strings.Contains(output, "value: 12") {
			t.Errorf("Expected 'value: 12', got %s", output)
		}
		out.Reset()
	})

	t.Run("add with carry", func(t *testing.T) {
		repl.processCommand("add 88")
		output := strip(out.String())
		if !strings.Contains(output, "value: 100") {
			t.Errorf("Expected 'value: 100', got %s", output)
		}
		out.Reset()
	})

	t.Run("read", func(t *testing.T) {
		repl.processCommand("read 2")
		output := strip(out.String())
		if !strings.Contains(output, "digit: 1") {
			t.Errorf("Expected 'digit: 1', got %s", output)
		}
		out.Reset()
	})

	t.Run("invalid digit reported", func(t *testing.T) {
		repl.processCommand("pushlow 27")
		output := strip(out.String())
		if !strings.Contains(output, "invalid digit") {
			t.Errorf("Expected invalid digit error, got %s", output)
		}
		out.Reset()
	})

	t.Run("show", func(t *testing.T) {
		repl.processCommand("show")
		output := strip(out.String())
		if !strings.Contains(output, "main = 100") {
			t.Errorf("Expected 'main = 100', got %s", output)
		}
		if !strings.Contains(output, "Capacity: 8") {
			t.Errorf("Expected capacity line, got %s", output)
		}
		out.Reset()
	})

	t.Run("len and cap", func(t *testing.T) {
		repl.processCommand("len")
		repl.processCommand("cap")
		output := strip(out.String())
		if !strings.Contains(output, "3\n") || !strings.Contains(output, "8\n") {
			t.Errorf("Expected len 3 and cap 8, got %s", output)
		}
		out.Reset()
	})

	t.Run("new and use", func(t *testing.T) {
		repl.processCommand("new scratch 4")
		if repl.current != "scratch" {
			t.Errorf("Expected current=scratch, got %s", repl.current)
		}
		repl.processCommand("use main")
		if repl.current != "main" {
			t.Errorf("Expected current=main, got %s", repl.current)
		}
		out.Reset()
	})

	t.Run("parse", func(t *testing.T) {
		repl.processCommand("parse 4_096")
		output := strip(out.String())
		if !strings.Contains(output, "value: 4096") {
			t.Errorf("Expected 'value: 4096', got %s", output)
		}
		out.Reset()
	})

	t.Run("list", func(t *testing.T) {
		repl.processCommand("list")
		output := strip(out.String())
		if !strings.Contains(output, "main") || !strings.Contains(output, "scratch") {
			t.Errorf("Expected buffer listing, got %s", output)
		}
		out.Reset()
	})

	t.Run("drop", func(t *testing.T) {
		repl.processCommand("drop scratch")
		output := strip(out.String())
		if !strings.Contains(output, "Dropped buffer scratch") {
			t.Errorf("Expected drop confirmation, got %s", output)
		}
		out.Reset()
	})

	t.Run("help", func(t *testing.T) {
		repl.processCommand("help")
		if !strings.Contains(out.String(), "Buffer operations") {
			t.Error("Expected help output")
		}
		out.Reset()
	})

	t.Run("unknown command", func(t *testing.T) {
		repl.processCommand("frobnicate")
		if !strings.Contains(strip(out.String()), "Unknown command: frobnicate") {
			t.Error("Expected unknown command message")
		}
		out.Reset()
	})

	t.Run("exit returns false", func(t *testing.T) {
		if repl.processCommand("exit") {
			t.Error("Expected exit to stop the REPL")
		}
		out.Reset()
	})
}

// TestParseCommand covers the replace-by-parse path: the buffer keeps its
// own capacity, a failed parse leaves it untouched, and the validation
// buffer never outlives the command.
func TestParseCommand(t *testing.T) {
	repl, out := newTestREPL(t, "12")
	strip := testutil.StripAnsiCodes

	t.Run("preserves buffer capacity", func(t *testing.T) {
		repl.processCommand("new b 3")
		out.Reset()

		repl.processCommand("parse 12")
		repl.processCommand("cap")
		output := strip(out.String())
		if !strings.Contains(output, "value: 12") {
			t.Errorf("Expected 'value: 12', got %s", output)
		}
		if !strings.Contains(output, "3\n") {
			t.Errorf("Expected capacity 3 after parse, got %s", output)
		}
		out.Reset()
	})

	t.Run("overflow reports capacity error", func(t *testing.T) {
		repl.processCommand("parse 4096")
		output := strip(out.String())
		if !strings.Contains(output, "capacity") {
			t.Errorf("Expected capacity error for a 4-digit value, got %s", output)
		}
		out.Reset()
	})

	t.Run("failed parse leaves buffer intact", func(t *testing.T) {
		repl.processCommand("parse 9x9")
		out.Reset()

		repl.processCommand("show")
		output := strip(out.String())
		if !strings.Contains(output, "b = 12") {
			t.Errorf("Expected buffer unchanged after failed parse, got %s", output)
		}
		out.Reset()
	})

	t.Run("no scratch buffer left behind", func(t *testing.T) {
		repl.processCommand("list")
		if strings.Contains(out.String(), "~") {
			t.Errorf("Expected no validation buffer in listing, got %s", out.String())
		}
		out.Reset()
	})
}

// TestStartSession drives a full session through the input reader and
// verifies the REPL terminates on quit.
func TestStartSession(t *testing.T) {
	repl := NewREPL(service.NewBufferService(0), REPLConfig{
		Capacity: 8,
		Timeout:  time.Second,
	})

	var out bytes.Buffer
	repl.SetInput(strings.NewReader("pushlow 5\nadd 27\nshow\nquit\n"))
	repl.SetOutput(&out)

	repl.Start()

	output := testutil.StripAnsiCodes(out.String())
	if !strings.Contains(output, "value: 32") {
		t.Errorf("Expected 'value: 32' after add, got %s", output)
	}
	if !strings.Contains(output, "Goodbye!") {
		t.Error("Expected goodbye message on quit")
	}
}

// TestStartSessionEOF verifies the REPL exits cleanly on EOF.
func TestStartSessionEOF(t *testing.T) {
	repl := NewREPL(service.NewBufferService(0), REPLConfig{
		Capacity: 8,
		Timeout:  time.Second,
	})

	var out bytes.Buffer
	repl.SetInput(strings.NewReader("pushlow 1\n"))
	repl.SetOutput(&out)

	repl.Start()

	if !strings.Contains(out.String(), "Goodbye!") {
		t.Error("Expected goodbye message on EOF")
	}
}

// TestStartInvalidInitialValue verifies the session refuses to start when
// the initial value cannot be parsed.
func TestStartInvalidInitialValue(t *testing.T) {
	repl := NewREPL(service.NewBufferService(0), REPLConfig{
		Capacity: 8,
		From:     "12x4",
		Timeout:  time.Second,
	})

	var out bytes.Buffer
	repl.SetInput(strings.NewReader("quit\n"))
	repl.SetOutput(&out)

	repl.Start()

	output := testutil.StripAnsiCodes(out.String())
	if !strings.Contains(output, "invalid digit") {
		t.Errorf("Expected parse error, got %s", output)
	}
}
