package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigbuf/internal/service"
	"github.com/agbru/bigbuf/internal/testutil"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()

	snap := service.Snapshot{Name: "main", Value: "51234", Length: 5, Capacity: 64}

	t.Run("NoFileConfigured", func(t *testing.T) {
		t.Parallel()
		if err := WriteResultToFile(snap, time.Second, OutputConfig{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("WritesHeaderAndValue", func(t *testing.T) {
		t.Parallel()
		outFile := filepath.Join(t.TempDir(), "result.txt")

		err := WriteResultToFile(snap, 125*time.Millisecond, OutputConfig{OutputFile: outFile})
		if err != nil {
			t.Fatalf("WriteResultToFile failed: %v", err)
		}

		data, err := os.ReadFile(outFile)
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}
		content := string(data)
		for _, want := range []string{"# BigBuf Result", "# Buffer: main", "# Length: 5", "# Capacity: 64", "51234"} {
			if !strings.Contains(content, want) {
				t.Errorf("expected %q in file, got:\n%s", want, content)
			}
		}
	})

	t.Run("CreatesDirectory", func(t *testing.T) {
		t.Parallel()
		outFile := filepath.Join(t.TempDir(), "nested", "dir", "result.txt")

		if err := WriteResultToFile(snap, time.Second, OutputConfig{OutputFile: outFile}); err != nil {
			t.Fatalf("WriteResultToFile failed: %v", err)
		}
		if _, err := os.Stat(outFile); err != nil {
			t.Errorf("output file not created: %v", err)
		}
	})
}

func TestDisplayResultWithConfig(t *testing.T) {
	snap := service.Snapshot{Name: "main", Value: "1236", Length: 4, Capacity: 64}

	t.Run("QuietPrintsValueOnly", func(t *testing.T) {
		var out bytes.Buffer
		err := DisplayResultWithConfig(&out, snap, time.Second, OutputConfig{Quiet: true})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig failed: %v", err)
		}
		if got := out.String(); got != "1236\n" {
			t.Errorf("quiet output = %q, want %q", got, "1236\n")
		}
	})

	t.Run("StandardShowsState", func(t *testing.T) {
		var out bytes.Buffer
		err := DisplayResultWithConfig(&out, snap, 3*time.Millisecond, OutputConfig{})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig failed: %v", err)
		}
		output := testutil.StripAnsiCodes(out.String())
		for _, want := range []string{"main = 1,236", "Length:   4", "Capacity: 64", "Time:"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got:\n%s", want, output)
			}
		}
	})

	t.Run("SavesAndConfirms", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "result.txt")
		var out bytes.Buffer

		err := DisplayResultWithConfig(&out, snap, time.Second, OutputConfig{OutputFile: outFile})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig failed: %v", err)
		}
		if !strings.Contains(testutil.StripAnsiCodes(out.String()), "Result saved to") {
			t.Error("expected save confirmation in output")
		}
		if _, err := os.Stat(outFile); err != nil {
			t.Errorf("output file not created: %v", err)
		}
	})
}
