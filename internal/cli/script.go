package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigbuf/internal/service"
)

// RunScript executes a semicolon-separated sequence of buffer commands
// against the named buffer and returns its final state. It powers the
// one-shot -e mode: the same verbs the REPL accepts, run without a session.
//
// Commands that produce a digit (poplow, pophigh, read) print it to out
// unless quiet mode suppresses intermediate output.
//
// Parameters:
//   - ctx: The context for cancellation and timeouts.
//   - svc: The buffer service to run against.
//   - buffer: The name of the target buffer.
//   - script: The command sequence, e.g. "pushlow 5; add 27; shiftup".
//   - out: The writer for intermediate digit output.
//   - quiet: Suppresses intermediate digit output when true.
//
// Returns:
//   - service.Snapshot: The buffer state after the last command.
//   - error: The first command error encountered; execution stops there.
func RunScript(ctx context.Context, svc service.Service, buffer, script string, out io.Writer, quiet bool) (service.Snapshot, error) {
	for _, command := range strings.Split(script, ";") {
		command = strings.TrimSpace(command)
		if command == "" {
			continue
		}

		parts := strings.Fields(command)
		verb := strings.ToLower(parts[0])
		args := parts[1:]

		// show is a no-op between operations; the final state is always
		// returned and rendered by the caller.
		if verb == "show" {
			continue
		}

		op, err := ParseOpCommand(verb, args)
		if err != nil {
			return service.Snapshot{}, fmt.Errorf("command %q: %w", command, err)
		}

		result, err := svc.Apply(ctx, buffer, op)
		if err != nil {
			return service.Snapshot{}, fmt.Errorf("command %q: %w", command, err)
		}

		if !quiet {
			switch verb {
			case "poplow", "pophigh", "read":
				fmt.Fprintf(out, "%s: %d\n", verb, result.Digit)
			}
		}
	}

	return svc.Snapshot(ctx, buffer)
}
