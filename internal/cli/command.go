package cli

import (
	"fmt"
	"strconv"

	"github.com/agbru/bigbuf/internal/service"
)

// Command argument shapes. The REPL and the script runner share the same
// grammar: an operation verb followed by its positional integer arguments.
const (
	argsNone       = ""
	argsDigit      = "<digit>"
	argsIndex      = "<index>"
	argsIndexDigit = "<index> <digit>"
	argsValue      = "<value>"
)

// opArgs maps each operation verb to the arguments it expects. Verbs absent
// from this map are not operations (show, len, cap, help, ...).
var opArgs = map[string]string{
	"pushlow":   argsDigit,
	"pushhigh":  argsDigit,
	"poplow":    argsNone,
	"pophigh":   argsNone,
	"shiftup":   argsNone,
	"shiftdown": argsNone,
	"read":      argsIndex,
	"write":     argsIndexDigit,
	"addat":     argsIndexDigit,
	"add":       argsValue,
}

// IsOpCommand reports whether verb names a buffer operation.
func IsOpCommand(verb string) bool {
	_, ok := opArgs[verb]
	return ok
}

// ParseOpCommand converts an operation verb and its positional arguments into
// an operation request. It validates argument count and integer syntax;
// semantic validation (digit range, index bounds) is left to the buffer.
//
// Parameters:
//   - verb: The operation name (e.g. "pushlow", "addat").
//   - args: The positional arguments following the verb.
//
// Returns:
//   - service.Op: The populated operation request.
//   - error: An error describing the expected usage if the arguments are
//     malformed.
func ParseOpCommand(verb string, args []string) (service.Op, error) {
	shape, ok := opArgs[verb]
	if !ok {
		return service.Op{}, fmt.Errorf("unknown command: %s", verb)
	}

	usage := func() error {
		if shape == argsNone {
			return fmt.Errorf("usage: %s", verb)
		}
		return fmt.Errorf("usage: %s %s", verb, shape)
	}

	op := service.Op{Name: verb}
	switch shape {
	case argsNone:
		if len(args) != 0 {
			return service.Op{}, usage()
		}
	case argsDigit:
		if len(args) != 1 {
			return service.Op{}, usage()
		}
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return service.Op{}, fmt.Errorf("invalid digit: %s", args[0])
		}
		op.Digit = d
	case argsIndex:
		if len(args) != 1 {
			return service.Op{}, usage()
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return service.Op{}, fmt.Errorf("invalid index: %s", args[0])
		}
		op.Index = i
	case argsIndexDigit:
		if len(args) != 2 {
			return service.Op{}, usage()
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return service.Op{}, fmt.Errorf("invalid index: %s", args[0])
		}
		d, err := strconv.Atoi(args[1])
		if err != nil {
			return service.Op{}, fmt.Errorf("invalid digit: %s", args[1])
		}
		op.Index = i
		op.Digit = d
	case argsValue:
		if len(args) != 1 {
			return service.Op{}, usage()
		}
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return service.Op{}, fmt.Errorf("invalid value: %s", args[0])
		}
		op.Value = n
	}
	return op, nil
}
