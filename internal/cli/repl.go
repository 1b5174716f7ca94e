package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigbuf/internal/service"
)

// WorkingBuffer is the name of the buffer the REPL and the script runner
// operate on by default.
const WorkingBuffer = "main"

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Capacity is the fixed digit capacity used when creating buffers.
	Capacity int
	// From is the initial decimal text the working buffer is parsed from.
	From string
	// Timeout is the maximum duration for each operation.
	Timeout time.Duration
	// Verbose displays full values regardless of their size.
	Verbose bool
}

// REPL represents an interactive digit-buffer session. All operations go
// through the service layer so that the REPL observes the same semantics,
// metrics and logging as the HTTP surface.
type REPL struct {
	config  REPLConfig
	svc     service.Service
	current string
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance bound to the given service.
//
// Parameters:
//   - svc: The buffer service the session operates on.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(svc service.Service, config REPLConfig) *REPL {
	return &REPL{
		config:  config,
		svc:     svc,
		current: WorkingBuffer,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It creates the working buffer, then continuously reads user input and
// processes commands until the user exits or EOF is reached.
func (r *REPL) Start() {
	if err := r.ensureWorkingBuffer(); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprintf(r.out, "%s%s> %s", ColorGreen(), r.current, ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// ensureWorkingBuffer creates the default working buffer if it does not
// exist yet, parsing it from the configured initial value.
func (r *REPL) ensureWorkingBuffer() error {
	ctx, cancel := r.opContext()
	defer cancel()

	_, err := r.svc.Create(ctx, WorkingBuffer, r.config.Capacity, r.config.From)
	if errors.Is(err, service.ErrBufferExists) {
		return nil
	}
	return err
}

// opContext returns a context bounded by the configured operation timeout.
func (r *REPL) opContext() (context.Context, context.CancelFunc) {
	if r.config.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), r.config.Timeout)
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorBlue(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sBigBuf - Interactive Digit Buffer%s                    %s║%s\n",
		ColorBlue(), ColorReset(), ColorBold(), ColorReset(), ColorBlue(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorBlue(), ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sBuffer operations:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %spushlow <d>%s       - Append digit d as the new leading digit\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %spushhigh <d>%s      - Insert digit d as the new units digit (shifts up)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %spoplow%s            - Remove and print the units digit\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %spophigh%s           - Remove and print the leading digit\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sshiftup%s           - Multiply by ten (shift digits up)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sshiftdown%s         - Divide by ten (shift digits down)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sread <i>%s          - Print the digit at index i\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %swrite <i> <d>%s     - Set the digit at index i to d\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %saddat <i> <d>%s     - Add digit d at index i with carry\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sadd <n>%s           - Add the non-negative integer n\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "%sSession commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %snew <name> [cap]%s  - Create a buffer and switch to it\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sparse <text>%s      - Replace the current buffer with a parsed value\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %suse <name>%s        - Switch to an existing buffer\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sdrop <name>%s       - Remove a buffer\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sshow%s              - Display the current buffer\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slen%s / %scap%s         - Print the active length / fixed capacity\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slist%s              - List buffers\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s              - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s       - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch {
	case IsOpCommand(cmd):
		r.cmdOp(cmd, args)
	case cmd == "new":
		r.cmdNew(args)
	case cmd == "parse":
		r.cmdParse(args)
	case cmd == "use":
		r.cmdUse(args)
	case cmd == "drop":
		r.cmdDrop(args)
	case cmd == "show", cmd == "s":
		r.cmdShow()
	case cmd == "len":
		r.cmdLen()
	case cmd == "cap":
		r.cmdCap()
	case cmd == "list", cmd == "ls":
		r.cmdList()
	case cmd == "help", cmd == "h", cmd == "?":
		r.printHelp()
	case cmd == "exit", cmd == "quit", cmd == "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
	}

	return true
}

// cmdOp executes a buffer operation against the current buffer.
func (r *REPL) cmdOp(verb string, args []string) {
	op, err := ParseOpCommand(verb, args)
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ColorRed(), err, ColorReset())
		return
	}

	ctx, cancel := r.opContext()
	defer cancel()

	result, err := r.svc.Apply(ctx, r.current, op)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	switch verb {
	case "poplow", "pophigh", "read":
		fmt.Fprintf(r.out, "digit: %s%d%s  value: %s%s%s (len %d)\n",
			ColorBlue(), result.Digit, ColorReset(),
			ColorGreen(), result.Value, ColorReset(), result.Length)
	default:
		fmt.Fprintf(r.out, "value: %s%s%s (len %d/%d)\n",
			ColorGreen(), result.Value, ColorReset(), result.Length, result.Capacity)
	}
}

// cmdNew creates a new buffer and makes it current.
func (r *REPL) cmdNew(args []string) {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintf(r.out, "%sUsage: new <name> [capacity]%s\n", ColorRed(), ColorReset())
		return
	}

	capacity := r.config.Capacity
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed < 1 {
			fmt.Fprintf(r.out, "%sInvalid capacity: %s%s\n", ColorRed(), args[1], ColorReset())
			return
		}
		capacity = parsed
	}

	ctx, cancel := r.opContext()
	defer cancel()

	snap, err := r.svc.Create(ctx, args[0], capacity, "")
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	r.current = snap.Name
	fmt.Fprintf(r.out, "Created buffer %s%s%s (capacity %d)\n", ColorYellow(), snap.Name, ColorReset(), snap.Capacity)
}

// cmdParse replaces the current buffer with one parsed from decimal text,
// keeping the buffer's own capacity. The text is validated in a scratch
// buffer first, and the current buffer is only dropped once a slot for its
// replacement is guaranteed, so a failed parse leaves the session untouched.
func (r *REPL) cmdParse(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: parse <text>%s\n", ColorRed(), ColorReset())
		return
	}

	ctx, cancel := r.opContext()
	defer cancel()

	cur, err := r.svc.Snapshot(ctx, r.current)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	scratch := r.current + "~parse"
	if _, err := r.svc.Create(ctx, scratch, cur.Capacity, args[0]); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	defer func() { _ = r.svc.Drop(ctx, scratch) }()

	// Dropping the current buffer frees the registry slot its replacement
	// takes, so this re-create cannot fail on the buffer limit.
	_ = r.svc.Drop(ctx, r.current)
	snap, err := r.svc.Create(ctx, r.current, cur.Capacity, args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	fmt.Fprintf(r.out, "value: %s%s%s (len %d/%d)\n",
		ColorGreen(), snap.Value, ColorReset(), snap.Length, snap.Capacity)
}

// cmdUse switches the session to an existing buffer.
func (r *REPL) cmdUse(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: use <name>%s\n", ColorRed(), ColorReset())
		return
	}

	ctx, cancel := r.opContext()
	defer cancel()

	snap, err := r.svc.Snapshot(ctx, args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	r.current = snap.Name
	fmt.Fprintf(r.out, "Switched to buffer %s%s%s\n", ColorYellow(), snap.Name, ColorReset())
}

// cmdDrop removes a buffer from the session.
func (r *REPL) cmdDrop(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: drop <name>%s\n", ColorRed(), ColorReset())
		return
	}

	ctx, cancel := r.opContext()
	defer cancel()

	if err := r.svc.Drop(ctx, args[0]); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Dropped buffer %s%s%s\n", ColorYellow(), args[0], ColorReset())
}

// cmdShow displays the current buffer state.
func (r *REPL) cmdShow() {
	ctx, cancel := r.opContext()
	defer cancel()

	snap, err := r.svc.Snapshot(ctx, r.current)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	DisplaySnapshot(r.out, snap, r.config.Verbose)
}

// cmdLen prints the active length of the current buffer.
func (r *REPL) cmdLen() {
	ctx, cancel := r.opContext()
	defer cancel()

	snap, err := r.svc.Snapshot(ctx, r.current)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%d\n", snap.Length)
}

// cmdCap prints the fixed capacity of the current buffer.
func (r *REPL) cmdCap() {
	ctx, cancel := r.opContext()
	defer cancel()

	snap, err := r.svc.Snapshot(ctx, r.current)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%d\n", snap.Capacity)
}

// cmdList lists the registered buffers.
func (r *REPL) cmdList() {
	ctx, cancel := r.opContext()
	defer cancel()

	fmt.Fprintf(r.out, "\n%sBuffers:%s\n", ColorBold(), ColorReset())
	for _, name := range r.svc.List(ctx) {
		marker := "  "
		if name == r.current {
			marker = ColorGreen() + "► " + ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ColorYellow(), name, ColorReset())
	}
	fmt.Fprintln(r.out)
}
