// Package service implements the host-facing session layer over the digit
// buffer core. It keeps a registry of named buffers and dispatches operation
// requests from the outer surfaces (HTTP server, REPL, one-shot scripts) to
// the corresponding bigbuf methods, adding the cross-cutting concerns the
// core deliberately omits: metrics, structured logging, and tracing.
package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"github.com/agbru/bigbuf/internal/bigbuf"
	apperrors "github.com/agbru/bigbuf/internal/errors"
)

var (
	// ErrUnknownBuffer is returned when a request names a buffer that does
	// not exist in the registry.
	ErrUnknownBuffer = errors.New("service: unknown buffer")
	// ErrBufferExists is returned when creating a buffer under a name that
	// is already taken.
	ErrBufferExists = errors.New("service: buffer already exists")
	// ErrTooManyBuffers is returned when the registry is at its configured
	// buffer limit.
	ErrTooManyBuffers = errors.New("service: buffer limit reached")
	// ErrUnknownOp is returned for an operation name the dispatcher does not
	// recognize.
	ErrUnknownOp = errors.New("service: unknown operation")
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigbuf_operations_total",
			Help: "The total number of buffer operations processed",
		},
		[]string{"op", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bigbuf_operation_duration_seconds",
			Help: "The duration of buffer operations in seconds",
		},
		[]string{"op"},
	)
)

// Op describes one buffer operation request. Name selects the operation;
// the other fields carry its arguments and are ignored by operations that
// do not use them.
type Op struct {
	// Name is the operation: pushlow, pophigh, pushhigh, poplow, shiftup,
	// shiftdown, read, write, addat, add.
	Name string
	// Digit is the digit argument for pushlow, pushhigh, write and addat.
	Digit int
	// Index is the index argument for read, write and addat.
	Index int
	// Value is the integer argument for add.
	Value int64
}

// Result reports the outcome of an applied operation.
type Result struct {
	// Digit is the digit returned by pops and reads; zero otherwise.
	Digit int `json:"digit"`
	// Value is the rendered decimal value after the operation.
	Value string `json:"value"`
	// Length is the number of active digits after the operation.
	Length int `json:"length"`
	// Capacity is the buffer's fixed capacity.
	Capacity int `json:"capacity"`
}

// Snapshot describes the observable state of a buffer.
type Snapshot struct {
	// Name is the buffer's registry name.
	Name string `json:"name"`
	// Value is the rendered decimal value.
	Value string `json:"value"`
	// Length is the number of active digits.
	Length int `json:"length"`
	// Capacity is the buffer's fixed capacity.
	Capacity int `json:"capacity"`
}

// Service defines the interface for named digit-buffer sessions.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Create registers a new buffer under name. If from is non-empty the
	// buffer is parsed from it, otherwise it starts empty.
	Create(ctx context.Context, name string, capacity int, from string) (Snapshot, error)

	// Apply executes a single operation against the named buffer.
	Apply(ctx context.Context, name string, op Op) (Result, error)

	// Snapshot returns the current state of the named buffer.
	Snapshot(ctx context.Context, name string) (Snapshot, error)

	// List returns the registered buffer names in sorted order.
	List(ctx context.Context) []string

	// Drop removes the named buffer from the registry.
	Drop(ctx context.Context, name string) error
}

// BufferService is the default Service implementation: an in-memory registry
// of named buffers. The mutex guards the registry and serializes operations;
// each buffer itself remains the single-threaded value type the core defines.
type BufferService struct {
	mu         sync.Mutex
	buffers    map[string]*bigbuf.Buffer
	maxBuffers int
}

// Ensure BufferService implements Service interface.
var _ Service = (*BufferService)(nil)

// NewBufferService creates a new, empty BufferService.
//
// Parameters:
//   - maxBuffers: The maximum number of buffers the registry will hold
//     (0 for no limit).
func NewBufferService(maxBuffers int) *BufferService {
	return &BufferService{
		buffers:    make(map[string]*bigbuf.Buffer),
		maxBuffers: maxBuffers,
	}
}

// Create registers a new buffer under name.
func (s *BufferService) Create(ctx context.Context, name string, capacity int, from string) (Snapshot, error) {
	tracer := otel.Tracer("bigbuf")
	_, span := tracer.Start(ctx, "Create")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buffers[name]; ok {
		return Snapshot{}, ErrBufferExists
	}
	if s.maxBuffers > 0 && len(s.buffers) >= s.maxBuffers {
		return Snapshot{}, ErrTooManyBuffers
	}

	var (
		b   *bigbuf.Buffer
		err error
	)
	if from != "" {
		b, err = bigbuf.Parse(from, capacity)
		if err != nil {
			return Snapshot{}, apperrors.NewBufferError("parse", err)
		}
	} else {
		b = bigbuf.New(capacity)
	}

	s.buffers[name] = b
	log.Debug().Str("buffer", name).Int("capacity", b.Cap()).Msg("buffer created")
	return snapshotOf(name, b), nil
}

// Apply executes a single operation against the named buffer. Every call is
// counted and timed under the operation name, mirroring the per-algorithm
// instrumentation of the calculation path.
func (s *BufferService) Apply(ctx context.Context, name string, op Op) (result Result, err error) {
	tracer := otel.Tracer("bigbuf")
	_, span := tracer.Start(ctx, "Apply")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		operationsTotal.WithLabelValues(op.Name, status).Inc()
		operationDuration.WithLabelValues(op.Name).Observe(duration)

		log.Debug().
			Str("buffer", name).
			Str("op", op.Name).
			Float64("duration", duration).
			Str("status", status).
			Msg("operation completed")
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buffers[name]
	if !ok {
		return Result{}, ErrUnknownBuffer
	}

	digit, err := dispatch(b, op)
	if err != nil {
		return Result{}, apperrors.NewBufferError(op.Name, err)
	}
	return Result{
		Digit:    digit,
		Value:    b.String(),
		Length:   b.Len(),
		Capacity: b.Cap(),
	}, nil
}

// Snapshot returns the current state of the named buffer.
func (s *BufferService) Snapshot(ctx context.Context, name string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buffers[name]
	if !ok {
		return Snapshot{}, ErrUnknownBuffer
	}
	return snapshotOf(name, b), nil
}

// List returns the registered buffer names in sorted order.
func (s *BufferService) List(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.buffers))
	for name := range s.buffers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Drop removes the named buffer from the registry.
func (s *BufferService) Drop(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buffers[name]; !ok {
		return ErrUnknownBuffer
	}
	delete(s.buffers, name)
	log.Debug().Str("buffer", name).Msg("buffer dropped")
	return nil
}

func snapshotOf(name string, b *bigbuf.Buffer) Snapshot {
	return Snapshot{Name: name, Value: b.String(), Length: b.Len(), Capacity: b.Cap()}
}

// digitArg narrows an operation's digit argument to uint8, reporting values
// outside the byte range as invalid digits rather than letting a cast wrap
// them into the valid range.
func digitArg(d int) (uint8, error) {
	if d < 0 || d > math.MaxUint8 {
		return 0, &bigbuf.InvalidDigitError{Digit: d}
	}
	return uint8(d), nil
}

// dispatch maps an operation name onto the corresponding bigbuf method.
// It returns the digit produced by pops and reads (0 for the others).
func dispatch(b *bigbuf.Buffer, op Op) (int, error) {
	switch op.Name {
	case "pushlow":
		d, err := digitArg(op.Digit)
		if err != nil {
			return 0, err
		}
		return 0, b.PushLow(d)
	case "pophigh":
		d, err := b.PopHigh()
		return int(d), err
	case "pushhigh":
		d, err := digitArg(op.Digit)
		if err != nil {
			return 0, err
		}
		return 0, b.PushHigh(d)
	case "poplow":
		d, err := b.PopLow()
		return int(d), err
	case "shiftup":
		return 0, b.ShiftUp()
	case "shiftdown":
		return 0, b.ShiftDown()
	case "read":
		return int(b.ReadAt(op.Index)), nil
	case "write":
		d, err := digitArg(op.Digit)
		if err != nil {
			return 0, err
		}
		return 0, b.WriteAt(op.Index, d)
	case "addat":
		d, err := digitArg(op.Digit)
		if err != nil {
			return 0, err
		}
		return 0, b.AddAt(op.Index, d)
	case "add":
		return 0, b.Add(op.Value)
	default:
		return 0, ErrUnknownOp
	}
}
