package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/bigbuf/internal/bigbuf"
	"github.com/agbru/bigbuf/internal/service"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleList returns the names of the registered buffers as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"buffers": s.service.List(r.Context()),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleCreate registers a new named buffer, optionally parsed from a
// decimal string. The 'capacity' parameter defaults to the configured
// per-buffer capacity.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'name' parameter")
		return
	}

	capacity := s.cfg.Capacity
	if capStr := r.URL.Query().Get("capacity"); capStr != "" {
		parsed, err := strconv.Atoi(capStr)
		if err != nil || parsed < 1 {
			s.writeErrorResponse(w, http.StatusBadRequest, "Invalid 'capacity' parameter: must be a positive integer")
			return
		}
		capacity = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	snap, err := s.service.Create(ctx, name, capacity, r.URL.Query().Get("from"))
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	s.writeJSONResponse(w, http.StatusOK, snap)
}

// handleOp applies a single operation to a named buffer.
// It parses the query parameters, executes the operation through the service
// layer, and returns the result in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleOp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name, op, err := parseOpParams(r)
	if err != nil {
		var paramErr ParamError
		if errors.As(err, &paramErr) {
			s.writeErrorResponse(w, paramErr.StatusCode, paramErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Apply(ctx, name, op)
	duration := time.Since(start)

	if err != nil {
		s.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, Response{
		Buffer:   name,
		Op:       op.Name,
		Digit:    result.Digit,
		Value:    result.Value,
		Length:   result.Length,
		Capacity: result.Capacity,
		Duration: duration.String(),
	})
}

// handleFormat returns the rendered value of a named buffer along with its
// length and capacity.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'name' parameter")
		return
	}

	snap, err := s.service.Snapshot(r.Context(), name)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	s.writeJSONResponse(w, http.StatusOK, snap)
}

// handleDrop removes a named buffer from the registry.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Missing 'name' parameter")
		return
	}

	if err := s.service.Drop(r.Context(), name); err != nil {
		s.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{"dropped": name})
}

// parseOpParams extracts and validates the operation parameters from the
// request. The 'd', 'i' and 'n' parameters are optional; operations that
// need them validate their presence semantically (a missing digit parses as
// zero and fails digit validation downstream where required).
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - name: The target buffer name.
//   - op: The populated operation request.
//   - err: A ParamError if validation fails, nil otherwise.
func parseOpParams(r *http.Request) (name string, op service.Op, err error) {
	name = r.URL.Query().Get("name")
	if name == "" {
		return "", service.Op{}, ParamError{
			Message:    "Missing 'name' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	op.Name = r.URL.Query().Get("op")
	if op.Name == "" {
		return "", service.Op{}, ParamError{
			Message:    "Missing 'op' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	if dStr := r.URL.Query().Get("d"); dStr != "" {
		op.Digit, err = strconv.Atoi(dStr)
		if err != nil {
			return "", service.Op{}, ParamError{
				Message:    "Invalid 'd' parameter: must be an integer",
				StatusCode: http.StatusBadRequest,
			}
		}
	}
	if iStr := r.URL.Query().Get("i"); iStr != "" {
		op.Index, err = strconv.Atoi(iStr)
		if err != nil {
			return "", service.Op{}, ParamError{
				Message:    "Invalid 'i' parameter: must be an integer",
				StatusCode: http.StatusBadRequest,
			}
		}
	}
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		op.Value, err = strconv.ParseInt(nStr, 10, 64)
		if err != nil {
			return "", service.Op{}, ParamError{
				Message:    "Invalid 'n' parameter: must be an integer",
				StatusCode: http.StatusBadRequest,
			}
		}
	}

	return name, op, nil
}

// statusForError maps service and buffer error kinds onto HTTP statuses.
// Invalid inputs are client errors; capacity exhaustion and pops from an
// empty buffer are conflicts with the buffer's current state.
func statusForError(err error) int {
	var (
		digitErr       *bigbuf.InvalidDigitError
		indexErr       *bigbuf.IndexError
		capErr         *bigbuf.CapacityError
		unsupportedErr *bigbuf.UnsupportedError
	)
	switch {
	case errors.Is(err, service.ErrUnknownBuffer):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBufferExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrTooManyBuffers):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrUnknownOp):
		return http.StatusBadRequest
	case errors.Is(err, bigbuf.ErrEmpty):
		return http.StatusConflict
	case errors.As(err, &capErr):
		return http.StatusConflict
	case errors.As(err, &digitErr), errors.As(err, &indexErr), errors.As(err, &unsupportedErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
