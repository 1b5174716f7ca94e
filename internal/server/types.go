package server

// Response represents the standardized JSON response for a buffer operation
// request.
type Response struct {
	// Buffer is the name of the buffer the operation targeted.
	Buffer string `json:"buffer"`
	// Op is the operation that was applied.
	Op string `json:"op"`
	// Digit is the digit produced by pops and reads.
	Digit int `json:"digit"`
	// Value is the rendered decimal value after the operation. It is omitted
	// if an error occurred.
	Value string `json:"value,omitempty"`
	// Length is the number of active digits after the operation.
	Length int `json:"length"`
	// Capacity is the buffer's fixed capacity.
	Capacity int `json:"capacity"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the operation failed.
	Error string `json:"error,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// ParamError represents a query parameter parsing error with HTTP status.
type ParamError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e ParamError) Error() string {
	return e.Message
}
