package transport

import "encoding/json"

// The auth endpoints have fixed wire shapes consumed by the dashboard
// client; they are deliberately minimal and not wrapped in Envelope.

// OKResponse acknowledges a state-changing auth call.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse carries a single generic error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MeResponse answers the "who am I" probe. Username is only present
// when Authenticated is true.
type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// Envelope is the response wrapper for non-auth endpoints such as health.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
