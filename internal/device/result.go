package device

import (
	"encoding/json"
	"errors"
	"fmt"

	"thermostat_panel/internal/models"
)

// ResultKind tells how a response body was classified.
type ResultKind int

const (
	// KindErr means the exchange failed; Result.Err is set.
	KindErr ResultKind = iota
	// KindJSON means a 2xx reply whose body is valid JSON.
	KindJSON
	// KindText means a 2xx reply whose body is empty or not JSON.
	KindText
)

func (k ResultKind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	default:
		return "error"
	}
}

// Result is the decoded outcome of one device request.
type Result struct {
	Kind   ResultKind
	Status int
	Body   []byte
	Err    error
}

func errResult(status int, body []byte, err error) Result {
	return Result{Kind: KindErr, Status: status, Body: body, Err: err}
}

func okResult(status int, body []byte) Result {
	if len(body) > 0 && json.Valid(body) {
		return Result{Kind: KindJSON, Status: status, Body: body}
	}
	return Result{Kind: KindText, Status: status, Body: body}
}

// OK reports whether the device answered with a 2xx status.
func (r Result) OK() bool {
	return r.Kind != KindErr
}

// Text returns the raw body as a string.
func (r Result) Text() string {
	return string(r.Body)
}

// Decode unmarshals a JSON result into v. Text results and failed exchanges
// are returned as errors; a failed exchange returns its own error unchanged.
func (r Result) Decode(v any) error {
	switch r.Kind {
	case KindErr:
		if r.Err == nil {
			return ErrTransport
		}
		return r.Err
	case KindText:
		return fmt.Errorf("%w: expected JSON body, got %q", ErrDecode, truncate(r.Body, 64))
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// DeviceMessage extracts the "error" field of a rejected request's JSON body.
// It returns "" when the failure carries no such message.
func (r Result) DeviceMessage() string {
	var se *StatusError
	if r.Kind != KindErr || !errors.As(r.Err, &se) || !json.Valid(se.Body) {
		return ""
	}
	var body models.DeviceError
	if err := json.Unmarshal(se.Body, &body); err != nil {
		return ""
	}
	return body.Error
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
