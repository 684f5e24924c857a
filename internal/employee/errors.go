package employee

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors for classifying API failures.
var (
	ErrNotFound     = errors.New("employee not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
)

// ValidationError is a field-scoped rejection, raised either by Validate or
// by the API.
type ValidationError struct {
	Message string
	Fields  map[Field]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return "validation failed"
		}
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[Field(k)]))
	}
	prefix := e.Message
	if prefix == "" {
		prefix = "validation failed"
	}
	return prefix + " (" + strings.Join(parts, "; ") + ")"
}

// ServerError is a non-success API response.
type ServerError struct {
	StatusCode int
	Message    string
	RequestID  string
	kind       error
}

// NewServerError classifies status into one of the sentinel errors.
func NewServerError(status int, message, requestID string) *ServerError {
	var kind error
	switch {
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ErrUnauthorized
	case status == http.StatusConflict:
		kind = ErrConflict
	case status == http.StatusTooManyRequests:
		kind = ErrRateLimited
	}
	return &ServerError{StatusCode: status, Message: message, RequestID: requestID, kind: kind}
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.kind != nil {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.kind, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
}

func (e *ServerError) Unwrap() error { return e.kind }

// Temporary reports whether retrying the request may succeed.
func (e *ServerError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// FieldErrors extracts field messages from err if it is a ValidationError.
func FieldErrors(err error) map[Field]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
