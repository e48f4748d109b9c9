package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrCanceled is returned for searches that were superseded or explicitly
// canceled. It is never shown to the user.
var ErrCanceled = errors.New("request canceled")

// NetworkError covers timeouts, transport failures and non-2xx responses
type NetworkError struct {
	// StatusCode is 0 when no response was received
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request ran out of time
func (e *NetworkError) Timeout() bool {
	return e.StatusCode == 0 && errors.Is(e.Err, errTimeout)
}

var errTimeout = errors.New("timeout")

// ValidationError reports input rejected before any request was made
type ValidationError struct {
	Field string
	Value string
	Msg   string
	// Err optionally classifies the failure for errors.Is
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ParseID validates a textual catalog identifier
func ParseID(raw string) (int, error) {
	if !digitsOnly.MatchString(raw) {
		return 0, &ValidationError{Field: "anime id", Value: raw, Msg: "must be a positive number"}
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "anime id", Value: raw, Msg: "must be a positive number"}
	}
	return id, nil
}
