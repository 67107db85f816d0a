package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when a source lacks its credentials or id.
var ErrNotConfigured = errors.New("provider: not configured")

// Error describes a failed fetch.
type Error struct {
	Provider string // weather, github, vps, btc, douban, quote, poetry
	Op       string // what was being done
	Err      error
}

func (e *Error) Error() string {
	return "provider: " + e.Provider + ": " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	// Body holds the start of the response body for debugging.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func newStatusError(code int, body []byte) *StatusError {
	const maxBody = 128
	s := strings.TrimSpace(string(body))
	if len(s) > maxBody {
		s = s[:maxBody] + "..."
	}
	return &StatusError{StatusCode: code, Body: s}
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
