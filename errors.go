package lyonkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	oaerrors "github.com/go-openapi/errors"
)

// maxErrorBodySize limits the size of error response bodies read from the server.
const maxErrorBodySize = 4096

// Error represents a Lyonkit API error.
//
// Every failed call returns an *Error. Code is derived from the HTTP status
// (or from the failure kind for transport errors), ServerCode carries the
// short code reported by the Lyonkit API (for example "NTFND" or "AKIRO").
type Error struct {
	Code       string
	Message    string
	Status     int
	ServerCode string
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("lyonkit: ")
	b.WriteString(e.Code)
	if e.ServerCode != "" {
		fmt.Fprintf(&b, " (%s)", e.ServerCode)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil && e.Cause.Error() != e.Message {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code, so that
// errors.Is(err, ErrNotFound) matches any not-found response.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// IsNotFound returns true if err is a not-found API error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Sentinel errors.
var (
	ErrBadRequest    = &Error{Code: "BAD_REQUEST", Message: "invalid request", Status: http.StatusBadRequest}
	ErrUnauthorized  = &Error{Code: "UNAUTHORIZED", Message: "api key is not allowed to write", Status: http.StatusUnauthorized}
	ErrForbidden     = &Error{Code: "FORBIDDEN", Message: "missing or invalid api key", Status: http.StatusForbidden}
	ErrNotFound      = &Error{Code: "NOT_FOUND", Message: "resource not found", Status: http.StatusNotFound}
	ErrUnprocessable = &Error{Code: "UNPROCESSABLE", Message: "unprocessable entity", Status: http.StatusUnprocessableEntity}
	ErrInternal      = &Error{Code: "INTERNAL", Message: "internal server error", Status: http.StatusInternalServerError}
	ErrTimeout       = &Error{Code: "TIMEOUT", Message: "request timed out"}
	ErrCanceled      = &Error{Code: "CANCELED", Message: "request canceled"}
	ErrConnection    = &Error{Code: "CONNECTION", Message: "cannot reach lyonkit api"}
)

func newError(code, message string, status int, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Cause:   cause,
	}
}

// serverError is the JSON error payload of the Lyonkit API.
type serverError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// codeForStatus maps an HTTP status to an Error code.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest.Code
	case http.StatusUnauthorized:
		return ErrUnauthorized.Code
	case http.StatusForbidden:
		return ErrForbidden.Code
	case http.StatusNotFound:
		return ErrNotFound.Code
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable.Code
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrTimeout.Code
	}
	if status >= 500 {
		return ErrInternal.Code
	}
	return fmt.Sprintf("HTTP_%d", status)
}

// errorFromResponse builds an *Error from a non-success response body.
func errorFromResponse(status int, body io.Reader) *Error {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	e := &Error{
		Code:    codeForStatus(status),
		Message: http.StatusText(status),
		Status:  status,
		Body:    string(raw),
	}

	var payload serverError
	if err := json.Unmarshal(raw, &payload); err == nil && (payload.Code != "" || payload.Message != "") {
		e.ServerCode = payload.Code
		if payload.Message != "" {
			e.Message = payload.Message
		}
		e.Cause = oaerrors.New(int32(status), "%s", e.Message)
	} else if msg := strings.TrimSpace(string(raw)); msg != "" {
		e.Message = msg
	}
	return e
}

// handleError converts a transport failure into an *Error.
func handleError(err error, message string) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newError(ErrTimeout.Code, message, 0, err)
	case errors.Is(err, context.Canceled):
		return newError(ErrCanceled.Code, message, 0, err)
	}
	return newError(ErrConnection.Code, message, 0, err)
}
