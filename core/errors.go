package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNoCredentials is returned when the live data source has no usable upstream token.
var ErrNoCredentials = errors.New("no upstream credentials; please sign in")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// UpstreamError is a failed call to the course-management API.
// Status carries the HTTP status code returned upstream (0 when the request never got a response).
type UpstreamError struct {
	Status   int
	Resource string
	Err      error
}

func NewUpstreamError(status int, resource string, err error) error {
	return &UpstreamError{Status: status, Resource: resource, Err: err}
}

func (err *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream %s", err.Resource)
	if err.Status != 0 {
		msg += fmt.Sprintf(": %d %s", err.Status, http.StatusText(err.Status))
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *UpstreamError) Unwrap() error { return err.Err }

// AsUpstreamError returns the UpstreamError at the root of err, if any.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var uerr *UpstreamError
	if errors.As(err, &uerr) {
		return uerr, true
	}
	return nil, false
}

// IsAuthRequired reports whether err means the caller has to (re-)authenticate.
func IsAuthRequired(err error) bool {
	if errors.Cause(err) == ErrNoCredentials || errors.Is(err, ErrNoCredentials) {
		return true
	}
	uerr, ok := AsUpstreamError(err)
	return ok && uerr.Status == http.StatusUnauthorized
}

// IsPermissionDenied reports whether the upstream refused access to the resource.
func IsPermissionDenied(err error) bool {
	uerr, ok := AsUpstreamError(err)
	return ok && uerr.Status == http.StatusForbidden
}
