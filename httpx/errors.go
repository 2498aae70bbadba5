package httpx

import (
	"fmt"

	"github.com/GeneralBots/botlib/boterr"
	"github.com/GeneralBots/botlib/capability"
)

func init() {
	capability.Register(capability.HTTPClient)
}

// Error is the HTTP variant of the unified error taxonomy. It exists only
// in builds that compile the http-client capability; the wrapped native
// transport or decode error stays reachable through errors.Unwrap and
// boterr.Cause.
type Error struct {
	// Op is the HTTP method of the failed request.
	Op string
	// URL is the request URL, redacted of userinfo.
	URL string
	// Status is the HTTP status code when the failure is a non-success
	// response, 0 for transport-level failures.
	Status int
	// Err is the underlying cause. For status failures it carries the
	// response body excerpt as an opaque error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("http %s %s: status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("http %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap exposes the native cause for errors.Is/As and boterr.Cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is folds the error into the unified taxonomy: every HTTP failure
// classifies as a dependency failure without boterr knowing this type.
func (e *Error) Is(target error) bool {
	return target == boterr.ErrDependencyFailure
}

// wrapErr converts a native error into the taxonomy at the point of
// propagation. Nil stays nil.
func wrapErr(op, url string, status int, err error) error {
	if err == nil && status == 0 {
		return nil
	}
	return &Error{Op: op, URL: url, Status: status, Err: err}
}
