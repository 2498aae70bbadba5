// Package boterr contains the unified error taxonomy shared by botserver,
// botui and every other botlib consumer.
package boterr

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for the always-present failure categories. Integration
// packages (httpx, db/pg, ...) fold their native errors into this taxonomy
// by wrapping these sentinels; see MarkKind.
var (
	// ErrConfig indicates invalid or missing configuration.
	ErrConfig = errors.New("configuration error")

	// ErrDatabase indicates a generic persistence-layer failure not covered
	// by a more specific integration error.
	ErrDatabase = errors.New("database error")

	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates that input validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrAuth indicates an authentication or authorization failure.
	ErrAuth = errors.New("auth error")

	// ErrForbidden indicates that the request is understood but forbidden.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates that the request conflicts with current state.
	ErrConflict = errors.New("conflict")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrInternal indicates an internal error.
	ErrInternal = errors.New("internal error")

	// ErrDependencyFailure indicates that an external dependency failed.
	ErrDependencyFailure = errors.New("dependency failure")
)

// Kind classifies an error into one of the taxonomy's categories.
type Kind int

const (
	// KindUnknown represents an unclassified error.
	KindUnknown Kind = iota
	// KindConfig represents configuration errors.
	KindConfig
	// KindDatabase represents persistence-layer errors.
	KindDatabase
	// KindNotFound represents resource not found errors.
	KindNotFound
	// KindValidation represents input validation errors.
	KindValidation
	// KindAuth represents authentication/authorization errors.
	KindAuth
	// KindForbidden represents access denied errors.
	KindForbidden
	// KindConflict represents resource conflict errors.
	KindConflict
	// KindTimeout represents timeout errors.
	KindTimeout
	// KindInternal represents internal errors.
	KindInternal
	// KindDependencyFailure represents external dependency failures.
	KindDependencyFailure
	// KindCanceled represents context cancellation.
	KindCanceled
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "Config"
	case KindDatabase:
		return "Database"
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "Validation"
	case KindAuth:
		return "Auth"
	case KindForbidden:
		return "Forbidden"
	case KindConflict:
		return "Conflict"
	case KindTimeout:
		return "Timeout"
	case KindInternal:
		return "Internal"
	case KindDependencyFailure:
		return "DependencyFailure"
	case KindCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// kindSentinels maps kinds to their sentinel errors. KindUnknown and
// KindCanceled have no sentinel.
var kindSentinels = map[Kind]error{
	KindConfig:            ErrConfig,
	KindDatabase:          ErrDatabase,
	KindNotFound:          ErrNotFound,
	KindValidation:        ErrValidation,
	KindAuth:              ErrAuth,
	KindForbidden:         ErrForbidden,
	KindConflict:          ErrConflict,
	KindTimeout:           ErrTimeout,
	KindInternal:          ErrInternal,
	KindDependencyFailure: ErrDependencyFailure,
}

// classifyOrder is the deterministic priority used by KindOf when an error
// chain matches several kinds (possible with errors.Join). Cancellation and
// timeouts come first, specific categories before the catch-all ones.
var classifyOrder = []Kind{
	KindCanceled,
	KindTimeout,
	KindConfig,
	KindNotFound,
	KindValidation,
	KindAuth,
	KindForbidden,
	KindConflict,
	KindDatabase,
	KindDependencyFailure,
	KindInternal,
}

// KindOf returns the Kind of the given error by walking its chain against
// the known sentinels in priority order. Returns KindUnknown for nil and
// unrecognized errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range classifyOrder {
		switch k {
		case KindCanceled:
			if IsCanceled(err) {
				return KindCanceled
			}
		case KindTimeout:
			if IsTimeout(err) {
				return KindTimeout
			}
		default:
			if errors.Is(err, kindSentinels[k]) {
				return k
			}
		}
	}
	return KindUnknown
}

// HasKind reports whether the error classifies as the given kind.
func HasKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// SentinelOf returns the sentinel error for the given Kind, or nil for
// KindUnknown and KindCanceled.
func SentinelOf(kind Kind) error {
	return kindSentinels[kind]
}

// MarkKind wraps an error with the sentinel for the given kind, preserving
// the original error. Both KindOf(MarkKind(err, k)) == k and
// errors.Is(MarkKind(err, k), err) hold afterwards. Marking is idempotent:
// an error that already has the kind is returned unchanged. A nil err yields
// the bare sentinel.
//
// This is the explicit conversion point for third-party errors:
//
//	if errors.Is(err, pgx.ErrNoRows) {
//	    return boterr.MarkKind(err, boterr.KindNotFound)
//	}
func MarkKind(err error, kind Kind) error {
	sentinel := kindSentinels[kind]
	if err == nil {
		return sentinel
	}
	if sentinel == nil {
		return err
	}
	if KindOf(err) == kind {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Config returns a new configuration error with the given message.
func Config(msg string) error {
	return fmt.Errorf("%w: %s", ErrConfig, msg)
}

// Configf returns a new formatted configuration error.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// Database returns a new generic database error with the given message.
func Database(msg string) error {
	return fmt.Errorf("%w: %s", ErrDatabase, msg)
}

// NotFound returns a "X not found" error for the named entity.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// Validation returns a new validation error with the given message.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Internal returns a new internal error with the given message.
func Internal(msg string) error {
	return fmt.Errorf("%w: %s", ErrInternal, msg)
}

// Wrap adds context to an error, formatting as "context: err". It returns
// nil for a nil error and the original error for empty context.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	if context == "" {
		return err
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	context := fmt.Sprintf(format, args...)
	if context == "" {
		return err
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsCanceled reports whether the error indicates a canceled context.
func IsCanceled(err error) bool {
	return err != nil && errors.Is(err, context.Canceled)
}

// IsTimeout reports whether the error indicates a timeout. It matches
// context.DeadlineExceeded, ErrTimeout and net.Error timeouts.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsConfig reports whether the error is a configuration error.
func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

// IsDatabase reports whether the error is a persistence-layer error.
func IsDatabase(err error) bool { return errors.Is(err, ErrDatabase) }

// IsNotFound reports whether the error indicates a missing resource.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether the error indicates failed validation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsAuth reports whether the error is an authentication failure.
func IsAuth(err error) bool { return errors.Is(err, ErrAuth) }

// IsForbidden reports whether the error indicates a forbidden request.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsConflict reports whether the error indicates a state conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsInternal reports whether the error is an internal error.
func IsInternal(err error) bool { return errors.Is(err, ErrInternal) }

// IsDependencyFailure reports whether an external dependency failed.
func IsDependencyFailure(err error) bool { return errors.Is(err, ErrDependencyFailure) }

// Cause returns the deepest error in the chain: the original failure before
// any wrapping. For errors.Join graphs the first leaf in depth-first order
// is returned. Returns err itself when nothing is wrapped, nil for nil.
func Cause(err error) error {
	if err == nil {
		return nil
	}
	all := UnwrapAll(err)
	for i := len(all) - 1; i >= 0; i-- {
		c := all[i]
		if multi, ok := c.(interface{ Unwrap() []error }); ok {
			if len(multi.Unwrap()) > 0 {
				continue
			}
		} else if errors.Unwrap(c) != nil {
			continue
		}
		return c
	}
	return err
}

// UnwrapAll returns every error in the chain, outermost first. Both
// fmt.Errorf %w chains and errors.Join graphs are flattened. Cycles are
// skipped.
func UnwrapAll(err error) []error {
	if err == nil {
		return nil
	}
	var result []error
	seen := make(map[error]bool)
	queue := []error{err}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true
		result = append(result, current)
		if multi, ok := current.(interface{ Unwrap() []error }); ok {
			queue = append(queue, multi.Unwrap()...)
		} else if next := errors.Unwrap(current); next != nil {
			queue = append(queue, next)
		}
	}
	return result
}
