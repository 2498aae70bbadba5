// Package boterr defines the closed error taxonomy used by every fallible
// operation in botlib and its consumers.
//
// # Categories
//
// The always-present categories are exposed as sentinel errors:
//
//   - ErrConfig: invalid or missing configuration
//   - ErrDatabase: generic persistence-layer failure
//   - ErrNotFound: resource not found
//   - ErrValidation: input validation failed
//   - ErrAuth: authentication/authorization failure
//   - ErrForbidden: request understood but forbidden
//   - ErrConflict: conflict with current state
//   - ErrTimeout: operation timed out
//   - ErrInternal: internal failure
//   - ErrDependencyFailure: external dependency failed
//
// Integration-specific errors do not live here. Each optional integration
// package owns its error type (for example *httpx.Error), which exists in a
// build only when that integration is compiled in, and folds into this
// taxonomy through errors.Is so KindOf classifies it like any other error.
// Referencing an integration error without importing its package is a
// compile error, never a runtime state.
//
// # Classification
//
//	switch boterr.KindOf(err) {
//	case boterr.KindNotFound:
//	    // 404
//	case boterr.KindValidation:
//	    // 400
//	default:
//	    // 500
//	}
//
// Predicates (IsNotFound, IsConfig, ...) cover the common single checks.
//
// # Conversion of third-party errors
//
// Native errors are folded in explicitly at the integration boundary with
// MarkKind, which preserves the original error for errors.Is and for Cause:
//
//	if errors.Is(err, pgx.ErrNoRows) {
//	    return boterr.MarkKind(err, boterr.KindNotFound)
//	}
//
// Nothing is ever discarded: Cause walks to the original failure and
// UnwrapAll flattens the whole chain for diagnostics. The library itself
// never logs, retries or recovers on the error path; those policies belong
// to consumers, which have the full cause chain to decide with.
//
// # Message style
//
// Keep messages lowercase, present tense and free of punctuation so they
// compose under wrapping: "cannot connect" not "Could not connect!".
package boterr
