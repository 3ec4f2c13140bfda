// Package errors provides error handling conventions for the strata CLI.
//
// This package defines sentinel errors for the core configuration and stack
// operations, an ExitError type for CLI exit code handling, and exit code
// constants following standard Unix conventions. Wrapping builds on
// github.com/cockroachdb/errors.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific failure kinds using
// [Is]:
//
//	if errors.Is(err, straterrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// Call sites attach the offending entity name with Wrapf so the CLI can
// render a message naming the entity and the reason:
//
//	return errors.Wrapf(errors.ErrActiveResource,
//	    "profile %q is the globally active profile", name)
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, network, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As].
package errors
