// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "failed to read versions",
//	    err,
//	    map[string]any{
//	        "path": path,
//	    },
//	)
//
// The comparator in pkg/version never returns errors; these types are used by
// the input and output layers only.
package errors
