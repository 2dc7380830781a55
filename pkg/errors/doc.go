// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "failed to load pet spec",
//	    err,
//	    map[string]any{
//	        "source": path,
//	    },
//	)
//
// HTTPStatus maps an ErrorCode to the status code the API server responds with.
package errors
