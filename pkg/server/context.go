package server

import (
	"context"
	"slices"
	"sync"
)

type contextKey string

const (
	contextKeyRequestID   contextKey = "requestID"
	contextKeyAPIVersion  contextKey = "apiVersion"
	contextKeyAnnotations contextKey = "annotations"
)

// RequestID returns the request ID stored by the request ID middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// APIVersion returns the API version of the matched route, or
// DefaultAPIVersion.
func APIVersion(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyAPIVersion).(string); ok && v != "" {
		return v
	}
	return DefaultAPIVersion
}

// annotations collects handler supplied attributes for the request log.
type annotations struct {
	mu    sync.Mutex
	attrs []any
}

// Annotate adds slog key/value pairs to the line logged when the request
// completes. It does nothing for a context not created by the server.
func Annotate(ctx context.Context, args ...any) {
	a, ok := ctx.Value(contextKeyAnnotations).(*annotations)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attrs = append(a.attrs, args...)
}

func (a *annotations) list() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.attrs)
}
