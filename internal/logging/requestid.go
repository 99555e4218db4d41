// Package logging carries the request ID through contexts so log lines from
// one request can be correlated.
package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestId"

// GenerateRequestID returns a fresh "req-" prefixed UUID.
func GenerateRequestID() string {
	return "req-" + uuid.New().String()
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the stored ID or "".
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Prefix renders "[id] " for log lines, or "" outside a request.
func Prefix(ctx context.Context) string {
	if id := GetRequestID(ctx); id != "" {
		return "[" + id + "] "
	}
	return ""
}
