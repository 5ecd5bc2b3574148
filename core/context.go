package core

import (
	"context"

	"github.com/huangsam/chronometrist/schema"
)

// Context keys for request-scoped values
type contextKey string

const (
	sessionKey   contextKey = "session"
	requestIDKey contextKey = "requestID"
)

// WithSession stores the session in the context
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored in the context, or nil
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// Track starts an event on the session carried by ctx.
// Without a session the returned Handle does nothing.
func Track(ctx context.Context, title string, annotations schema.Annotations) Handle {
	return FromContext(ctx).Start(title, annotations)
}

// WithRequestID stores the request id in the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id from context, or an empty string
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
