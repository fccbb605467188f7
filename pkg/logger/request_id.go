package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestIDKeyType keeps the context key private to this package.
type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext returns a context carrying the request identifier,
// generating one when empty.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID extracts the request identifier from the context.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID generates a new request identifier.
func GenerateRequestID() string {
	return uuid.New().String()
}

// WithRequestID returns a logger with the request identifier attached.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	if id, ok := GetRequestID(ctx); ok {
		return l.With(zap.String(RequestID, id))
	}
	return l
}
