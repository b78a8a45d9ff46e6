package logger

import "context"

type contextKey struct{}

// WithContext returns a context carrying l, so the engine can pass the
// run's logger down the call chain to Run/Finalize instead of mutating
// node values.
func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger attached to ctx, or a no-op logger if
// none was attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok && l != nil {
		return l
	}
	return Nop()
}
