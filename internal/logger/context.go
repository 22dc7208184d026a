package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds request-scoped logging context for a single transaction
// exchanged over a Hotline session.
type LogContext struct {
	TraceID         string // OpenTelemetry trace ID
	SpanID          string // OpenTelemetry span ID
	TransactionType string // Hotline transaction type name (ChatSend, Login, ...)
	TransactionID   uint32 // Hotline transaction id
	Address         string // Remote host:port
	StartTime       time.Time
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for a connection to the given address.
func NewLogContext(address string) *LogContext {
	return &LogContext{
		Address:   address,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	clone := *lc
	return &clone
}

// WithTransaction returns a copy with the transaction type and id set
func (lc *LogContext) WithTransaction(transactionType string, id uint32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TransactionType = transactionType
		clone.TransactionID = id
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
