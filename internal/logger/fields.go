package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Transaction & Protocol
	// ========================================================================
	KeyTransactionID   = "transaction_id"   // Hotline transaction ID (caller-assigned, monotonic)
	KeyTransactionType = "transaction_type" // Hotline wire transaction type
	KeyIsReply         = "is_reply"         // Whether the frame is a reply
	KeyErrorCode       = "error_code"       // Transaction-level error code from the server
	KeyFieldCount      = "field_count"      // Number of fields decoded from a transaction

	// ========================================================================
	// Session & Connection
	// ========================================================================
	KeyAddress = "address" // Remote host:port
	KeyStatus  = "status"  // Connection status (Disconnected, Connecting, ...)
	KeyUserID  = "user_id"
	KeyUser    = "user" // Display name

	// ========================================================================
	// File Transfer
	// ========================================================================
	KeyRefNum      = "reference_number" // File-transfer reference number
	KeyTransferID  = "transfer_id"      // Logical transfer correlation id (uuid)
	KeyFork        = "fork"             // FILP fork type (INFO, DATA, MACR)
	KeyBytesRead   = "bytes_read"
	KeyExpectSize  = "expected_size"
	KeyPath        = "path"

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
	KeyAttempt    = "attempt"
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr { return slog.String(KeySpanID, id) }

// TransactionID returns a slog.Attr for a Hotline transaction id
func TransactionID(id uint32) slog.Attr { return slog.Uint64(KeyTransactionID, uint64(id)) }

// TransactionType returns a slog.Attr for a Hotline wire transaction type
func TransactionType(v fmt.Stringer) slog.Attr { return slog.String(KeyTransactionType, v.String()) }

// Address returns a slog.Attr for a remote host:port
func Address(addr string) slog.Attr { return slog.String(KeyAddress, addr) }

// Status returns a slog.Attr for connection status
func Status(status string) slog.Attr { return slog.String(KeyStatus, status) }

// UserID returns a slog.Attr for a Hotline user id
func UserID(id uint16) slog.Attr { return slog.Uint64(KeyUserID, uint64(id)) }

// User returns a slog.Attr for a display name
func User(name string) slog.Attr { return slog.String(KeyUser, name) }

// RefNum returns a slog.Attr for a file-transfer reference number
func RefNum(ref uint32) slog.Attr { return slog.Uint64(KeyRefNum, uint64(ref)) }

// TransferID returns a slog.Attr for a logical transfer correlation id
func TransferID(id string) slog.Attr { return slog.String(KeyTransferID, id) }

// Fork returns a slog.Attr for a FILP fork type
func Fork(forkType string) slog.Attr { return slog.String(KeyFork, forkType) }

// BytesRead returns a slog.Attr for bytes read so far
func BytesRead(n int64) slog.Attr { return slog.Int64(KeyBytesRead, n) }

// Path returns a slog.Attr for a file or news path
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a transaction-level error code
func ErrorCode(code uint32) slog.Attr { return slog.Uint64(KeyErrorCode, uint64(code)) }

// Attempt returns a slog.Attr for a retry attempt number
func Attempt(n int) slog.Attr { return slog.Int(KeyAttempt, n) }
