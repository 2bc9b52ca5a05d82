package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// LogRequest logs HTTP request information at a level matching the status.
func LogRequest(method, url string, statusCode int, durationMS float64) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration_ms": durationMS,
	}

	switch {
	case statusCode >= 500:
		GetLogger().ErrorWithFields("HTTP request server error", fields)
	case statusCode >= 400:
		GetLogger().WarnWithFields("HTTP request client error", fields)
	default:
		GetLogger().DebugWithFields("HTTP request completed", fields)
	}
}

// LogQueryResult logs the outcome of one search query.
func LogQueryResult(query, authMethod string, rows int, errMsg string) {
	fields := map[string]interface{}{
		"query":       query,
		"auth_method": authMethod,
		"rows":        rows,
	}

	if errMsg != "" {
		fields["error"] = errMsg
		GetLogger().WarnWithFields("Query failed", fields)
		return
	}
	GetLogger().DebugWithFields("Query completed", fields)
}

// LogFlush logs a batch flush to the output store.
func LogFlush(path string, rows, totalWritten int) {
	GetLogger().InfoWithFields("Batch flushed", map[string]interface{}{
		"path":          path,
		"rows":          rows,
		"total_written": totalWritten,
	})
}

// LogProgress logs periodic collection progress.
func LogProgress(queries, rowsWritten int) {
	GetLogger().InfoWithFields("Collection progress", map[string]interface{}{
		"queries":      queries,
		"rows_written": rowsWritten,
	})
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing (useful for testing)
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) Fatal(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) FatalWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
