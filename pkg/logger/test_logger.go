package logger

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// TestLogger is a Logger implementation for tests that captures messages
// instead of emitting them.
type TestLogger struct {
	mu       sync.Mutex
	messages []LogMessage
	zerolog  *zerolog.Logger

	fields map[string]interface{}
	err    error
}

// LogMessage is one captured log entry.
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
	Error   error
}

// NewTestLogger creates a new test logger.
func NewTestLogger() *TestLogger {
	nop := zerolog.Nop()
	return &TestLogger{zerolog: &nop}
}

func (l *TestLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	l.messages = append(l.messages, LogMessage{
		Level:   level,
		Message: msg,
		Fields:  merged,
		Error:   l.err,
	})
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg, nil) }
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

func (l *TestLogger) FatalWithFields(msg string, fields map[string]interface{}) {
	l.log("FATAL", msg, fields)
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &testLoggerView{root: l, fields: map[string]interface{}{key: value}}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return &testLoggerView{root: l, fields: fields}
}

func (l *TestLogger) WithError(err error) Logger {
	return &testLoggerView{root: l, err: err}
}

func (l *TestLogger) WithContext(ctx context.Context) Logger { return l }

func (l *TestLogger) GetZerolog() *zerolog.Logger { return l.zerolog }

// GetMessages returns a copy of all captured log messages.
func (l *TestLogger) GetMessages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	messages := make([]LogMessage, len(l.messages))
	copy(messages, l.messages)
	return messages
}

// GetMessagesByLevel returns all messages of a specific level.
func (l *TestLogger) GetMessagesByLevel(level string) []LogMessage {
	var filtered []LogMessage
	for _, msg := range l.GetMessages() {
		if msg.Level == level {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// HasMessage checks if a message with the given text was logged.
func (l *TestLogger) HasMessage(text string) bool {
	for _, msg := range l.GetMessages() {
		if msg.Message == text {
			return true
		}
	}
	return false
}

// Clear discards all captured messages.
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = l.messages[:0]
}

// testLoggerView is a derived logger carrying bound fields/error; it records
// into the root TestLogger.
type testLoggerView struct {
	root   *TestLogger
	fields map[string]interface{}
	err    error
}

func (v *testLoggerView) log(level, msg string, fields map[string]interface{}) {
	merged := make(map[string]interface{}, len(v.fields)+len(fields))
	for k, vv := range v.fields {
		merged[k] = vv
	}
	for k, vv := range fields {
		merged[k] = vv
	}

	v.root.mu.Lock()
	defer v.root.mu.Unlock()
	v.root.messages = append(v.root.messages, LogMessage{
		Level:   level,
		Message: msg,
		Fields:  merged,
		Error:   v.err,
	})
}

func (v *testLoggerView) Debug(msg string) { v.log("DEBUG", msg, nil) }
func (v *testLoggerView) Info(msg string)  { v.log("INFO", msg, nil) }
func (v *testLoggerView) Warn(msg string)  { v.log("WARN", msg, nil) }
func (v *testLoggerView) Error(msg string) { v.log("ERROR", msg, nil) }
func (v *testLoggerView) Fatal(msg string) { v.log("FATAL", msg, nil) }

func (v *testLoggerView) DebugWithFields(msg string, fields map[string]interface{}) {
	v.log("DEBUG", msg, fields)
}

func (v *testLoggerView) InfoWithFields(msg string, fields map[string]interface{}) {
	v.log("INFO", msg, fields)
}

func (v *testLoggerView) WarnWithFields(msg string, fields map[string]interface{}) {
	v.log("WARN", msg, fields)
}

func (v *testLoggerView) ErrorWithFields(msg string, fields map[string]interface{}) {
	v.log("ERROR", msg, fields)
}

func (v *testLoggerView) FatalWithFields(msg string, fields map[string]interface{}) {
	v.log("FATAL", msg, fields)
}

func (v *testLoggerView) WithField(key string, value interface{}) Logger {
	merged := make(map[string]interface{}, len(v.fields)+1)
	for k, vv := range v.fields {
		merged[k] = vv
	}
	merged[key] = value
	return &testLoggerView{root: v.root, fields: merged, err: v.err}
}

func (v *testLoggerView) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(v.fields)+len(fields))
	for k, vv := range v.fields {
		merged[k] = vv
	}
	for k, vv := range fields {
		merged[k] = vv
	}
	return &testLoggerView{root: v.root, fields: merged, err: v.err}
}

func (v *testLoggerView) WithError(err error) Logger {
	return &testLoggerView{root: v.root, fields: v.fields, err: err}
}

func (v *testLoggerView) WithContext(ctx context.Context) Logger { return v }

func (v *testLoggerView) GetZerolog() *zerolog.Logger { return v.root.zerolog }
