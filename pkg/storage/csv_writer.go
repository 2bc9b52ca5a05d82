// Package storage persists collected rows to disk in batches.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	apierrors "tweetgrid/pkg/errors"
	"tweetgrid/pkg/logger"
	"tweetgrid/pkg/models"
)

// BatchWriter buffers rows and appends them to a destination in batches.
type BatchWriter interface {
	// Add buffers one row for the next flush.
	Add(row models.Row)
	// Len reports the number of buffered rows.
	Len() int
	// Flush appends usable buffered rows to the destination and clears the
	// buffer. The buffer is cleared even when the write fails, so a bad
	// batch is never retried.
	Flush() (int, error)
}

// CSVWriter appends rows to a CSV file, writing the header only when the file
// does not already hold data.
type CSVWriter struct {
	path        string
	buffer      []models.Row
	wroteHeader bool
	logger      logger.Logger
}

// NewCSVWriter prepares a batch writer for the given file path. The parent
// directory is created if missing. When the file already exists with content,
// the header is assumed present and is not written again.
func NewCSVWriter(path string, log logger.Logger) (*CSVWriter, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	wroteHeader := false
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		wroteHeader = true
	}

	return &CSVWriter{
		path:        path,
		wroteHeader: wroteHeader,
		logger:      log,
	}, nil
}

// Add buffers one row for the next flush.
func (w *CSVWriter) Add(row models.Row) {
	w.buffer = append(w.buffer, row)
}

// Len reports the number of buffered rows.
func (w *CSVWriter) Len() int {
	return len(w.buffer)
}

// Path returns the destination file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// Flush appends the buffered rows to the CSV file and returns the number of
// usable rows written. Placeholder rows carrying no-results or error markers
// are counted in run statistics but never written. An empty buffer is a
// no-op. The buffer is always cleared, even on failure.
func (w *CSVWriter) Flush() (written int, err error) {
	if len(w.buffer) == 0 {
		return 0, nil
	}

	defer func() {
		w.buffer = w.buffer[:0]
	}()

	usable := make([]models.Row, 0, len(w.buffer))
	for _, row := range w.buffer {
		if row.Usable() {
			usable = append(usable, row)
		}
	}
	if len(usable) == 0 {
		return 0, nil
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, &apierrors.Error{
			Type:    apierrors.ErrorTypePersistence,
			Message: "failed to open output file: " + err.Error(),
			Cause:   err,
		}
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if !w.wroteHeader {
		if err := cw.Write(models.Columns()); err != nil {
			return 0, fmt.Errorf("failed to write header: %w", err)
		}
		w.wroteHeader = true
	}

	for _, row := range usable {
		if err := cw.Write(row.Record()); err != nil {
			return written, fmt.Errorf("failed to write row: %w", err)
		}
		written++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("failed to flush rows: %w", err)
	}

	w.logger.DebugWithFields("flushed batch", map[string]interface{}{
		"path": w.path,
		"rows": written,
	})

	return written, nil
}
