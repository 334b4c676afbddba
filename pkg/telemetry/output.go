package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends Stats rows to a CSV stream, writing the header once.
// A nil *CSVWriter discards everything.
type CSVWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewCSVWriter writes rows to w. Close does not close w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// CreateCSV creates (or truncates) the file at path, creating parent
// directories as needed. Returns nil if path is empty (output disabled).
func CreateCSV(path string) (*CSVWriter, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVWriter{w: f, closer: f}, nil
}

// Write appends one row.
func (c *CSVWriter) Write(s Stats) error {
	if c == nil {
		return nil
	}

	records := []Stats{s}
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		c.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, c.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close closes the underlying file when the writer owns one.
func (c *CSVWriter) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
