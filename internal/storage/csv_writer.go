package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"goldapple/parser/internal/domain"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVWriter writes output rows to a UTF-8 CSV file with a byte order mark,
// so spreadsheet software picks the right encoding for Cyrillic text. Records
// end with CRLF, as RFC 4180 has it.
type CSVWriter struct {
	file    *os.File
	encoder *transform.Writer
	writer  *csv.Writer
}

// NewCSVWriter creates (or truncates) the file at path and writes the header
// row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	encoder := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	w := csv.NewWriter(encoder)
	w.UseCRLF = true

	if err := w.Write(domain.OutputColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{file: f, encoder: encoder, writer: w}, nil
}

// WriteRow appends one row and flushes it, so everything written so far
// survives a failure later in the run.
func (c *CSVWriter) WriteRow(_ context.Context, row *domain.OutputRow) error {
	if err := c.writer.Write(row.Record()); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("csv: flush row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.encoder.Close(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: close encoder: %w", err)
	}
	return c.file.Close()
}
