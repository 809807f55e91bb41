package storage

import (
	"context"
	"errors"

	"goldapple/parser/internal/domain"
)

// RowWriter is any sink the pipeline appends output rows to.
type RowWriter interface {
	WriteRow(ctx context.Context, row *domain.OutputRow) error
	Close() error
}

type multiWriter struct {
	writers []RowWriter
}

// NewMultiWriter writes every row to each writer in order and stops at the
// first failure.
func NewMultiWriter(writers ...RowWriter) RowWriter {
	return &multiWriter{writers: writers}
}

func (m *multiWriter) WriteRow(ctx context.Context, row *domain.OutputRow) error {
	for _, w := range m.writers {
		if err := w.WriteRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiWriter) Close() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
