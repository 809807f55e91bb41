package domain

import "fmt"

// ShapeError reports a key that the catalog API is expected to always return
// but which is missing or cannot be decoded.
type ShapeError struct {
	Path string
	Err  error
}

func NewShapeError(path string) *ShapeError {
	return &ShapeError{Path: path}
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response shape at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("unexpected response shape: %s is missing", e.Path)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
