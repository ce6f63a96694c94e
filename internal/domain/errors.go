package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrReferenceNotFound = errors.New("referenced document not found")
	ErrFileTypeNotAllowed = errors.New("file extension not allowed")
)

// DocumentReadError means an uploaded workbook could not be read at all
// (corrupt file, missing sheet or header). It aborts the whole batch before
// any persistence. Row is 0 when the document itself is unreadable.
type DocumentReadError struct {
	Row    int
	Reason string
	Cause  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("document read error at row %d: %s", e.Row, e.Reason)
}

func (e *DocumentReadError) Unwrap() error { return e.Cause }
