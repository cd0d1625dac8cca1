package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrStudentNotFound signals a missing student record.
	ErrStudentNotFound = errors.New("student not found")
	// ErrInvalidInput signals a malformed caller payload, including a
	// feature vector whose length does not match the schema.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelUnavailable signals that no trained model artifact could be
	// loaded. Scoring cannot run without one, so this is fatal at startup.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrImportFailed signals that a batch import could not complete.
	ErrImportFailed = errors.New("import failed")
)

// PartialStateError reports an import that cleared the prior student
// collection but failed before the replacement batch was committed. The
// cleared records are gone; the caller must be told rather than the state
// silently papered over.
type PartialStateError struct {
	ClearedCount int
	Err          error
}

func (e *PartialStateError) Error() string {
	return fmt.Sprintf(
		"%s: %d prior student records already cleared, data may be in an inconsistent state: %v",
		ErrImportFailed.Error(), e.ClearedCount, e.Err,
	)
}

func (e *PartialStateError) Unwrap() error { return ErrImportFailed }

// NewPartialState wraps err as a partial-state import failure.
func NewPartialState(clearedCount int, err error) error {
	return &PartialStateError{ClearedCount: clearedCount, Err: err}
}
