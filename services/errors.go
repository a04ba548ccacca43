package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks errors caused by caller input.
	ErrValidation = errors.New("validation failed")

	// ErrNoFieldsToUpdate is returned by UpdateStatus when neither flag is set.
	ErrNoFieldsToUpdate = fmt.Errorf("%w: no fields to update", ErrValidation)

	// ErrNotFound is reported by the API layer when an update matched no row.
	ErrNotFound = errors.New("submission not found")

	errNoDatabase = errors.New("database not initialized")
)

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
