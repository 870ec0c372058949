package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no post matches the requested id.
var ErrNotFound = errors.New("post not found")

// StorageError wraps any failure reported by the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
