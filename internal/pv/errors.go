package pv

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNameConflict = errors.New("album name already exists")
	ErrInvalidName  = errors.New("invalid album name")
	ErrReservedName = errors.New("album name is reserved")
	ErrNotInBin     = errors.New("photo is not in the bin")
	ErrInBin        = errors.New("photo is in the bin")
	ErrNotInAlbum   = errors.New("photo is not an active member of the album")
	ErrNoSource     = errors.New("no photo source configured")
	ErrNoExporter   = errors.New("no export destination configured")
)

// NameConflictError reports an album name that is already taken.
type NameConflictError struct {
	Name string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("album %q already exists", e.Name)
}

func (e *NameConflictError) Unwrap() error { return ErrNameConflict }

// ValidationError reports an album name that cannot be used.
type ValidationError struct {
	Name   string
	Reason string
	Err    error // ErrInvalidName or ErrReservedName
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("album name %q: %s", e.Name, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError wraps a failure of the record store or the file store.
// Operations that return it stop at the failing step.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}
