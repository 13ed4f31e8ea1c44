package storage

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes storage errors.
type ErrorKind int

const (
	// ErrNotFound indicates no record is stored under the key.
	ErrNotFound ErrorKind = iota
	// ErrBackend indicates the backend itself failed (I/O, network, SQL).
	ErrBackend
	// ErrCorrupt indicates a stored record could not be decoded.
	ErrCorrupt
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotFound:
		return "not found"
	case ErrBackend:
		return "backend failure"
	case ErrCorrupt:
		return "corrupt record"
	default:
		return "unknown"
	}
}

// Error is returned by backends and the record codec.
type Error struct {
	Kind  ErrorKind
	Op    string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage %s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("storage %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NotFoundError reports a missing record.
func NotFoundError(op string) *Error {
	return &Error{Kind: ErrNotFound, Op: op}
}

// BackendError wraps a failure of the underlying store.
func BackendError(op string, err error) *Error {
	return &Error{Kind: ErrBackend, Op: op, Cause: err}
}

// CorruptError wraps a decode failure.
func CorruptError(op string, err error) *Error {
	return &Error{Kind: ErrCorrupt, Op: op, Cause: err}
}

// AsError extracts an Error from an error chain.
func AsError(err error) *Error {
	var storageErr *Error
	if errors.As(err, &storageErr) {
		return storageErr
	}
	return nil
}

// IsNotFound returns true if err carries ErrNotFound.
func IsNotFound(err error) bool {
	e := AsError(err)
	return e != nil && e.Kind == ErrNotFound
}

// IsCorrupt returns true if err carries ErrCorrupt.
func IsCorrupt(err error) bool {
	e := AsError(err)
	return e != nil && e.Kind == ErrCorrupt
}
