package store

import "errors"

var (
	// ErrNotFound is returned by repositories when an update targets a missing id.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps failures of the underlying medium.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalid is returned when a create or update carries values its schema rejects.
	ErrInvalid = errors.New("invalid input")
	// ErrCorruptRecord is returned when a stored record cannot be decoded or fails its schema.
	ErrCorruptRecord = errors.New("corrupt record")
)
