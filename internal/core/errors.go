package core

import (
	"errors"
	"strings"
)

// ErrNotFound signals an update of a record whose id is not present.
// Deleting a missing id is a no-op, not an error.
var ErrNotFound = errors.New("record not found")

// ValidationError reports the missing or invalid fields of a draft.
// The draft is rejected as a whole; no mutation happens.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

// DuplicateError signals a budget creation colliding with an existing
// budget for the same category.
type DuplicateError struct {
	Category string
}

func (e *DuplicateError) Error() string {
	return "budget already exists for category " + e.Category
}

// LoadError reports a persisted blob that could not be read or parsed.
// It is non-fatal: the offending collection loads as empty and the
// remaining collections are unaffected.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return "load " + e.Key + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// PersistenceError reports a failed write to the blob store. The
// in-memory state is left untouched; the caller decides whether to
// retry or surface the failure.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persist " + e.Key + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// FormatError rejects an import snapshot missing required collection
// keys. The import is discarded as a whole.
type FormatError struct {
	Missing []string
}

func (e *FormatError) Error() string {
	return "snapshot missing required keys: " + strings.Join(e.Missing, ", ")
}
