package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound means a template identifier does not resolve.
	ErrSourceNotFound = errors.New("template source not found")
	// ErrMissingVariable means a placeholder has no supplied value.
	ErrMissingVariable = errors.New("missing template variable")
	// ErrUnresolvedPlaceholder means rendered output still holds placeholder syntax.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")
	// ErrUnsupportedTemplate means a template uses more than plain substitution.
	ErrUnsupportedTemplate = errors.New("unsupported template construct")
	// ErrDestinationWrite wraps I/O failures on the destination side.
	ErrDestinationWrite = errors.New("destination write failed")
	// ErrConflict means the destination exists with different content.
	ErrConflict = errors.New("file conflict")
	// ErrCancelled means the user cancelled while resolving a conflict.
	ErrCancelled = errors.New("operation cancelled")
)

// ConflictError carries both versions of a conflicting file so a resolver
// can decide what to do. It matches ErrConflict with errors.Is.
type ConflictError struct {
	Path     string
	Existing []byte
	Proposed []byte
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s already exists with different content", ErrConflict, e.Path)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
