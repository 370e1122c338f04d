// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a per-file failure for reporting.
type ErrorKind string

const (
	// KindExtraction means a document could not be read or parsed as PDF.
	KindExtraction ErrorKind = "extraction"

	// KindConfiguration means a referenced keyword profile is missing or
	// the configuration itself is invalid.
	KindConfiguration ErrorKind = "configuration"

	// KindFilesystem means a destination folder is missing or a move failed.
	KindFilesystem ErrorKind = "filesystem"

	// KindUnknown is reported for errors that carry no kind.
	KindUnknown ErrorKind = "unknown"
)

// Error is a failure tied to one path. It wraps the underlying cause so
// errors.Is and errors.As see through it.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError returns an *Error of the given kind.
func NewError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
