package bluebook

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller-supplied identifiers that cannot be
	// used, such as a section with no numeric token.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDocumentUnavailable marks documents that cannot be opened or read.
	ErrDocumentUnavailable = errors.New("document unavailable")
)

// InvalidArgumentError describes a rejected argument.
type InvalidArgumentError struct {
	Field string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// DocumentUnavailableError wraps the open or read failure for a document.
type DocumentUnavailableError struct {
	Path string
	Err  error
}

func (e *DocumentUnavailableError) Error() string {
	return fmt.Sprintf("document %s unavailable: %v", e.Path, e.Err)
}

func (e *DocumentUnavailableError) Unwrap() error { return e.Err }

func (e *DocumentUnavailableError) Is(target error) bool {
	return target == ErrDocumentUnavailable
}
