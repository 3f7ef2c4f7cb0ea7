package core

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrDuplicateSlug     = errors.New("duplicate slug")
	ErrInvalidSlug       = errors.New("invalid slug")
	ErrInvalidFieldID    = errors.New("invalid field id")

	ErrOutputOverlapsContent = errors.New("output directory overlaps content directory")
)

// DocumentError ties a decoding failure to the document it came from. It
// unwraps to both ErrMalformedDocument and the decoder's error.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrMalformedDocument, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() []error {
	return []error{ErrMalformedDocument, e.Err}
}
