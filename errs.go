package jdoc

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when an operation names a document that has
// already been closed.
var ErrClosed = errors.New("jdoc: document is closed")

// ErrStaleRef is the value passed to panic when a reference into a
// closed or reset document is dereferenced.
var ErrStaleRef = errors.New("jdoc: use of reference into closed or reset document")

// IndexError reports an array index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for array of length %d", e.Index, e.Len)
}

func errIndex(i, n int) error {
	return &IndexError{Index: i, Len: n}
}
