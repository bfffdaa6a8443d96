package gomap

import (
	"fmt"
	"reflect"

	"github.com/jdoc-format/go-jdoc/ir"
)

// MarshalError represents an error during conversion from Go to nodes.
type MarshalError struct {
	FieldPath string // field path (e.g., "person.address.street")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("marshal error: %s", msg)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// CastError reports that a native value could not be rebuilt from a node:
// the node's tag does not fit the requested shape, a numeric narrowing is
// out of range, or the target type is unsupported.
type CastError struct {
	FieldPath string
	Want      string  // requested native type
	Got       ir.Type // node tag encountered
	Message   string
	Err       error
}

func (e *CastError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("cannot cast %s node to %s", e.Got, e.Want)
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("cast error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("cast error: %s", msg)
}

func (e *CastError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError is produced at classification time, before any value
// is visited, for types no conversion strategy covers.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.Type)
}
