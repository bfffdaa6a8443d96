// Package gomap converts between native Go values and node trees.
//
// Each Go type resolves to a conversion strategy exactly once; the result
// is cached for the life of the process. Callers can override the built-in
// strategies per type with RegisterEncoder and RegisterDecoder, or per
// value by implementing NodeMarshaler and NodeUnmarshaler.
//
// Casting is tag-directed: the node's own type decides which conversions
// are admissible. Numeric tags convert between each other when the value
// fits, strings never silently become numbers, and null lands only in
// shapes with a natural empty state.
package gomap
