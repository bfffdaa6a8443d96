// Package ir provides the node tree underlying jdoc documents.
//
// # Overview
//
// All documents, whether parsed from text, built programmatically, or
// produced by the gomap conversion engine, are represented as ir.Node
// trees. The IR is a simple recursive tagged union: the Type field selects
// which payload field is meaningful.
//
// # Node Types
//
//   - Atomic: null, bool, uint64, int64, float64, string
//   - Composite: array (ordered list), object (ordered key-value members)
//
// Objects keep their members in insertion order and permit duplicate keys;
// lookup is a linear scan returning the first match. Consumers needing
// O(1) lookup build an index externally with ToMap.
//
// Each node maintains parent links. The parent link doubles as the
// ownership marker: a node with a non-nil Parent belongs to a container
// and must be cloned before being attached at a second position.
package ir
