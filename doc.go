// Package jdoc is a typed document model for JSON-shaped data.
//
// A Document owns a node tree allocated from an arena. Mutation happens
// through generation-checked references (ValueRef, ArrayRef, ObjectRef);
// read-only access through borrowing Value views. Closing or resetting a
// document bumps its arena generation, so stale references panic instead
// of reading recycled memory.
//
// Numbers carry one of three tags: non-negative integers are Uint,
// negative integers Int, and everything else Float. Objects preserve
// member order and permit duplicate keys.
//
// A Document and its references are not safe for concurrent use. Distinct
// documents may be used from distinct goroutines freely.
package jdoc
