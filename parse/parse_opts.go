package parse

import (
	"github.com/jdoc-format/go-jdoc/alloc"
)

type parseOpts struct {
	insitu              bool
	allowComments       bool
	allowTrailingCommas bool
	allowInfAndNaN      bool
	rawNumbers          bool
	allowInvalidUTF8    bool
	arena               *alloc.Arena
}

type Option func(*parseOpts)

// Insitu lets the parser mutate and retain the caller's input buffer. The
// comment/trailing-comma pre-pass then rewrites the buffer in place instead
// of copying it, and string payloads may alias it. The buffer must stay
// untouched for as long as the resulting tree lives.
func Insitu() Option {
	return func(o *parseOpts) { o.insitu = true }
}

// AllowComments accepts // and /* */ comments in the input.
func AllowComments() Option {
	return func(o *parseOpts) { o.allowComments = true }
}

// AllowTrailingCommas accepts a comma before a closing bracket or brace.
func AllowTrailingCommas() Option {
	return func(o *parseOpts) { o.allowTrailingCommas = true }
}

// AllowInfAndNaN accepts the literals Infinity, -Infinity and NaN as float
// values.
func AllowInfAndNaN() Option {
	return func(o *parseOpts) { o.allowInfAndNaN = true }
}

// RawNumbers preserves the exact source text of every number on the node;
// the encoder re-emits it verbatim.
func RawNumbers() Option {
	return func(o *parseOpts) { o.rawNumbers = true }
}

// AllowInvalidUnicode skips input UTF-8 validation; invalid sequences in
// strings decode to U+FFFD.
func AllowInvalidUnicode() Option {
	return func(o *parseOpts) { o.allowInvalidUTF8 = true }
}

// WithArena draws all nodes from the given arena instead of the heap. The
// tree is only valid until the arena is reset or released.
func WithArena(a *alloc.Arena) Option {
	return func(o *parseOpts) { o.arena = a }
}
