package encode

import (
	"github.com/jdoc-format/go-jdoc/ir"
)

// MustString renders node canonically and panics on failure. Intended for
// tests and debugging.
func MustString(node *ir.Node, opts ...Option) string {
	s, err := String(node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
