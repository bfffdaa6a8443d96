package jdoc

import (
	"github.com/expr-lang/expr"
)

// Query evaluates an expr-lang expression against the document. An object
// root exposes its members as variables; any other root is bound to the
// variable "value".
func (d *Document) Query(expression string) (any, error) {
	if d.closed {
		return nil, ErrClosed
	}
	var root any
	if err := d.Decode(&root); err != nil {
		return nil, err
	}
	env, ok := root.(map[string]any)
	if !ok {
		env = map[string]any{"value": root}
	}
	prog, err := expr.Compile(expression, expr.Env(env))
	if err != nil {
		return nil, err
	}
	return expr.Run(prog, env)
}
