package gomap

import (
	"github.com/jdoc-format/go-jdoc/encode"
	"github.com/jdoc-format/go-jdoc/parse"
)

// Marshal converts v to its canonical text form.
func Marshal(v any, opts ...Option) ([]byte, error) {
	node, err := ToNode(v, opts...)
	if err != nil {
		return nil, err
	}
	s, err := encode.String(node)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Unmarshal parses data and converts the result into the value pointed to
// by v. The input buffer is not retained; strings are copied out of it.
func Unmarshal(data []byte, v any) error {
	node, err := parse.Parse(data)
	if err != nil {
		return err
	}
	return FromNode(node, v, CopyStrings())
}
