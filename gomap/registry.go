package gomap

import (
	"reflect"
	"sync"

	"github.com/jdoc-format/go-jdoc/ir"
)

// The registry holds caller-installed conversions keyed by native type.
// Registered conversions have absolute priority: they win over the
// NodeMarshaler/NodeUnmarshaler hooks and over every built-in strategy.
// Registration is process-wide and safe for concurrent use; registering
// a type twice replaces the earlier entry.

type encoderFunc func(reflect.Value) (*ir.Node, error)

type decoderFunc func(*ir.Node) (reflect.Value, error)

var (
	encoders sync.Map // reflect.Type -> encoderFunc
	decoders sync.Map // reflect.Type -> decoderFunc
)

// RegisterEncoder installs fn as the conversion from T to a node.
func RegisterEncoder[T any](fn func(T) (*ir.Node, error)) {
	encoders.Store(reflect.TypeFor[T](), encoderFunc(func(v reflect.Value) (*ir.Node, error) {
		return fn(v.Interface().(T))
	}))
}

// RegisterDecoder installs fn as the conversion from a node to T.
func RegisterDecoder[T any](fn func(*ir.Node) (T, error)) {
	decoders.Store(reflect.TypeFor[T](), decoderFunc(func(n *ir.Node) (reflect.Value, error) {
		v, err := fn(n)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	}))
}

func lookupEncoder(t reflect.Type) encoderFunc {
	if fn, ok := encoders.Load(t); ok {
		return fn.(encoderFunc)
	}
	return nil
}

func lookupDecoder(t reflect.Type) decoderFunc {
	if fn, ok := decoders.Load(t); ok {
		return fn.(decoderFunc)
	}
	return nil
}

func hasCustom(t reflect.Type) bool {
	if _, ok := encoders.Load(t); ok {
		return true
	}
	_, ok := decoders.Load(t)
	return ok
}
