package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jdoc-format/go-jdoc/ir"
)

// ToNode converts a native Go value into a node tree. Conversions resolve
// per type, in priority order: registered encoder, ToNode method,
// MarshalText method, then the built-in strategy for the type's shape.
func ToNode(v any, opts ...Option) (*ir.Node, error) {
	cfg := newConfig(opts)
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string)
	return toNode(reflect.ValueOf(v), "", visited, cfg)
}

func toNode(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	t := val.Type()
	if enc := lookupEncoder(t); enc != nil {
		n, err := enc(val)
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Err: err}
		}
		return n, nil
	}
	p, err := planOf(t)
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Err: err}
	}
	if p.nodeMarshaler {
		if m := asNodeMarshaler(val); m != nil {
			n, err := m.ToNode()
			if err != nil {
				return nil, &MarshalError{FieldPath: fieldPath, Err: err}
			}
			return n, nil
		}
	}
	if p.textMarshaler && p.strategy != strategyOptional {
		if m := asTextMarshaler(val); m != nil {
			text, err := m.MarshalText()
			if err != nil {
				return nil, &MarshalError{FieldPath: fieldPath, Err: err}
			}
			return ir.FromString(string(text)), nil
		}
	}

	switch p.strategy {
	case strategyPrimitive:
		return toLeaf(val, p.kind, cfg), nil

	case strategyOptional:
		if val.IsNil() {
			return ir.Null(), nil
		}
		addr := val.Pointer()
		if prior, ok := visited[addr]; ok {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cycle detected: pointer already visited at %q", prior),
			}
		}
		visited[addr] = fieldPath
		defer delete(visited, addr)
		return toNode(val.Elem(), fieldPath, visited, cfg)

	case strategyVariant:
		idx, alt := asVariant(val).variantActive()
		if idx == 0 {
			return ir.Null(), nil
		}
		return toNode(reflect.ValueOf(alt), fieldPath, visited, cfg)

	case strategyTuple:
		items := make([]*ir.Node, len(p.items))
		for i, item := range p.items {
			n, err := toNode(val.FieldByIndex(item.index), childPath(fieldPath, item.name), visited, cfg)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return ir.FromSlice(items), nil

	case strategySequence:
		return toSequence(val, p, fieldPath, visited, cfg)

	case strategyMapping:
		if p.ordered {
			return toOrderedMapping(val, fieldPath, visited, cfg)
		}
		return toMapping(val, fieldPath, visited, cfg)

	case strategyRecord:
		return toRecord(val, p, fieldPath, visited, cfg)

	case strategyDynamic:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toNode(val.Elem(), fieldPath, visited, cfg)
	}
	return nil, &MarshalError{FieldPath: fieldPath, Err: &UnsupportedTypeError{Type: t}}
}

func toLeaf(val reflect.Value, kind reflect.Kind, cfg *config) *ir.Node {
	switch kind {
	case reflect.Bool:
		return ir.FromBool(val.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.FromUint(val.Uint())
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float())
	default:
		s := val.String()
		if cfg.copyStrings {
			s = strings.Clone(s)
		}
		return ir.FromString(s)
	}
}

func toSequence(val reflect.Value, p *plan, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	if p.kind == reflect.Slice {
		if val.IsNil() {
			return ir.Null(), nil
		}
		addr := val.Pointer()
		if prior, ok := visited[addr]; ok {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cycle detected: slice already visited at %q", prior),
			}
		}
		visited[addr] = fieldPath
		defer delete(visited, addr)
	}
	elems := make([]*ir.Node, val.Len())
	for i := range elems {
		n, err := toNode(val.Index(i), childPath(fieldPath, fmt.Sprintf("[%d]", i)), visited, cfg)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	return ir.FromSlice(elems), nil
}

// toMapping serializes a Go map with keys in sorted order, since map
// iteration order is unspecified.
func toMapping(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	addr := val.Pointer()
	if prior, ok := visited[addr]; ok {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cycle detected: map already visited at %q", prior),
		}
	}
	visited[addr] = fieldPath
	defer delete(visited, addr)

	keys := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)
	members := make([]ir.Member, len(keys))
	for i, k := range keys {
		n, err := toNode(val.MapIndex(reflect.ValueOf(k).Convert(val.Type().Key())), childPath(fieldPath, k), visited, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.copyStrings {
			k = strings.Clone(k)
		}
		members[i] = ir.Member{Key: k, Val: n}
	}
	return ir.FromMembers(members), nil
}

// toOrderedMapping serializes a Members slice, preserving entry order and
// duplicate keys verbatim.
func toOrderedMapping(val reflect.Value, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	members := make([]ir.Member, val.Len())
	for i := range members {
		entry := val.Index(i)
		k := entry.Field(0).String()
		n, err := toNode(entry.Field(1), childPath(fieldPath, k), visited, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.copyStrings {
			k = strings.Clone(k)
		}
		members[i] = ir.Member{Key: k, Val: n}
	}
	return ir.FromMembers(members), nil
}

func toRecord(val reflect.Value, p *plan, fieldPath string, visited map[uintptr]string, cfg *config) (*ir.Node, error) {
	members := make([]ir.Member, 0, len(p.fields))
	for _, field := range p.fields {
		fv := val.FieldByIndex(field.index)
		if field.omitEmpty && fv.IsZero() {
			continue
		}
		n, err := toNode(fv, childPath(fieldPath, field.name), visited, cfg)
		if err != nil {
			return nil, err
		}
		members = append(members, ir.Member{Key: field.name, Val: n})
	}
	return ir.FromMembers(members), nil
}

func childPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if strings.HasPrefix(child, "[") {
		return parent + child
	}
	return parent + "." + child
}

func asNodeMarshaler(val reflect.Value) NodeMarshaler {
	if m, ok := val.Interface().(NodeMarshaler); ok {
		return m
	}
	if val.CanAddr() {
		if m, ok := val.Addr().Interface().(NodeMarshaler); ok {
			return m
		}
	}
	ptr := reflect.New(val.Type())
	ptr.Elem().Set(val)
	m, _ := ptr.Interface().(NodeMarshaler)
	return m
}

func asTextMarshaler(val reflect.Value) encoding.TextMarshaler {
	if m, ok := val.Interface().(encoding.TextMarshaler); ok {
		return m
	}
	if val.CanAddr() {
		if m, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return m
		}
	}
	ptr := reflect.New(val.Type())
	ptr.Elem().Set(val)
	m, _ := ptr.Interface().(encoding.TextMarshaler)
	return m
}

func asVariant(val reflect.Value) variantValue {
	if val.CanAddr() {
		return val.Addr().Interface().(variantValue)
	}
	ptr := reflect.New(val.Type())
	ptr.Elem().Set(val)
	return ptr.Interface().(variantValue)
}
