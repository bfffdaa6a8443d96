package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"

	"github.com/jdoc-format/go-jdoc/ir"
)

// NodeMarshaler is implemented by types that build their own node.
// It takes precedence over every built-in strategy except the registry.
type NodeMarshaler interface {
	ToNode() (*ir.Node, error)
}

// NodeUnmarshaler is implemented by types that rebuild themselves from a
// node. It takes precedence over every built-in strategy except the
// registry.
type NodeUnmarshaler interface {
	FromNode(*ir.Node) error
}

// strategy is the conversion class a native type resolves to. Every type
// resolves to exactly one strategy, decided once at the type boundary and
// cached; misclassification surfaces as an UnsupportedTypeError before any
// value is visited, never as a mid-conversion type switch.
type strategy uint8

const (
	strategyInvalid strategy = iota
	strategyPrimitive
	strategyOptional
	strategyVariant
	strategyTuple
	strategySequence
	strategyMapping
	strategyRecord
	strategyDynamic // interface targets
	strategyOpaque  // convertible only through hooks or the registry
)

// plan is the cached conversion strategy of one native type.
type plan struct {
	typ      reflect.Type
	strategy strategy
	kind     reflect.Kind

	elem     *plan       // optional/sequence element, mapping value
	alts     []*plan     // variant alternatives, in declared order
	items    []fieldPlan // tuple elements
	fields   []fieldPlan // record fields, in declared order
	ordered  bool        // mapping: true for Members, false for Go maps
	fixedLen int         // Go array length, -1 otherwise

	nodeMarshaler   bool
	nodeUnmarshaler bool
	textMarshaler   bool
	textUnmarshaler bool
}

type fieldPlan struct {
	name      string
	index     []int
	plan      *plan
	omitEmpty bool
}

var (
	planCache sync.Map // reflect.Type -> *plan

	nodeMarshalerType   = reflect.TypeFor[NodeMarshaler]()
	nodeUnmarshalerType = reflect.TypeFor[NodeUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	variantType         = reflect.TypeFor[variantValue]()
	tupleType           = reflect.TypeFor[tupleValue]()
	pairType            = reflect.TypeFor[pairValue]()
)

// planOf resolves the conversion strategy for t, once, and caches it.
func planOf(t reflect.Type) (*plan, error) {
	if p, ok := planCache.Load(t); ok {
		return p.(*plan), nil
	}
	p, err := buildPlan(t, map[reflect.Type]*plan{})
	if err != nil {
		return nil, err
	}
	planCache.Store(t, p)
	return p, nil
}

func buildPlan(t reflect.Type, seen map[reflect.Type]*plan) (*plan, error) {
	if p, ok := seen[t]; ok {
		return p, nil
	}
	p := &plan{typ: t, kind: t.Kind(), fixedLen: -1}
	seen[t] = p

	ptr := reflect.PointerTo(t)
	p.nodeMarshaler = t.Implements(nodeMarshalerType) || ptr.Implements(nodeMarshalerType)
	p.nodeUnmarshaler = ptr.Implements(nodeUnmarshalerType)
	p.textMarshaler = t.Implements(textMarshalerType) || ptr.Implements(textMarshalerType)
	p.textUnmarshaler = ptr.Implements(textUnmarshalerType)

	var err error
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		p.strategy = strategyPrimitive

	case reflect.Pointer:
		p.strategy = strategyOptional
		if p.elem, err = buildPlan(t.Elem(), seen); err != nil {
			return nil, err
		}

	case reflect.Interface:
		p.strategy = strategyDynamic

	case reflect.Slice:
		// The pair check must not see *Entry: value-receiver methods
		// promote to the pointer type, but Field below needs a struct.
		if t.Elem().Kind() == reflect.Struct && t.Elem().Implements(pairType) {
			p.strategy = strategyMapping
			p.ordered = true
			if p.elem, err = buildPlan(t.Elem().Field(1).Type, seen); err != nil {
				return nil, err
			}
			break
		}
		p.strategy = strategySequence
		if p.elem, err = buildPlan(t.Elem(), seen); err != nil {
			return nil, err
		}

	case reflect.Array:
		p.strategy = strategySequence
		p.fixedLen = t.Len()
		if p.elem, err = buildPlan(t.Elem(), seen); err != nil {
			return nil, err
		}

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return p, p.opaqueOr(t)
		}
		p.strategy = strategyMapping
		if p.elem, err = buildPlan(t.Elem(), seen); err != nil {
			return nil, err
		}

	case reflect.Struct:
		switch {
		case ptr.Implements(variantType):
			p.strategy = strategyVariant
			alts := reflect.New(t).Interface().(variantValue).variantAlts()
			p.alts = make([]*plan, len(alts))
			for i, at := range alts {
				if p.alts[i], err = buildPlan(at, seen); err != nil {
					return nil, err
				}
			}
		case t.Implements(tupleType):
			p.strategy = strategyTuple
			if p.items, err = structFields(t, seen); err != nil {
				return nil, err
			}
		default:
			p.strategy = strategyRecord
			if p.fields, err = structFields(t, seen); err != nil {
				return nil, err
			}
		}

	default:
		// chan, func, complex, unsafe pointer
		return p, p.opaqueOr(t)
	}
	return p, nil
}

// opaqueOr downgrades an unclassifiable type to strategyOpaque when a hook
// or registry entry can still convert it; otherwise it is rejected.
func (p *plan) opaqueOr(t reflect.Type) error {
	if p.nodeMarshaler || p.nodeUnmarshaler || p.textMarshaler || p.textUnmarshaler || hasCustom(t) {
		p.strategy = strategyOpaque
		return nil
	}
	return &UnsupportedTypeError{Type: t}
}

// structFields collects the exported fields of a struct in declared order,
// flattening one level of embedded structs, with jdoc tag handling.
func structFields(t reflect.Type, seen map[reflect.Type]*plan) ([]fieldPlan, error) {
	var fields []fieldPlan
	names := map[string]bool{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous {
			if field.Type.Kind() != reflect.Struct {
				continue
			}
			embedded, err := structFields(field.Type, seen)
			if err != nil {
				return nil, err
			}
			for _, ef := range embedded {
				if names[ef.name] {
					return nil, fmt.Errorf("field name conflict: embedded struct field %q conflicts with existing field", ef.name)
				}
				names[ef.name] = true
				ef.index = append(append([]int{}, field.Index...), ef.index...)
				fields = append(fields, ef)
			}
			continue
		}

		name := field.Name
		omitEmpty := false
		if tag := field.Tag.Get(TagKey); tag != "" {
			parsed, err := ParseStructTag(tag)
			if err != nil {
				return nil, err
			}
			if _, omit := parsed["omit"]; omit {
				continue
			}
			if renamed, ok := parsed["field"]; ok && renamed != "" && renamed != "-" {
				name = renamed
			}
			_, omitEmpty = parsed["omitempty"]
		}
		if names[name] {
			return nil, fmt.Errorf("field name conflict: duplicate field %q", name)
		}
		names[name] = true

		fp, err := buildPlan(field.Type, seen)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fieldPlan{
			name:      name,
			index:     field.Index,
			plan:      fp,
			omitEmpty: omitEmpty,
		})
	}
	return fields, nil
}

// accepts reports whether the node's tag or container shape structurally
// matches the plan. Variant probing uses this: a match commits, it does
// not try to decode and fall through.
func (p *plan) accepts(n *ir.Node) bool {
	switch p.strategy {
	case strategyPrimitive:
		switch p.kind {
		case reflect.Bool:
			return n.Type == ir.BoolType
		case reflect.String:
			return n.Type == ir.StringType
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return n.Type == ir.UintType
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return n.Type.IsIntegral()
		case reflect.Float32, reflect.Float64:
			return n.Type.IsNumber()
		}
	case strategyOptional:
		return n.Type == ir.NullType || p.elem.accepts(n)
	case strategyVariant:
		for _, alt := range p.alts {
			if alt.accepts(n) {
				return true
			}
		}
	case strategyTuple:
		return n.Type == ir.ArrayType && len(n.Values) == len(p.items)
	case strategySequence:
		return n.Type == ir.ArrayType && (p.fixedLen < 0 || len(n.Values) == p.fixedLen)
	case strategyMapping, strategyRecord:
		return n.Type == ir.ObjectType
	case strategyDynamic, strategyOpaque:
		return true
	}
	return false
}
