package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/jdoc-format/go-jdoc/ir"
)

// FromNode converts a node tree into the native Go value pointed to by v.
// Conversions resolve per type, in priority order: registered decoder,
// FromNode method, UnmarshalText method, then the built-in strategy for
// the type's shape. Conversion is tag-directed: a string node never
// decodes into a numeric target, and null decodes only into nullable
// shapes.
func FromNode(node *ir.Node, v any, opts ...Option) error {
	cfg := newConfig(opts)
	if v == nil {
		return &CastError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return &CastError{Message: fmt.Sprintf("destination must be a non-nil pointer, got %T", v)}
	}
	if node == nil {
		node = ir.Null()
	}
	return fromNode(node, val.Elem(), "", cfg)
}

func fromNode(node *ir.Node, val reflect.Value, fieldPath string, cfg *config) error {
	t := val.Type()
	if dec := lookupDecoder(t); dec != nil {
		out, err := dec(node)
		if err != nil {
			return &CastError{FieldPath: fieldPath, Got: node.Type, Err: err}
		}
		val.Set(out)
		return nil
	}
	p, err := planOf(t)
	if err != nil {
		return &CastError{FieldPath: fieldPath, Got: node.Type, Err: err}
	}
	if p.nodeUnmarshaler && val.CanAddr() {
		if err := val.Addr().Interface().(NodeUnmarshaler).FromNode(node); err != nil {
			return &CastError{FieldPath: fieldPath, Got: node.Type, Err: err}
		}
		return nil
	}
	if p.textUnmarshaler && node.Type == ir.StringType && p.kind != reflect.String && val.CanAddr() {
		if err := val.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(node.Str)); err != nil {
			return &CastError{FieldPath: fieldPath, Got: node.Type, Err: err}
		}
		return nil
	}

	if node.Type == ir.NullType {
		return fromNull(val, p, fieldPath)
	}

	switch p.strategy {
	case strategyPrimitive:
		return fromLeaf(node, val, p, fieldPath, cfg)

	case strategyOptional:
		if val.IsNil() {
			val.Set(reflect.New(t.Elem()))
		}
		return fromNode(node, val.Elem(), fieldPath, cfg)

	case strategyVariant:
		return fromVariant(node, val, p, fieldPath, cfg)

	case strategyTuple:
		if node.Type != ir.ArrayType {
			return castErr(fieldPath, node, t)
		}
		if len(node.Values) != len(p.items) {
			return &CastError{
				FieldPath: fieldPath,
				Got:       node.Type,
				Message:   fmt.Sprintf("array has %d elements, %s holds %d", len(node.Values), t, len(p.items)),
			}
		}
		for i, item := range p.items {
			if err := fromNode(node.Values[i], val.FieldByIndex(item.index), childPath(fieldPath, item.name), cfg); err != nil {
				return err
			}
		}
		return nil

	case strategySequence:
		return fromSequence(node, val, p, fieldPath, cfg)

	case strategyMapping:
		if node.Type != ir.ObjectType {
			return castErr(fieldPath, node, t)
		}
		if p.ordered {
			return fromOrderedMapping(node, val, fieldPath, cfg)
		}
		return fromMapping(node, val, fieldPath, cfg)

	case strategyRecord:
		if node.Type != ir.ObjectType {
			return castErr(fieldPath, node, t)
		}
		return fromRecord(node, val, p, fieldPath, cfg)

	case strategyDynamic:
		if t.NumMethod() != 0 {
			return &CastError{
				FieldPath: fieldPath,
				Got:       node.Type,
				Message:   fmt.Sprintf("cannot cast into non-empty interface %s", t),
			}
		}
		out, err := materialize(node, cfg)
		if err != nil {
			return err
		}
		if out == nil {
			val.Set(reflect.Zero(t))
		} else {
			val.Set(reflect.ValueOf(out))
		}
		return nil
	}
	return &CastError{FieldPath: fieldPath, Got: node.Type, Err: &UnsupportedTypeError{Type: t}}
}

// fromNull enforces the null policy: null lands only in nullable shapes.
// Pointers, slices, maps, and interfaces become their zero value, a
// variant becomes unset, everything else is a cast error.
func fromNull(val reflect.Value, p *plan, fieldPath string) error {
	switch p.strategy {
	case strategyOptional, strategyDynamic:
		val.Set(reflect.Zero(val.Type()))
		return nil
	case strategySequence, strategyMapping:
		if p.kind == reflect.Slice || p.kind == reflect.Map {
			val.Set(reflect.Zero(val.Type()))
			return nil
		}
	case strategyVariant:
		val.Set(reflect.Zero(val.Type()))
		return nil
	}
	return &CastError{
		FieldPath: fieldPath,
		Want:      val.Type().String(),
		Got:       ir.NullType,
	}
}

func fromLeaf(node *ir.Node, val reflect.Value, p *plan, fieldPath string, cfg *config) error {
	t := val.Type()
	switch p.kind {
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return castErr(fieldPath, node, t)
		}
		val.SetBool(node.Bool)
		return nil

	case reflect.String:
		if node.Type != ir.StringType {
			return castErr(fieldPath, node, t)
		}
		s := node.Str
		if cfg.copyStrings {
			s = strings.Clone(s)
		}
		val.SetString(s)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := intFromNode(node, fieldPath, t)
		if err != nil {
			return err
		}
		if val.OverflowInt(i) {
			return overflowErr(fieldPath, node, t)
		}
		val.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := uintFromNode(node, fieldPath, t)
		if err != nil {
			return err
		}
		if val.OverflowUint(u) {
			return overflowErr(fieldPath, node, t)
		}
		val.SetUint(u)
		return nil

	default: // float32, float64
		var f float64
		switch node.Type {
		case ir.UintType:
			f = float64(node.Uint)
		case ir.IntType:
			f = float64(node.Int)
		case ir.FloatType:
			f = node.Float
		default:
			return castErr(fieldPath, node, t)
		}
		if val.OverflowFloat(f) {
			return overflowErr(fieldPath, node, t)
		}
		val.SetFloat(f)
		return nil
	}
}

func intFromNode(node *ir.Node, fieldPath string, t reflect.Type) (int64, error) {
	switch node.Type {
	case ir.IntType:
		return node.Int, nil
	case ir.UintType:
		if node.Uint > math.MaxInt64 {
			return 0, overflowErr(fieldPath, node, t)
		}
		return int64(node.Uint), nil
	case ir.FloatType:
		f := math.Trunc(node.Float)
		if math.IsNaN(f) || f >= float64(math.MaxInt64) || f < float64(math.MinInt64) {
			return 0, overflowErr(fieldPath, node, t)
		}
		return int64(f), nil
	}
	return 0, castErr(fieldPath, node, t)
}

func uintFromNode(node *ir.Node, fieldPath string, t reflect.Type) (uint64, error) {
	switch node.Type {
	case ir.UintType:
		return node.Uint, nil
	case ir.IntType:
		if node.Int < 0 {
			return 0, overflowErr(fieldPath, node, t)
		}
		return uint64(node.Int), nil
	case ir.FloatType:
		f := math.Trunc(node.Float)
		if math.IsNaN(f) || f < 0 || f >= float64(math.MaxUint64) {
			return 0, overflowErr(fieldPath, node, t)
		}
		return uint64(f), nil
	}
	return 0, castErr(fieldPath, node, t)
}

// fromVariant commits to the first alternative whose plan structurally
// accepts the node; a decode failure inside that alternative propagates
// rather than falling through to later alternatives.
func fromVariant(node *ir.Node, val reflect.Value, p *plan, fieldPath string, cfg *config) error {
	for i, alt := range p.alts {
		if !alt.accepts(node) {
			continue
		}
		dst := reflect.New(alt.typ).Elem()
		if err := fromNode(node, dst, fieldPath, cfg); err != nil {
			return err
		}
		if !val.CanAddr() {
			return &CastError{FieldPath: fieldPath, Got: node.Type, Message: "variant destination is not addressable"}
		}
		val.Addr().Interface().(variantValue).setVariant(i+1, dst.Interface())
		return nil
	}
	names := make([]string, len(p.alts))
	for i, alt := range p.alts {
		names[i] = alt.typ.String()
	}
	return &CastError{
		FieldPath: fieldPath,
		Got:       node.Type,
		Message:   fmt.Sprintf("%s node matches none of the alternatives (%s)", node.Type, strings.Join(names, ", ")),
	}
}

func fromSequence(node *ir.Node, val reflect.Value, p *plan, fieldPath string, cfg *config) error {
	if node.Type != ir.ArrayType {
		return castErr(fieldPath, node, val.Type())
	}
	n := len(node.Values)
	if p.fixedLen >= 0 {
		if n != p.fixedLen {
			return &CastError{
				FieldPath: fieldPath,
				Got:       node.Type,
				Message:   fmt.Sprintf("array has %d elements, %s holds %d", n, val.Type(), p.fixedLen),
			}
		}
	} else {
		val.Set(reflect.MakeSlice(val.Type(), n, n))
	}
	for i := 0; i < n; i++ {
		if err := fromNode(node.Values[i], val.Index(i), childPath(fieldPath, fmt.Sprintf("[%d]", i)), cfg); err != nil {
			return err
		}
	}
	return nil
}

func fromMapping(node *ir.Node, val reflect.Value, fieldPath string, cfg *config) error {
	t := val.Type()
	out := reflect.MakeMapWithSize(t, len(node.Fields))
	for i, field := range node.Fields {
		elem := reflect.New(t.Elem()).Elem()
		if err := fromNode(node.Values[i], elem, childPath(fieldPath, field.Str), cfg); err != nil {
			return err
		}
		k := field.Str
		if cfg.copyStrings {
			k = strings.Clone(k)
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
	}
	val.Set(out)
	return nil
}

// fromOrderedMapping fills a Members slice one entry per member, keeping
// duplicate keys and their order exactly as the node holds them.
func fromOrderedMapping(node *ir.Node, val reflect.Value, fieldPath string, cfg *config) error {
	t := val.Type()
	n := len(node.Fields)
	out := reflect.MakeSlice(t, n, n)
	for i, field := range node.Fields {
		entry := out.Index(i)
		k := field.Str
		if cfg.copyStrings {
			k = strings.Clone(k)
		}
		entry.Field(0).SetString(k)
		if err := fromNode(node.Values[i], entry.Field(1), childPath(fieldPath, field.Str), cfg); err != nil {
			return err
		}
	}
	val.Set(out)
	return nil
}

// fromRecord fills struct fields by name. Unknown keys are skipped, absent
// fields keep their zero value, and a repeated key decodes again so the
// last occurrence wins.
func fromRecord(node *ir.Node, val reflect.Value, p *plan, fieldPath string, cfg *config) error {
	byName := make(map[string]*fieldPlan, len(p.fields))
	for i := range p.fields {
		byName[p.fields[i].name] = &p.fields[i]
	}
	for i, field := range node.Fields {
		fp, ok := byName[field.Str]
		if !ok {
			continue
		}
		if err := fromNode(node.Values[i], val.FieldByIndex(fp.index), childPath(fieldPath, fp.name), cfg); err != nil {
			return err
		}
	}
	return nil
}

// materialize builds the default dynamic representation of a node: nil,
// bool, uint64, int64, float64, string, []any, or map[string]any.
func materialize(node *ir.Node, cfg *config) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.UintType:
		return node.Uint, nil
	case ir.IntType:
		return node.Int, nil
	case ir.FloatType:
		return node.Float, nil
	case ir.StringType:
		if cfg.copyStrings {
			return strings.Clone(node.Str), nil
		}
		return node.Str, nil
	case ir.ArrayType:
		out := make([]any, len(node.Values))
		for i, v := range node.Values {
			elem, err := materialize(v, cfg)
			if err != nil {
				return nil, err
			}
			out[i] = elem
		}
		return out, nil
	case ir.ObjectType:
		out := make(map[string]any, len(node.Fields))
		for i, field := range node.Fields {
			v, err := materialize(node.Values[i], cfg)
			if err != nil {
				return nil, err
			}
			k := field.Str
			if cfg.copyStrings {
				k = strings.Clone(k)
			}
			out[k] = v
		}
		return out, nil
	}
	return nil, &CastError{Got: node.Type, Message: fmt.Sprintf("unknown node type %d", node.Type)}
}

func castErr(fieldPath string, node *ir.Node, t reflect.Type) error {
	return &CastError{FieldPath: fieldPath, Want: t.String(), Got: node.Type}
}

func overflowErr(fieldPath string, node *ir.Node, t reflect.Type) error {
	return &CastError{
		FieldPath: fieldPath,
		Want:      t.String(),
		Got:       node.Type,
		Message:   fmt.Sprintf("%s value does not fit in %s", node.Type, t),
	}
}
