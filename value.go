package jdoc

import (
	"iter"
	"strconv"
	"strings"

	"github.com/jdoc-format/go-jdoc/encode"
	"github.com/jdoc-format/go-jdoc/gomap"
	"github.com/jdoc-format/go-jdoc/ir"
)

// Value is a read-only view of one node. It borrows the underlying tree:
// a Value stays cheap to copy and pass around, but it must not outlive the
// document (or node) it was taken from.
type Value struct {
	n *ir.Node
}

// ValueOf wraps a node in a read-only view.
func ValueOf(n *ir.Node) Value {
	if n == nil {
		n = ir.Null()
	}
	return Value{n: n}
}

// Node exposes the underlying node for interop with the ir package.
// Mutating it breaks the read-only contract.
func (v Value) Node() *ir.Node { return v.n }

func (v Value) Type() ir.Type { return v.n.Type }

func (v Value) IsNull() bool      { return v.n.Type == ir.NullType }
func (v Value) IsBool() bool      { return v.n.Type == ir.BoolType }
func (v Value) IsUint() bool      { return v.n.Type == ir.UintType }
func (v Value) IsInt() bool       { return v.n.Type == ir.IntType }
func (v Value) IsFloat() bool     { return v.n.Type == ir.FloatType }
func (v Value) IsString() bool    { return v.n.Type == ir.StringType }
func (v Value) IsNumber() bool    { return v.n.Type.IsNumber() }
func (v Value) IsIntegral() bool  { return v.n.Type.IsIntegral() }
func (v Value) IsArray() bool     { return v.n.Type == ir.ArrayType }
func (v Value) IsObject() bool    { return v.n.Type == ir.ObjectType }
func (v Value) IsContainer() bool { return v.n.Type.IsContainer() }

// AsBool returns the value exactly as stored; ok is false unless the node
// is a bool. The other As accessors follow the same contract: the
// conversion succeeds only when it is lossless.
func (v Value) AsBool() (bool, bool) {
	return v.n.Bool, v.n.Type == ir.BoolType
}

func (v Value) AsString() (string, bool) {
	return v.n.Str, v.n.Type == ir.StringType
}

func (v Value) AsUint64() (uint64, bool) {
	switch v.n.Type {
	case ir.UintType:
		return v.n.Uint, true
	case ir.IntType:
		if v.n.Int >= 0 {
			return uint64(v.n.Int), true
		}
	case ir.FloatType:
		f := v.n.Float
		if f == float64(uint64(f)) && f >= 0 {
			return uint64(f), true
		}
	}
	return 0, false
}

func (v Value) AsInt64() (int64, bool) {
	switch v.n.Type {
	case ir.UintType:
		if v.n.Uint <= 1<<63-1 {
			return int64(v.n.Uint), true
		}
	case ir.IntType:
		return v.n.Int, true
	case ir.FloatType:
		f := v.n.Float
		if f == float64(int64(f)) {
			return int64(f), true
		}
	}
	return 0, false
}

func (v Value) AsFloat64() (float64, bool) {
	switch v.n.Type {
	case ir.UintType:
		return float64(v.n.Uint), true
	case ir.IntType:
		return float64(v.n.Int), true
	case ir.FloatType:
		return v.n.Float, true
	}
	return 0, false
}

// ToBool coerces to bool, treating null, false, zero, and the empty
// string as false. The other To accessors coerce the same way: best
// effort, zero value on a hopeless mismatch.
func (v Value) ToBool() bool {
	switch v.n.Type {
	case ir.BoolType:
		return v.n.Bool
	case ir.UintType:
		return v.n.Uint != 0
	case ir.IntType:
		return v.n.Int != 0
	case ir.FloatType:
		return v.n.Float != 0
	case ir.StringType:
		return v.n.Str != ""
	case ir.ArrayType:
		return len(v.n.Values) > 0
	case ir.ObjectType:
		return len(v.n.Fields) > 0
	}
	return false
}

func (v Value) ToInt64() int64 {
	if i, ok := v.AsInt64(); ok {
		return i
	}
	if v.n.Type == ir.FloatType {
		return int64(v.n.Float)
	}
	if v.n.Type == ir.StringType {
		i, _ := strconv.ParseInt(v.n.Str, 10, 64)
		return i
	}
	return 0
}

func (v Value) ToUint64() uint64 {
	if u, ok := v.AsUint64(); ok {
		return u
	}
	if v.n.Type == ir.FloatType && v.n.Float >= 0 {
		return uint64(v.n.Float)
	}
	if v.n.Type == ir.StringType {
		u, _ := strconv.ParseUint(v.n.Str, 10, 64)
		return u
	}
	return 0
}

func (v Value) ToFloat64() float64 {
	if f, ok := v.AsFloat64(); ok {
		return f
	}
	if v.n.Type == ir.StringType {
		f, _ := strconv.ParseFloat(v.n.Str, 64)
		return f
	}
	return 0
}

func (v Value) ToString() string {
	switch v.n.Type {
	case ir.StringType:
		return v.n.Str
	default:
		s, err := encode.String(v.n)
		if err != nil {
			return ""
		}
		return s
	}
}

// StringCopy returns the string payload in a fresh allocation, detached
// from any buffer the tree might be borrowing.
func (v Value) StringCopy() (string, bool) {
	if v.n.Type != ir.StringType {
		return "", false
	}
	return strings.Clone(v.n.Str), true
}

// Len is the element count of an array, the member count of an object,
// and zero for leaves.
func (v Value) Len() int {
	if v.n.Type == ir.ObjectType {
		return len(v.n.Fields)
	}
	return len(v.n.Values)
}

// At returns the i'th element of an array, or the i'th member value of an
// object. Out-of-range indexes return a null view.
func (v Value) At(i int) Value {
	return ValueOf(v.n.At(i))
}

// Get returns the value of the first member named key.
func (v Value) Get(key string) (Value, bool) {
	n := ir.Get(v.n, key)
	if n == nil {
		return ValueOf(nil), false
	}
	return ValueOf(n), true
}

// Values iterates over array elements (or object member values) in order.
func (v Value) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, n := range v.n.Values {
			if !yield(ValueOf(n)) {
				return
			}
		}
	}
}

// Members iterates over object members in order, duplicates included.
func (v Value) Members() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, f := range v.n.Fields {
			if !yield(f.Str, ValueOf(v.n.Values[i])) {
				return
			}
		}
	}
}

// Equal compares two values structurally.
func (v Value) Equal(other Value) bool {
	return ir.Equal(v.n, other.n)
}

// Render encodes the value.
func (v Value) Render(opts ...encode.Option) (string, error) {
	return encode.String(v.n, opts...)
}

// Decode converts the value into the native Go value pointed to by dst.
func (v Value) Decode(dst any) error {
	return gomap.FromNode(v.n, dst)
}
