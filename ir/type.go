package ir

import "fmt"

// Type is the tag of a Node.
type Type int

const (
	NullType Type = iota
	BoolType
	UintType
	IntType
	FloatType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		UintType:   "Uint",
		IntType:    "Int",
		FloatType:  "Float",
		StringType: "String",
		ArrayType:  "Array",
		ObjectType: "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Uint":   UintType,
		"Int":    IntType,
		"Float":  FloatType,
		"String": StringType,
		"Array":  ArrayType,
		"Object": ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		UintType,
		IntType,
		FloatType,
		StringType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}

// IsNumber reports whether the tag is one of the numeric tags.
func (t Type) IsNumber() bool {
	switch t {
	case UintType, IntType, FloatType:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether the tag is an integer tag.
func (t Type) IsIntegral() bool {
	return t == UintType || t == IntType
}

// IsContainer reports whether the tag is Array or Object.
func (t Type) IsContainer() bool {
	return t == ArrayType || t == ObjectType
}
