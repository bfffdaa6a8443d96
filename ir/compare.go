package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Types order as Null < Bool < numbers < String < Array < Object; the
// numeric tags compare by value, not by representation.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case UintType, IntType, FloatType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.Str, b.Str)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case UintType, IntType, FloatType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.Type == FloatType || b.Type == FloatType {
		return cmp.Compare(numFloat(a), numFloat(b))
	}
	// Both integral. Mixed signedness only matters when the signed side is
	// negative or the unsigned side exceeds MaxInt64.
	switch {
	case a.Type == IntType && a.Int < 0:
		if b.Type == IntType && b.Int < 0 {
			return cmp.Compare(a.Int, b.Int)
		}
		return -1
	case b.Type == IntType && b.Int < 0:
		return 1
	default:
		return cmp.Compare(numUint(a), numUint(b))
	}
}

func numFloat(n *Node) float64 {
	switch n.Type {
	case UintType:
		return float64(n.Uint)
	case IntType:
		return float64(n.Int)
	default:
		return n.Float
	}
}

func numUint(n *Node) uint64 {
	if n.Type == IntType {
		return uint64(n.Int)
	}
	return n.Uint
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// Equal reports whether two subtrees hold the same values in the same
// order. Numeric nodes with different tags compare equal when they denote
// the same number.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}
