package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type ranking: Null < Bool < numbers < String < Array < Object
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(-1), -1},
		{"Number < String", FromUint(1), FromString("a"), -1},
		{"String < Array", FromString("a"), FromSlice(nil), -1},
		{"Array < Object", FromSlice(nil), FromMembers(nil), -1},

		// Bool comparison
		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},

		// Numbers compare by value across tags
		{"Uint == Uint", FromUint(7), FromUint(7), 0},
		{"Int < Uint", FromInt(-1), FromUint(0), -1},
		{"Uint == Float", FromUint(2), FromFloat(2.0), 0},
		{"Int < Float", FromInt(-3), FromFloat(-2.5), -1},
		{"large Uint > Float", FromUint(1 << 63), FromFloat(1.0), 1},

		// String comparison
		{"String < String", FromString("a"), FromString("b"), -1},
		{"String == String", FromString("a"), FromString("a"), 0},

		// Array comparison
		{"empty == empty", FromSlice(nil), FromSlice(nil), 0},
		{"short < long", FromSlice([]*Node{FromUint(1)}), FromSlice([]*Node{FromUint(1), FromUint(2)}), -1},
		{"elementwise", FromSlice([]*Node{FromUint(1)}), FromSlice([]*Node{FromUint(2)}), -1},

		// Object comparison
		{"empty obj == empty obj", FromMembers(nil), FromMembers(nil), 0},
		{"key comparison",
			FromMembers([]Member{{Key: "a", Val: FromUint(1)}}),
			FromMembers([]Member{{Key: "b", Val: FromUint(1)}}),
			-1},
		{"value comparison",
			FromMembers([]Member{{Key: "a", Val: FromUint(1)}}),
			FromMembers([]Member{{Key: "a", Val: FromUint(2)}}),
			-1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestEqualNaN(t *testing.T) {
	nan := FromFloat(nanFloat())
	if Equal(nan, FromFloat(1)) {
		t.Errorf("NaN should not equal 1")
	}
}

func nanFloat() float64 {
	z := 0.0
	return z / z
}
