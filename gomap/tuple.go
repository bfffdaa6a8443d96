package gomap

// tupleValue marks the fixed-arity tuple types, which map to and from
// fixed-length arrays.
type tupleValue interface {
	tupleArity() int
}

// Tuple2 maps to a two-element array [A, B].
type Tuple2[A, B any] struct {
	A A
	B B
}

func (Tuple2[A, B]) tupleArity() int { return 2 }

// Tuple3 maps to a three-element array [A, B, C].
type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

func (Tuple3[A, B, C]) tupleArity() int { return 3 }

// Tuple4 maps to a four-element array [A, B, C, D].
type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

func (Tuple4[A, B, C, D]) tupleArity() int { return 4 }
