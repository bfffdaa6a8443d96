package gomap

import (
	"errors"
	"reflect"
	"testing"
)

func TestPlanCached(t *testing.T) {
	p1, err := planOf(reflect.TypeFor[person]())
	if err != nil {
		t.Fatal(err)
	}
	p2, err := planOf(reflect.TypeFor[person]())
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Errorf("plans for the same type should be the same cached object")
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want strategy
	}{
		{"int", reflect.TypeFor[int](), strategyPrimitive},
		{"string", reflect.TypeFor[string](), strategyPrimitive},
		{"pointer", reflect.TypeFor[*int](), strategyOptional},
		{"slice", reflect.TypeFor[[]int](), strategySequence},
		{"go array", reflect.TypeFor[[4]int](), strategySequence},
		{"map", reflect.TypeFor[map[string]int](), strategyMapping},
		{"members", reflect.TypeFor[Members[int]](), strategyMapping},
		{"entry pointer slice", reflect.TypeFor[[]*Entry[int]](), strategySequence},
		{"struct", reflect.TypeFor[person](), strategyRecord},
		{"tuple", reflect.TypeFor[Tuple3[int, int, int]](), strategyTuple},
		{"variant", reflect.TypeFor[OneOf2[int, string]](), strategyVariant},
		{"any", reflect.TypeFor[any](), strategyDynamic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := planOf(tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			if p.strategy != tt.want {
				t.Errorf("strategy = %d, want %d", p.strategy, tt.want)
			}
		})
	}
}

func TestClassificationRejectsUpFront(t *testing.T) {
	// The strategy resolves per type, before any value is visited: a
	// slice of functions fails even when empty.
	_, err := planOf(reflect.TypeFor[[]func()]())
	var ute *UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("error = %v, want *UnsupportedTypeError", err)
	}

	if _, err := planOf(reflect.TypeFor[map[int]string]()); err == nil {
		t.Errorf("non-string map keys should be unsupported")
	}
}

func TestRecursiveTypePlans(t *testing.T) {
	type tree struct {
		Kids []*tree `jdoc:"field=kids,omitempty"`
	}
	p, err := planOf(reflect.TypeFor[tree]())
	if err != nil {
		t.Fatal(err)
	}
	if p.strategy != strategyRecord {
		t.Fatalf("strategy = %d", p.strategy)
	}
	// kids -> slice -> pointer -> back to the same plan
	kid := p.fields[0].plan.elem.elem
	if kid != p {
		t.Errorf("recursive plan should tie back to itself")
	}
}

func TestTupleArityMatchesFields(t *testing.T) {
	p, err := planOf(reflect.TypeFor[Tuple4[int, int, int, int]]())
	if err != nil {
		t.Fatal(err)
	}
	if len(p.items) != 4 {
		t.Errorf("items = %d, want 4", len(p.items))
	}
}
