package gomap

import "reflect"

// variantValue is the internal contract of the OneOf types. Deserialization
// probes the alternatives in declared order and commits to the first whose
// tag or container shape matches the node; two alternatives with
// overlapping shapes resolve to the earlier declaration.
type variantValue interface {
	variantAlts() []reflect.Type
	variantActive() (int, any)
	setVariant(i int, v any)
}

// OneOf2 holds exactly one of two alternatives. The zero value holds
// neither and serializes to null.
type OneOf2[T1, T2 any] struct {
	idx int // 1-based; 0 means unset
	val any
}

func (o *OneOf2[T1, T2]) Set1(v T1) { o.idx, o.val = 1, v }
func (o *OneOf2[T1, T2]) Set2(v T2) { o.idx, o.val = 2, v }

func (o OneOf2[T1, T2]) Get1() (T1, bool) {
	if o.idx == 1 {
		return o.val.(T1), true
	}
	var zero T1
	return zero, false
}

func (o OneOf2[T1, T2]) Get2() (T2, bool) {
	if o.idx == 2 {
		return o.val.(T2), true
	}
	var zero T2
	return zero, false
}

// Index returns the 1-based index of the active alternative, 0 when unset.
func (o OneOf2[T1, T2]) Index() int { return o.idx }

// Value returns the active alternative's value, nil when unset.
func (o OneOf2[T1, T2]) Value() any { return o.val }

func (o *OneOf2[T1, T2]) variantAlts() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[T1](),
		reflect.TypeFor[T2](),
	}
}

func (o *OneOf2[T1, T2]) variantActive() (int, any) { return o.idx, o.val }
func (o *OneOf2[T1, T2]) setVariant(i int, v any)   { o.idx, o.val = i, v }

// OneOf3 holds exactly one of three alternatives.
type OneOf3[T1, T2, T3 any] struct {
	idx int
	val any
}

func (o *OneOf3[T1, T2, T3]) Set1(v T1) { o.idx, o.val = 1, v }
func (o *OneOf3[T1, T2, T3]) Set2(v T2) { o.idx, o.val = 2, v }
func (o *OneOf3[T1, T2, T3]) Set3(v T3) { o.idx, o.val = 3, v }

func (o OneOf3[T1, T2, T3]) Get1() (T1, bool) {
	if o.idx == 1 {
		return o.val.(T1), true
	}
	var zero T1
	return zero, false
}

func (o OneOf3[T1, T2, T3]) Get2() (T2, bool) {
	if o.idx == 2 {
		return o.val.(T2), true
	}
	var zero T2
	return zero, false
}

func (o OneOf3[T1, T2, T3]) Get3() (T3, bool) {
	if o.idx == 3 {
		return o.val.(T3), true
	}
	var zero T3
	return zero, false
}

func (o OneOf3[T1, T2, T3]) Index() int { return o.idx }
func (o OneOf3[T1, T2, T3]) Value() any { return o.val }

func (o *OneOf3[T1, T2, T3]) variantAlts() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[T1](),
		reflect.TypeFor[T2](),
		reflect.TypeFor[T3](),
	}
}

func (o *OneOf3[T1, T2, T3]) variantActive() (int, any) { return o.idx, o.val }
func (o *OneOf3[T1, T2, T3]) setVariant(i int, v any)   { o.idx, o.val = i, v }
