package jdoc

import (
	"testing"

	"github.com/jdoc-format/go-jdoc/ir"
)

func TestValueAccessors(t *testing.T) {
	d := mustParse(t, `{"u":7,"i":-7,"f":2.5,"s":"x","b":true,"n":null,"a":[1],"o":{}}`)
	defer d.Close()
	v := d.Value()

	u, _ := v.Get("u")
	if !u.IsIntegral() || !u.IsNumber() {
		t.Errorf("u classification wrong")
	}
	if got, ok := u.AsUint64(); !ok || got != 7 {
		t.Errorf("AsUint64 = %d, %v", got, ok)
	}
	if got, ok := u.AsInt64(); !ok || got != 7 {
		t.Errorf("AsInt64 on Uint = %d, %v (lossless widening should work)", got, ok)
	}
	if got, ok := u.AsFloat64(); !ok || got != 7 {
		t.Errorf("AsFloat64 on Uint = %v, %v", got, ok)
	}

	i, _ := v.Get("i")
	if _, ok := i.AsUint64(); ok {
		t.Errorf("AsUint64 on negative Int should fail")
	}

	f, _ := v.Get("f")
	if _, ok := f.AsInt64(); ok {
		t.Errorf("AsInt64 on fractional Float should fail (lossy)")
	}
	if f.ToInt64() != 2 {
		t.Errorf("ToInt64 should truncate, got %d", f.ToInt64())
	}

	s, _ := v.Get("s")
	if got, ok := s.AsString(); !ok || got != "x" {
		t.Errorf("AsString = %q, %v", got, ok)
	}
	if _, ok := s.AsFloat64(); ok {
		t.Errorf("AsFloat64 on string should fail (tag-directed)")
	}
	if s.ToFloat64() != 0 {
		t.Errorf("ToFloat64 on non-numeric string should be 0")
	}

	n, _ := v.Get("n")
	if !n.IsNull() || n.ToBool() {
		t.Errorf("null value wrong")
	}

	a, _ := v.Get("a")
	o, _ := v.Get("o")
	if !a.IsContainer() || !o.IsContainer() || !a.IsArray() || !o.IsObject() {
		t.Errorf("container classification wrong")
	}
}

func TestValueIterators(t *testing.T) {
	d := mustParse(t, `{"k":1,"k":2,"j":3}`)
	defer d.Close()

	var keys []string
	var vals []uint64
	for k, v := range d.Value().Members() {
		keys = append(keys, k)
		u, _ := v.AsUint64()
		vals = append(vals, u)
	}
	if len(keys) != 3 || keys[0] != "k" || keys[1] != "k" || keys[2] != "j" {
		t.Errorf("keys = %v", keys)
	}
	if vals[0] != 1 || vals[1] != 2 || vals[2] != 3 {
		t.Errorf("vals = %v", vals)
	}

	d2 := mustParse(t, `[10,20]`)
	defer d2.Close()
	sum := uint64(0)
	for v := range d2.Value().Values() {
		u, _ := v.AsUint64()
		sum += u
	}
	if sum != 30 {
		t.Errorf("sum = %d", sum)
	}
}

func TestValueEqual(t *testing.T) {
	a := mustParse(t, `{"x":[1,2]}`)
	defer a.Close()
	b := mustParse(t, `{"x":[1,2]}`)
	defer b.Close()
	c := mustParse(t, `{"x":[2,1]}`)
	defer c.Close()
	if !a.Value().Equal(b.Value()) {
		t.Errorf("equal documents compare unequal")
	}
	if a.Value().Equal(c.Value()) {
		t.Errorf("different documents compare equal")
	}
}

func TestValueGetFirstMatch(t *testing.T) {
	d := mustParse(t, `{"k":1,"k":2}`)
	defer d.Close()
	v, ok := d.Value().Get("k")
	if !ok {
		t.Fatal("Get(k) not found")
	}
	if u, _ := v.AsUint64(); u != 1 {
		t.Errorf("Get should return the first match, got %d", u)
	}
}

func TestValueStringCopy(t *testing.T) {
	v := ValueOf(ir.FromString("abc"))
	s, ok := v.StringCopy()
	if !ok || s != "abc" {
		t.Errorf("StringCopy = %q, %v", s, ok)
	}
	if _, ok := ValueOf(ir.FromUint(1)).StringCopy(); ok {
		t.Errorf("StringCopy on a number should fail")
	}
}

func TestRefSetters(t *testing.T) {
	d := mustParse(t, `[null]`)
	defer d.Close()
	arr, _ := d.Root().AsArray()
	el, _ := arr.At(0)

	el.SetBool(true)
	if el.Type() != ir.BoolType {
		t.Errorf("SetBool type = %v", el.Type())
	}
	el.SetString("s")
	el.SetInt(-1)
	el.SetUint(1)
	el.SetFloat(0.5)
	if v, _ := el.Value().AsFloat64(); v != 0.5 {
		t.Errorf("SetFloat value = %v", v)
	}
	obj := el.SetEmptyObject()
	if _, err := obj.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	got, _ := d.Render()
	if got != `[{"k":"v"}]` {
		t.Errorf("Render() = %s", got)
	}
}

func TestRefDeleteAndInsert(t *testing.T) {
	d := mustParse(t, `{"a":1,"b":2}`)
	defer d.Close()
	obj, _ := d.Root().AsObject()
	if !obj.Delete("a") {
		t.Fatal("Delete(a) = false")
	}
	if obj.Delete("zzz") {
		t.Errorf("Delete(zzz) = true")
	}

	d2 := mustParse(t, `[1,3]`)
	defer d2.Close()
	arr, _ := d2.Root().AsArray()
	if _, err := arr.Insert(1, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := arr.Insert(9, 0); err == nil {
		t.Errorf("out of range insert should fail")
	}
	if err := arr.Delete(9); err == nil {
		t.Errorf("out of range delete should fail")
	}
	got, _ := d2.Render()
	if got != `[1,2,3]` {
		t.Errorf("Render() = %s", got)
	}
}
