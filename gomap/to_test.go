package gomap

import (
	"errors"
	"testing"

	"github.com/jdoc-format/go-jdoc/encode"
	"github.com/jdoc-format/go-jdoc/ir"
)

func mustRender(t *testing.T, n *ir.Node) string {
	t.Helper()
	s, err := encode.String(n)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToNodeScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *ir.Node
	}{
		{"nil", nil, ir.Null()},
		{"bool", true, ir.FromBool(true)},
		{"int", 42, ir.FromInt(42)},
		{"negative int", -42, ir.FromInt(-42)},
		{"uint", uint(7), ir.FromUint(7)},
		{"uint64 max", uint64(1<<64 - 1), ir.FromUint(1<<64 - 1)},
		{"float", 2.5, ir.FromFloat(2.5)},
		{"string", "hi", ir.FromString("hi")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToNode(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("ToNode(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToNodeContainers(t *testing.T) {
	got, err := ToNode(map[string][]int{"b": {2}, "a": {1}})
	if err != nil {
		t.Fatal(err)
	}
	// Go maps serialize with sorted keys.
	if s := mustRender(t, got); s != `{"a":[1],"b":[2]}` {
		t.Errorf("map output = %s", s)
	}

	got, err = ToNode([3]string{"x", "y", "z"})
	if err != nil {
		t.Fatal(err)
	}
	if s := mustRender(t, got); s != `["x","y","z"]` {
		t.Errorf("array output = %s", s)
	}

	var nilSlice []int
	got, err = ToNode(nilSlice)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != ir.NullType {
		t.Errorf("nil slice should serialize to null, got %v", got.Type)
	}
}

type address struct {
	Street string `jdoc:"field=street"`
	City   string `jdoc:"field=city,omitempty"`
}

type person struct {
	ID      int      `jdoc:"field=id"`
	Tags    []string `jdoc:"field=tags"`
	Addr    *address `jdoc:"field=addr,omitempty"`
	Skipped string   `jdoc:"omit"`
	hidden  int
}

func TestToNodeRecord(t *testing.T) {
	p := person{ID: 1, Tags: []string{"a", "b"}, Skipped: "no", hidden: 9}
	got, err := ToNode(p)
	if err != nil {
		t.Fatal(err)
	}
	if s := mustRender(t, got); s != `{"id":1,"tags":["a","b"]}` {
		t.Errorf("record output = %s", s)
	}

	p.Addr = &address{Street: "main"}
	got, err = ToNode(p)
	if err != nil {
		t.Fatal(err)
	}
	if s := mustRender(t, got); s != `{"id":1,"tags":["a","b"],"addr":{"street":"main"}}` {
		t.Errorf("record with pointer = %s", s)
	}
}

type base struct {
	Kind string `jdoc:"field=kind"`
}

type derived struct {
	base
	Name string `jdoc:"field=name"`
}

func TestToNodeEmbedded(t *testing.T) {
	got, err := ToNode(derived{base: base{Kind: "k"}, Name: "n"})
	if err != nil {
		t.Fatal(err)
	}
	if s := mustRender(t, got); s != `{"kind":"k","name":"n"}` {
		t.Errorf("embedded output = %s", s)
	}
}

func TestToNodeTuple(t *testing.T) {
	got, err := ToNode(Tuple2[string, int]{A: "x", B: 3})
	if err != nil {
		t.Fatal(err)
	}
	if s := mustRender(t, got); s != `["x",3]` {
		t.Errorf("tuple output = %s", s)
	}
}

func TestToNodeMembersOrderAndDuplicates(t *testing.T) {
	m := Members[int]{
		{Key: "z", Value: 1},
		{Key: "a", Value: 2},
		{Key: "z", Value: 3},
	}
	got, err := ToNode(m)
	if err != nil {
		t.Fatal(err)
	}
	if s := mustRender(t, got); s != `{"z":1,"a":2,"z":3}` {
		t.Errorf("members output = %s", s)
	}
}

func TestToNodeEntryPointerSlice(t *testing.T) {
	// A slice of *Entry is a plain sequence of records, not an ordered
	// mapping; it must classify cleanly rather than blow up in reflect.
	got, err := ToNode([]*Entry[int]{{Key: "a", Value: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if s := mustRender(t, got); s != `[{"Key":"a","Value":1}]` {
		t.Errorf("entry pointer slice output = %s", s)
	}
}

func TestToNodeVariant(t *testing.T) {
	var v OneOf2[int, string]
	got, err := ToNode(v)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != ir.NullType {
		t.Errorf("unset variant should serialize to null")
	}
	v.Set2("s")
	got, err = ToNode(v)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != ir.StringType || got.Str != "s" {
		t.Errorf("variant output = %+v", got)
	}
}

func TestToNodeCycleDetected(t *testing.T) {
	type link struct {
		Next *link `jdoc:"field=next"`
	}
	l := &link{}
	l.Next = l
	_, err := ToNode(l)
	if err == nil {
		t.Fatalf("cycle should be an error")
	}
	var me *MarshalError
	if !errors.As(err, &me) {
		t.Errorf("error is %T, want *MarshalError", err)
	}
}

type upperString string

func (u upperString) MarshalText() ([]byte, error) {
	return []byte("U:" + string(u)), nil
}

func TestToNodeTextMarshaler(t *testing.T) {
	got, err := ToNode(upperString("x"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != ir.StringType || got.Str != "U:x" {
		t.Errorf("TextMarshaler output = %+v", got)
	}
}

type selfNode struct{ N uint64 }

func (s selfNode) ToNode() (*ir.Node, error) {
	return ir.FromUint(s.N * 2), nil
}

func TestToNodeNodeMarshalerWins(t *testing.T) {
	got, err := ToNode(selfNode{N: 21})
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != ir.UintType || got.Uint != 42 {
		t.Errorf("NodeMarshaler output = %+v", got)
	}
}

func TestToNodeUnsupported(t *testing.T) {
	_, err := ToNode(make(chan int))
	if err == nil {
		t.Fatalf("channels should be unsupported")
	}
}
