package ir

import (
	"reflect"
	"testing"
)

func obj(members ...Member) *Node {
	return FromMembers(members)
}

func TestGetFirstMatch(t *testing.T) {
	n := obj(
		Member{Key: "a", Val: FromUint(1)},
		Member{Key: "b", Val: FromUint(2)},
		Member{Key: "a", Val: FromUint(3)},
	)
	got := Get(n, "a")
	if got == nil || got.Uint != 1 {
		t.Fatalf("Get(a) = %v, want first member (1)", got)
	}
	if Get(n, "missing") != nil {
		t.Errorf("Get(missing) should be nil")
	}
}

func TestDuplicateMembersPreserved(t *testing.T) {
	n := obj(
		Member{Key: "k", Val: FromUint(1)},
		Member{Key: "k", Val: FromUint(2)},
	)
	if len(n.Fields) != 2 || len(n.Values) != 2 {
		t.Fatalf("expected 2 members, got %d/%d", len(n.Fields), len(n.Values))
	}
	if n.Fields[0].Str != "k" || n.Fields[1].Str != "k" {
		t.Errorf("duplicate keys not preserved")
	}
}

func TestAddSetRemoveMember(t *testing.T) {
	n := obj(Member{Key: "a", Val: FromUint(1)})

	n.AddMember("a", FromUint(2))
	if len(n.Values) != 2 {
		t.Fatalf("AddMember should append, got %d members", len(n.Values))
	}

	old := n.SetMember("a", FromUint(9))
	if old == nil || old.Uint != 1 {
		t.Errorf("SetMember should replace first match and return old, got %v", old)
	}
	if Get(n, "a").Uint != 9 {
		t.Errorf("SetMember did not install new value")
	}

	if !n.RemoveMember("a") {
		t.Fatalf("RemoveMember(a) = false")
	}
	if len(n.Values) != 1 || Get(n, "a").Uint != 2 {
		t.Errorf("RemoveMember should drop only the first match")
	}
	if n.RemoveMember("zzz") {
		t.Errorf("RemoveMember(zzz) = true")
	}
}

func TestArrayMutatorsReindex(t *testing.T) {
	n := FromSlice([]*Node{FromUint(0), FromUint(1), FromUint(2)})
	n.InsertElem(1, FromUint(9))
	want := []uint64{0, 9, 1, 2}
	for i, w := range want {
		v := n.At(i)
		if v.Uint != w {
			t.Fatalf("after insert, elem %d = %d, want %d", i, v.Uint, w)
		}
		if v.ParentIndex != i {
			t.Errorf("elem %d has ParentIndex %d", i, v.ParentIndex)
		}
	}
	removed := n.RemoveElem(0)
	if removed.Uint != 0 || removed.Parent != nil {
		t.Errorf("RemoveElem should detach the element")
	}
	for i := 0; i < 3; i++ {
		if n.At(i).ParentIndex != i {
			t.Errorf("after remove, elem %d has ParentIndex %d", i, n.At(i).ParentIndex)
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	n := FromSlice([]*Node{FromUint(1)})
	if n.At(-1) != nil || n.At(1) != nil {
		t.Errorf("At out of range should be nil")
	}
}

func TestCloneDetachedDeep(t *testing.T) {
	inner := FromSlice([]*Node{FromString("x")})
	n := obj(Member{Key: "list", Val: inner})
	c := n.Clone()
	if c.Parent != nil {
		t.Errorf("clone should be detached")
	}
	if !Equal(n, c) {
		t.Fatalf("clone should compare equal")
	}
	c.Values[0].Values[0].Str = "y"
	if Equal(n, c) {
		t.Errorf("mutating the clone must not affect the original")
	}
}

func TestFromMapSortsKeys(t *testing.T) {
	n := FromMap(map[string]*Node{
		"b": FromUint(2),
		"a": FromUint(1),
		"c": FromUint(3),
	})
	var keys []string
	for _, f := range n.Fields {
		keys = append(keys, f.Str)
	}
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Errorf("FromMap keys = %v, want sorted", keys)
	}
}

func TestVisitOrder(t *testing.T) {
	n := obj(Member{Key: "a", Val: FromSlice([]*Node{FromUint(1)})})
	var pre, post int
	err := n.Visit(func(y *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pre != post {
		t.Errorf("pre (%d) and post (%d) visit counts differ", pre, post)
	}
	if pre < 3 {
		t.Errorf("expected at least 3 nodes visited, got %d", pre)
	}
}

func TestRoot(t *testing.T) {
	leaf := FromUint(7)
	n := obj(Member{Key: "x", Val: FromSlice([]*Node{leaf})})
	if leaf.Root() != n {
		t.Errorf("Root() should find the top of the tree")
	}
}
