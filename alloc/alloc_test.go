package alloc

import (
	"errors"
	"testing"

	"github.com/jdoc-format/go-jdoc/ir"
)

func TestGrowableGrows(t *testing.T) {
	a := New(Growable{Initial: 4})
	for i := 0; i < 100; i++ {
		n, err := a.Node()
		if err != nil {
			t.Fatalf("Node() error at %d: %v", i, err)
		}
		n.Type = ir.UintType
		n.Uint = uint64(i)
	}
	if a.Size() != 100 {
		t.Errorf("Size() = %d, want 100", a.Size())
	}
	if a.Capacity() < 100 {
		t.Errorf("Capacity() = %d, want >= 100", a.Capacity())
	}
}

func TestFixedHeapCapacity(t *testing.T) {
	a := New(FixedHeap{Limit: 3})
	for i := 0; i < 3; i++ {
		if _, err := a.Node(); err != nil {
			t.Fatalf("Node() error at %d: %v", i, err)
		}
	}
	_, err := a.Node()
	var ce *CapacityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if ce.Capacity != 3 {
		t.Errorf("CapacityError.Capacity = %d, want 3", ce.Capacity)
	}
}

func TestBufferArenaNeverAllocates(t *testing.T) {
	buf := make([]ir.Node, 2)
	a := NewFromBuffer(buf)
	n1, err := a.Node()
	if err != nil {
		t.Fatal(err)
	}
	if n1 != &buf[0] {
		t.Errorf("first node should come from the caller's buffer")
	}
	if _, err := a.Node(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Node(); err == nil {
		t.Fatalf("expected CapacityError past the buffer end")
	}
}

func TestResetBumpsGenerationAndZeroesReuse(t *testing.T) {
	a := New(Growable{})
	n, err := a.Node()
	if err != nil {
		t.Fatal(err)
	}
	n.Type = ir.StringType
	n.Str = "stale"
	gen := a.Generation()

	a.Reset()
	if a.Generation() == gen {
		t.Errorf("Reset should bump the generation")
	}
	if a.Size() != 0 {
		t.Errorf("Size() = %d after Reset, want 0", a.Size())
	}

	n2, err := a.Node()
	if err != nil {
		t.Fatal(err)
	}
	if n2.Type != ir.NullType || n2.Str != "" {
		t.Errorf("reused node not zeroed: %+v", n2)
	}
}

func TestReleaseAndReuse(t *testing.T) {
	a := New(Growable{})
	if _, err := a.Node(); err != nil {
		t.Fatal(err)
	}
	gen := a.Generation()
	a.Release()
	if a.Generation() == gen {
		t.Errorf("Release should bump the generation")
	}
	if a.Capacity() != 0 {
		t.Errorf("Capacity() = %d after Release, want 0", a.Capacity())
	}
	// The arena is still usable.
	if _, err := a.Node(); err != nil {
		t.Fatalf("Node() after Release: %v", err)
	}
}

func TestDisownKeepsNodesOutOfPool(t *testing.T) {
	a := New(Growable{})
	n, err := a.Node()
	if err != nil {
		t.Fatal(err)
	}
	n.Type = ir.StringType
	n.Str = "moved"
	a.Disown()
	if a.Capacity() != 0 {
		t.Errorf("Capacity() = %d after Disown, want 0", a.Capacity())
	}
	if n.Str != "moved" {
		t.Errorf("disowned node was touched")
	}
}

func TestReserveFor(t *testing.T) {
	a := New(FixedHeap{Limit: 4})
	if err := a.ReserveFor(make([]byte, 100)); err == nil {
		t.Errorf("ReserveFor should fail up front when the policy cannot fit the estimate")
	}
	b := New(FixedHeap{Limit: 64})
	if err := b.ReserveFor(make([]byte, 100)); err != nil {
		t.Errorf("ReserveFor error: %v", err)
	}
}
