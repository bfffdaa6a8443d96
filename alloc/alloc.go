// Package alloc provides the node allocation policies consumed by the
// parser and the document layer.
//
// An Arena hands out ir.Node values from slabs. The Policy decides how the
// slab set may grow: Growable arenas extend without bound and recycle their
// slabs through a package pool, while the fixed policies cap the node count
// and fail with a CapacityError once exhausted.
//
// Every Reset or Release bumps the arena generation. Handles that captured
// an earlier generation can detect that their backing storage has been
// recycled instead of silently dereferencing reused nodes.
package alloc

import (
	"fmt"
	"sync"

	"github.com/jdoc-format/go-jdoc/ir"
)

const defaultSlabNodes = 256

// CapacityError reports that a fixed-size policy cannot satisfy an
// allocation.
type CapacityError struct {
	Capacity int
	Need     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("arena capacity exhausted: capacity %d nodes, need %d", e.Capacity, e.Need)
}

// Policy decides slab growth for an Arena.
type Policy interface {
	// nextSlab returns the node count of the next slab given the arena's
	// current capacity, or an error when the policy is out of room.
	nextSlab(capacity, need int) (int, error)
}

// Growable grows without bound, doubling the slab size up from Initial.
type Growable struct {
	// Initial is the node count of the first slab; 0 means the package
	// default.
	Initial int
}

func (g Growable) nextSlab(capacity, need int) (int, error) {
	n := g.Initial
	if n <= 0 {
		n = defaultSlabNodes
	}
	for n < capacity || n < need {
		n *= 2
	}
	return n, nil
}

// FixedHeap allocates a single heap slab of Limit nodes and refuses to
// grow beyond it.
type FixedHeap struct {
	Limit int
}

func (f FixedHeap) nextSlab(capacity, need int) (int, error) {
	if capacity > 0 || need > f.Limit {
		return 0, &CapacityError{Capacity: f.Limit, Need: capacity + need}
	}
	return f.Limit, nil
}

// fixedBuffer serves allocations from a caller-owned slice and never
// allocates. It backs NewFromBuffer.
type fixedBuffer struct{ size int }

func (f fixedBuffer) nextSlab(capacity, need int) (int, error) {
	return 0, &CapacityError{Capacity: f.size, Need: capacity + need}
}

var slabPool = sync.Pool{
	New: func() any { return make([]ir.Node, defaultSlabNodes) },
}

// Arena allocates nodes from slabs under a Policy.
type Arena struct {
	policy Policy
	slabs  [][]ir.Node
	cur    []ir.Node // unused tail of the last slab
	size   int
	cap    int
	gen    uint32
	pooled bool // slabs are defaultSlabNodes-sized and may be pooled
}

// New returns an arena governed by the given policy. A nil policy means
// Growable with the default slab size.
func New(policy Policy) *Arena {
	if policy == nil {
		policy = Growable{}
	}
	g, growable := policy.(Growable)
	return &Arena{
		policy: policy,
		pooled: growable && (g.Initial <= 0 || g.Initial == defaultSlabNodes),
	}
}

// NewFromBuffer returns a fixed arena serving nodes from buf. The caller
// keeps ownership of buf; the arena never allocates. This is the
// stack-friendly policy: buf may be a local array's slice.
func NewFromBuffer(buf []ir.Node) *Arena {
	return &Arena{
		policy: fixedBuffer{size: len(buf)},
		slabs:  [][]ir.Node{buf},
		cur:    buf,
		cap:    len(buf),
	}
}

// Node returns a zeroed node. It fails only under a fixed policy that is
// out of room.
func (a *Arena) Node() (*ir.Node, error) {
	if len(a.cur) == 0 {
		if err := a.grow(1); err != nil {
			return nil, err
		}
	}
	n := &a.cur[0]
	*n = ir.Node{}
	a.cur = a.cur[1:]
	a.size++
	return n, nil
}

func (a *Arena) grow(need int) error {
	n, err := a.policy.nextSlab(a.cap, need)
	if err != nil {
		return err
	}
	var slab []ir.Node
	if a.pooled && n == defaultSlabNodes {
		slab = slabPool.Get().([]ir.Node)
	} else {
		slab = make([]ir.Node, n)
	}
	a.slabs = append(a.slabs, slab)
	a.cur = slab
	a.cap += n
	return nil
}

// ReserveFor pre-sizes the arena for parsing the given text. The estimate
// is one node per two input bytes, which over-provisions for realistic
// documents; a fixed policy reports CapacityError up front instead of
// mid-parse.
func (a *Arena) ReserveFor(text []byte) error {
	need := len(text)/2 + 1
	if a.cap-a.size >= need {
		return nil
	}
	return a.grow(need - (a.cap - a.size))
}

// Size returns the number of nodes handed out since the last Reset.
func (a *Arena) Size() int { return a.size }

// Capacity returns the total node capacity currently held.
func (a *Arena) Capacity() int { return a.cap }

// Generation returns the current generation counter.
func (a *Arena) Generation() uint32 { return a.gen }

// Reset makes all slabs reusable and bumps the generation. The caller must
// guarantee no document or reference built from this arena is still live.
func (a *Arena) Reset() {
	a.gen++
	a.size = 0
	if len(a.slabs) > 0 {
		a.cur = a.slabs[0]
		// Keep only the first slab; recycle the rest.
		for _, s := range a.slabs[1:] {
			a.release(s)
		}
		a.slabs = a.slabs[:1]
		a.cap = len(a.slabs[0])
	}
}

// Disown invalidates the arena without recycling its slabs. Nodes already
// handed out stay valid for as long as something references them; use this
// when a tree built from the arena moves to a new owner.
func (a *Arena) Disown() {
	a.gen++
	a.size = 0
	a.cap = 0
	a.cur = nil
	a.slabs = nil
}

// Release returns all slabs to the pool and bumps the generation. The
// arena is empty but usable afterwards.
func (a *Arena) Release() {
	a.gen++
	a.size = 0
	a.cap = 0
	a.cur = nil
	for _, s := range a.slabs {
		a.release(s)
	}
	a.slabs = nil
}

func (a *Arena) release(s []ir.Node) {
	if a.pooled && len(s) == defaultSlabNodes {
		slabPool.Put(s)
	}
}
