package ir

import (
	"maps"
	"slices"
)

// Node is a single element of a document tree. Exactly one payload is
// meaningful for a given Type: Str for StringType, Bool for BoolType,
// Uint/Int/Float for the numeric tags, Values for ArrayType, and the
// parallel Fields/Values slices for ObjectType. Fields holds the key nodes
// of an object in member order; duplicates are permitted and lookup is a
// linear scan returning the first match.
//
// Parent, ParentIndex and ParentField record where the node is attached.
// A node with a nil Parent is detached and may be moved into a container;
// an attached node must be cloned before it can appear at a second tree
// position.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	Str   string
	Bool  bool
	Uint  uint64
	Int   int64
	Float float64

	// Raw keeps the original numeric source text when the parser was asked
	// to preserve it. The encoder re-emits Raw verbatim when present.
	Raw string
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep-copies y into dst. The copy is detached: the top-level
// parent links are not carried over.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Str = y.Str
	dst.Bool = y.Bool
	dst.Uint = y.Uint
	dst.Int = y.Int
	dst.Float = y.Float
	dst.Raw = y.Raw
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dstI := &Node{}
			yv.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dstI.ParentField = yv.ParentField
			dst.Values[i] = dstI
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dstI := &Node{}
			yf.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dstI.ParentField = yf.Str
			dst.Fields[i] = dstI
		}
	}
	return dst
}

// Detach clears the parent links of y, making it movable. It does not
// remove y from its old parent's slices; container mutation helpers do
// that themselves.
func (y *Node) Detach() *Node {
	y.Parent = nil
	y.ParentIndex = 0
	y.ParentField = ""
	return y
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromUint(v uint64) *Node {
	return &Node{Type: UintType, Uint: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int: v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: FloatType, Float: f}
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.Str = v
	return p
}

// FromSlice builds an array node taking ownership of the given elements.
func FromSlice(ySlice []*Node) *Node {
	return FromSliceAt(&Node{}, ySlice)
}

func FromSliceAt(res *Node, ySlice []*Node) *Node {
	res.Type = ArrayType
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// Member is one (key, value) pair of an object under construction.
type Member struct {
	Key string
	Val *Node
}

// FromMembers builds an object node from ordered members. Member order is
// preserved exactly, duplicate keys included.
func FromMembers(members []Member) *Node {
	return FromMembersAt(&Node{}, members)
}

func FromMembersAt(res *Node, members []Member) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, len(members))
	res.Values = make([]*Node, len(members))
	for i := range members {
		m := &members[i]
		key := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: m.Key,
			Type:        StringType,
			Str:         m.Key,
		}
		m.Val.Parent = res
		m.Val.ParentIndex = i
		m.Val.ParentField = m.Key
		res.Fields[i] = key
		res.Values[i] = m.Val
	}
	return res
}

// FromMap builds an object node from a Go map. Keys are sorted so that the
// result is deterministic; callers that need a specific member order use
// FromMembers.
func FromMap(yMap map[string]*Node) *Node {
	members := make([]Member, 0, len(yMap))
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		members = append(members, Member{Key: key, Val: yMap[key]})
	}
	return FromMembers(members)
}

// ToMap collects the members of an object node into a Go map. On duplicate
// keys the last member wins. Returns nil for non-objects.
func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].Str] = node.Values[i]
	}
	return res
}

// Get returns the value of the first member with the given key, or nil.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].Str == field {
			return y.Values[i]
		}
	}
	return nil
}

// IndexOf returns the position of the first member with the given key,
// or -1.
func (y *Node) IndexOf(field string) int {
	for i := range y.Fields {
		if y.Fields[i].Str == field {
			return i
		}
	}
	return -1
}

// At returns the i-th array element, or nil when out of range.
func (y *Node) At(i int) *Node {
	if i < 0 || i >= len(y.Values) {
		return nil
	}
	return y.Values[i]
}

// AppendElem attaches v at the end of array node y.
func (y *Node) AppendElem(v *Node) {
	v.Parent = y
	v.ParentIndex = len(y.Values)
	y.Values = append(y.Values, v)
}

// InsertElem attaches v at position i of array node y, shifting later
// elements right.
func (y *Node) InsertElem(i int, v *Node) {
	v.Parent = y
	y.Values = slices.Insert(y.Values, i, v)
	y.reindex(i)
}

// RemoveElem detaches and returns the i-th element of array node y.
func (y *Node) RemoveElem(i int) *Node {
	v := y.Values[i]
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return v.Detach()
}

// AddMember appends a (key, v) member to object node y. Existing members
// with the same key are kept: objects permit duplicates.
func (y *Node) AddMember(key string, v *Node) {
	i := len(y.Values)
	keyNode := &Node{
		Parent:      y,
		ParentIndex: i,
		ParentField: key,
		Type:        StringType,
		Str:         key,
	}
	v.Parent = y
	v.ParentIndex = i
	v.ParentField = key
	y.Fields = append(y.Fields, keyNode)
	y.Values = append(y.Values, v)
}

// SetMember replaces the value of the first member with the given key, or
// appends a new member when the key is absent. The replaced value, if any,
// is returned detached.
func (y *Node) SetMember(key string, v *Node) *Node {
	i := y.IndexOf(key)
	if i < 0 {
		y.AddMember(key, v)
		return nil
	}
	old := y.Values[i]
	v.Parent = y
	v.ParentIndex = i
	v.ParentField = key
	y.Values[i] = v
	return old.Detach()
}

// RemoveMember detaches the first member with the given key and reports
// whether one was found.
func (y *Node) RemoveMember(key string) bool {
	i := y.IndexOf(key)
	if i < 0 {
		return false
	}
	y.Values[i].Detach()
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return true
}

func (y *Node) reindex(from int) {
	for i := from; i < len(y.Values); i++ {
		y.Values[i].ParentIndex = i
		if i < len(y.Fields) {
			y.Fields[i].ParentIndex = i
		}
	}
}

// Visit walks the subtree rooted at y, calling f before (isPost=false) and
// after (isPost=true) the children of each node. Returning false from the
// pre call skips the children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Root follows parent links to the top of the tree containing y.
func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
