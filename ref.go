package jdoc

import (
	"github.com/jdoc-format/go-jdoc/ir"
)

// ValueRef is a mutable, generation-checked reference into a document.
// A ref minted before the document is closed or reset panics on first use
// afterwards; it never touches recycled nodes.
type ValueRef struct {
	doc *Document
	n   *ir.Node
	gen uint32
}

func (r ValueRef) check() {
	if r.doc == nil || r.doc.closed || r.gen != r.doc.arena.Generation() {
		panic(ErrStaleRef)
	}
}

// IsValid reports whether the reference still points into a live document
// generation. All other methods panic when it does not.
func (r ValueRef) IsValid() bool {
	return r.doc != nil && !r.doc.closed && r.gen == r.doc.arena.Generation()
}

// Value returns a read-only view of the referenced node.
func (r ValueRef) Value() Value {
	r.check()
	return Value{n: r.n}
}

func (r ValueRef) Type() ir.Type {
	r.check()
	return r.n.Type
}

// reset clears the node's payload in place, keeping its parent links.
func (r ValueRef) reset(t ir.Type) {
	n := r.n
	n.Type = t
	n.Fields = nil
	n.Values = nil
	n.Str = ""
	n.Raw = ""
	n.Bool = false
	n.Uint = 0
	n.Int = 0
	n.Float = 0
}

func (r ValueRef) SetNull() {
	r.check()
	r.reset(ir.NullType)
}

func (r ValueRef) SetBool(v bool) {
	r.check()
	r.reset(ir.BoolType)
	r.n.Bool = v
}

func (r ValueRef) SetUint(v uint64) {
	r.check()
	r.reset(ir.UintType)
	r.n.Uint = v
}

func (r ValueRef) SetInt(v int64) {
	r.check()
	r.reset(ir.IntType)
	r.n.Int = v
}

func (r ValueRef) SetFloat(v float64) {
	r.check()
	r.reset(ir.FloatType)
	r.n.Float = v
}

func (r ValueRef) SetString(v string) {
	r.check()
	r.reset(ir.StringType)
	r.n.Str = v
}

// SetEmptyArray turns the node into an empty array without building a
// source value first, and returns the array reference for filling.
func (r ValueRef) SetEmptyArray() ArrayRef {
	r.check()
	r.reset(ir.ArrayType)
	return ArrayRef{r}
}

// SetEmptyObject turns the node into an empty object without building a
// source value first, and returns the object reference for filling.
func (r ValueRef) SetEmptyObject() ObjectRef {
	r.check()
	r.reset(ir.ObjectType)
	return ObjectRef{r}
}

// Set replaces the referenced value with src, adopted under the document's
// aliasing rules.
func (r ValueRef) Set(src any) error {
	r.check()
	n, err := r.doc.adopt(src)
	if err != nil {
		return err
	}
	r.reset(n.Type)
	r.n.Fields = n.Fields
	r.n.Values = n.Values
	r.n.Str = n.Str
	r.n.Raw = n.Raw
	r.n.Bool = n.Bool
	r.n.Uint = n.Uint
	r.n.Int = n.Int
	r.n.Float = n.Float
	for _, child := range r.n.Fields {
		child.Parent = r.n
	}
	for _, child := range r.n.Values {
		child.Parent = r.n
	}
	return nil
}

// AsArray returns an array reference when the node is an array.
func (r ValueRef) AsArray() (ArrayRef, bool) {
	r.check()
	if r.n.Type != ir.ArrayType {
		return ArrayRef{}, false
	}
	return ArrayRef{r}, true
}

// AsObject returns an object reference when the node is an object.
func (r ValueRef) AsObject() (ObjectRef, bool) {
	r.check()
	if r.n.Type != ir.ObjectType {
		return ObjectRef{}, false
	}
	return ObjectRef{r}, true
}

// ArrayRef is a ValueRef known to point at an array node.
type ArrayRef struct {
	ref ValueRef
}

func (a ArrayRef) Ref() ValueRef { return a.ref }

func (a ArrayRef) Len() int {
	a.ref.check()
	return len(a.ref.n.Values)
}

// At returns a reference to the i'th element.
func (a ArrayRef) At(i int) (ValueRef, bool) {
	a.ref.check()
	n := a.ref.n.At(i)
	if n == nil {
		return ValueRef{}, false
	}
	return a.ref.doc.ref(n), true
}

// Append adopts src and attaches it at the end of the array.
func (a ArrayRef) Append(src any) (ValueRef, error) {
	a.ref.check()
	n, err := a.ref.doc.adopt(src)
	if err != nil {
		return ValueRef{}, err
	}
	a.ref.n.AppendElem(n.Detach())
	return a.ref.doc.ref(n), nil
}

// AppendEmptyArray attaches a fresh empty array element. This is the fast
// path for building nested arrays: no source value is constructed.
func (a ArrayRef) AppendEmptyArray() (ArrayRef, error) {
	a.ref.check()
	n, err := a.ref.doc.leaf(ir.ArrayType)
	if err != nil {
		return ArrayRef{}, err
	}
	a.ref.n.AppendElem(n)
	return ArrayRef{a.ref.doc.ref(n)}, nil
}

// AppendEmptyObject attaches a fresh empty object element.
func (a ArrayRef) AppendEmptyObject() (ObjectRef, error) {
	a.ref.check()
	n, err := a.ref.doc.leaf(ir.ObjectType)
	if err != nil {
		return ObjectRef{}, err
	}
	a.ref.n.AppendElem(n)
	return ObjectRef{a.ref.doc.ref(n)}, nil
}

// Insert adopts src and attaches it at position i, shifting later
// elements right.
func (a ArrayRef) Insert(i int, src any) (ValueRef, error) {
	a.ref.check()
	if i < 0 || i > len(a.ref.n.Values) {
		return ValueRef{}, errIndex(i, len(a.ref.n.Values))
	}
	n, err := a.ref.doc.adopt(src)
	if err != nil {
		return ValueRef{}, err
	}
	a.ref.n.InsertElem(i, n.Detach())
	return a.ref.doc.ref(n), nil
}

// Delete removes the i'th element.
func (a ArrayRef) Delete(i int) error {
	a.ref.check()
	if i < 0 || i >= len(a.ref.n.Values) {
		return errIndex(i, len(a.ref.n.Values))
	}
	a.ref.n.RemoveElem(i)
	return nil
}

// ObjectRef is a ValueRef known to point at an object node.
type ObjectRef struct {
	ref ValueRef
}

func (o ObjectRef) Ref() ValueRef { return o.ref }

func (o ObjectRef) Len() int {
	o.ref.check()
	return len(o.ref.n.Fields)
}

// Get returns a reference to the value of the first member named key.
func (o ObjectRef) Get(key string) (ValueRef, bool) {
	o.ref.check()
	n := ir.Get(o.ref.n, key)
	if n == nil {
		return ValueRef{}, false
	}
	return o.ref.doc.ref(n), true
}

// Set adopts src as the value of the first member named key, appending a
// new member when the key is absent.
func (o ObjectRef) Set(key string, src any) (ValueRef, error) {
	o.ref.check()
	n, err := o.ref.doc.adopt(src)
	if err != nil {
		return ValueRef{}, err
	}
	o.ref.n.SetMember(key, n.Detach())
	return o.ref.doc.ref(n), nil
}

// Add adopts src and appends it as a new member, even when the key is
// already present: objects permit duplicate keys.
func (o ObjectRef) Add(key string, src any) (ValueRef, error) {
	o.ref.check()
	n, err := o.ref.doc.adopt(src)
	if err != nil {
		return ValueRef{}, err
	}
	o.ref.n.AddMember(key, n.Detach())
	return o.ref.doc.ref(n), nil
}

// SetEmptyArray sets key to a fresh empty array and returns its reference.
func (o ObjectRef) SetEmptyArray(key string) (ArrayRef, error) {
	o.ref.check()
	n, err := o.ref.doc.leaf(ir.ArrayType)
	if err != nil {
		return ArrayRef{}, err
	}
	o.ref.n.SetMember(key, n)
	return ArrayRef{o.ref.doc.ref(n)}, nil
}

// SetEmptyObject sets key to a fresh empty object and returns its
// reference.
func (o ObjectRef) SetEmptyObject(key string) (ObjectRef, error) {
	o.ref.check()
	n, err := o.ref.doc.leaf(ir.ObjectType)
	if err != nil {
		return ObjectRef{}, err
	}
	o.ref.n.SetMember(key, n)
	return ObjectRef{o.ref.doc.ref(n)}, nil
}

// Delete removes the first member named key and reports whether one was
// found.
func (o ObjectRef) Delete(key string) bool {
	o.ref.check()
	return o.ref.n.RemoveMember(key)
}
