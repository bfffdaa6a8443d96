package jdoc

import (
	"io"

	"github.com/jdoc-format/go-jdoc/alloc"
	"github.com/jdoc-format/go-jdoc/encode"
	"github.com/jdoc-format/go-jdoc/gomap"
	"github.com/jdoc-format/go-jdoc/ir"
	"github.com/jdoc-format/go-jdoc/parse"
)

// Document owns a mutable node tree and the arena its nodes live in.
// Closing or resetting a document bumps its generation; references minted
// before that point panic on first use instead of touching freed nodes.
type Document struct {
	arena  *alloc.Arena
	root   *ir.Node
	closed bool
}

type docConfig struct {
	policy    alloc.Policy
	buf       []ir.Node
	parseOpts []parse.Option
}

// Option configures a new document.
type Option func(*docConfig)

// WithPolicy sets the arena growth policy. The default is Growable.
func WithPolicy(p alloc.Policy) Option {
	return func(c *docConfig) {
		c.policy = p
	}
}

// WithBuffer makes the document allocate its nodes from buf and fail with
// a CapacityError once buf is exhausted.
func WithBuffer(buf []ir.Node) Option {
	return func(c *docConfig) {
		c.buf = buf
	}
}

// WithParseOptions forwards read options to Parse and ParseYAML.
func WithParseOptions(opts ...parse.Option) Option {
	return func(c *docConfig) {
		c.parseOpts = append(c.parseOpts, opts...)
	}
}

func newDoc(opts []Option) (*Document, *docConfig) {
	c := &docConfig{}
	for _, opt := range opts {
		opt(c)
	}
	var arena *alloc.Arena
	switch {
	case c.buf != nil:
		arena = alloc.NewFromBuffer(c.buf)
	case c.policy != nil:
		arena = alloc.New(c.policy)
	default:
		arena = alloc.New(alloc.Growable{})
	}
	return &Document{arena: arena}, c
}

// New creates an empty mutable document whose root is null.
func New(opts ...Option) *Document {
	d, _ := newDoc(opts)
	d.root = ir.Null()
	return d
}

// Parse builds a document from JSON text.
func Parse(data []byte, opts ...Option) (*Document, error) {
	d, c := newDoc(opts)
	popts := append([]parse.Option{parse.WithArena(d.arena)}, c.parseOpts...)
	root, err := parse.Parse(data, popts...)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.root = root
	return d, nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse([]byte(s), opts...)
}

// ParseYAML builds a document from YAML text.
func ParseYAML(data []byte, opts ...Option) (*Document, error) {
	d, c := newDoc(opts)
	root, err := parse.ParseYAML(data, c.parseOpts...)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.root = root
	return d, nil
}

// FromValue builds a document from a native Go value using the gomap
// conversion rules.
func FromValue(v any, opts ...Option) (*Document, error) {
	d, _ := newDoc(opts)
	root, err := gomap.ToNode(v)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.root = root
	return d, nil
}

// Root returns a mutable reference to the document's root value.
func (d *Document) Root() ValueRef {
	return d.ref(d.root)
}

// Value returns a read-only view of the document's root value. The view
// borrows the document's nodes and must not outlive it.
func (d *Document) Value() Value {
	return Value{n: d.root}
}

// SetRoot replaces the document's root with src, adopting it under the
// aliasing rules described on adopt.
func (d *Document) SetRoot(src any) (ValueRef, error) {
	n, err := d.adopt(src)
	if err != nil {
		return ValueRef{}, err
	}
	d.root = n.Detach()
	return d.ref(d.root), nil
}

// Render encodes the document. With no options the output is canonical:
// compact, minimal escapes, member order preserved.
func (d *Document) Render(opts ...encode.Option) (string, error) {
	return encode.String(d.root, opts...)
}

// RenderTo encodes the document to w.
func (d *Document) RenderTo(w io.Writer, opts ...encode.Option) error {
	return encode.Encode(d.root, w, opts...)
}

// Decode converts the document into the native Go value pointed to by v.
func (d *Document) Decode(v any) error {
	return gomap.FromNode(d.root, v)
}

// Clone deep-copies the document into a fresh one with its own arena.
func (d *Document) Clone(opts ...Option) *Document {
	out, _ := newDoc(opts)
	out.root = d.root.Clone()
	return out
}

// Reset drops the tree and recycles the arena for reuse. All outstanding
// references and views are invalidated.
func (d *Document) Reset() {
	d.arena.Reset()
	d.root = ir.Null()
}

// Close releases the document's arena. Close is idempotent; any use of a
// reference minted before Close panics.
func (d *Document) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.root = nil
	d.arena.Release()
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	return d.closed
}

// Nodes reports how many nodes the document's arena has handed out.
func (d *Document) Nodes() int {
	return d.arena.Size()
}

func (d *Document) ref(n *ir.Node) ValueRef {
	return ValueRef{doc: d, n: n, gen: d.arena.Generation()}
}

// newNode allocates a node from the document's arena.
func (d *Document) newNode() (*ir.Node, error) {
	return d.arena.Node()
}

// adopt turns src into a node this document may attach, without ever
// aliasing live trees:
//
//   - *Document: the source's root moves here and the source is closed.
//   - *ir.Node: a detached node (nil Parent) moves; an attached node, or
//     this document's own root, is deep-copied so the original tree is
//     untouched. Pass the owning *Document to move another document's
//     root.
//   - Value, ValueRef: always deep-copied.
//   - anything else: converted with gomap.ToNode.
func (d *Document) adopt(src any) (*ir.Node, error) {
	switch s := src.(type) {
	case nil:
		return d.leaf(ir.NullType)
	case *Document:
		if s.closed {
			return nil, ErrClosed
		}
		if s == d {
			return s.root.Clone(), nil
		}
		// Move, don't copy: the source's nodes travel with its root, so
		// its arena is disowned rather than recycled.
		root := s.root
		s.root = nil
		s.closed = true
		s.arena.Disown()
		return root, nil
	case *ir.Node:
		// The root has no Parent but is still owned: moving it under one
		// of its own descendants would make the tree cyclic.
		if s.Parent == nil && s != d.root {
			return s, nil
		}
		return s.Clone(), nil
	case Value:
		return s.n.Clone(), nil
	case ValueRef:
		s.check()
		return s.n.Clone(), nil
	default:
		return gomap.ToNode(src)
	}
}

func (d *Document) leaf(t ir.Type) (*ir.Node, error) {
	n, err := d.newNode()
	if err != nil {
		return nil, err
	}
	n.Type = t
	return n, nil
}
