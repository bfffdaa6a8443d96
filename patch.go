package jdoc

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/jdoc-format/go-jdoc/ir"
	"github.com/jdoc-format/go-jdoc/parse"
)

// ApplyPatch applies an RFC 6902 JSON Patch to the document. The tree is
// rebuilt from the patched text, so all outstanding references are
// invalidated.
func (d *Document) ApplyPatch(patch []byte) error {
	if d.closed {
		return ErrClosed
	}
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return err
	}
	doc, err := d.Render()
	if err != nil {
		return err
	}
	out, err := p.Apply([]byte(doc))
	if err != nil {
		return err
	}
	return d.replant(out)
}

// ApplyMergePatch applies an RFC 7386 merge patch to the document. Like
// ApplyPatch it rebuilds the tree and invalidates references.
func (d *Document) ApplyMergePatch(patch []byte) error {
	if d.closed {
		return ErrClosed
	}
	doc, err := d.Render()
	if err != nil {
		return err
	}
	out, err := jsonpatch.MergePatch([]byte(doc), patch)
	if err != nil {
		return err
	}
	return d.replant(out)
}

// CreateMergePatch computes the RFC 7386 merge patch that turns this
// document into other.
func (d *Document) CreateMergePatch(other *Document) ([]byte, error) {
	if d.closed || other.closed {
		return nil, ErrClosed
	}
	a, err := d.Render()
	if err != nil {
		return nil, err
	}
	b, err := other.Render()
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch([]byte(a), []byte(b))
}

// replant replaces the document's tree with a parse of out, recycling the
// arena first.
func (d *Document) replant(out []byte) error {
	d.arena.Reset()
	root, err := parse.Parse(out, parse.WithArena(d.arena))
	if err != nil {
		d.root = ir.Null()
		return err
	}
	d.root = root
	return nil
}
