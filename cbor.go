package jdoc

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/jdoc-format/go-jdoc/gomap"
)

// MarshalCBOR encodes the document as canonical CBOR.
func (d *Document) MarshalCBOR() ([]byte, error) {
	if d.closed {
		return nil, ErrClosed
	}
	var root any
	if err := d.Decode(&root); err != nil {
		return nil, err
	}
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(root)
}

// FromCBOR builds a document from CBOR data. CBOR maps carry no member
// order, so object members come out key-sorted.
func FromCBOR(data []byte, opts ...Option) (*Document, error) {
	var root any
	if err := cbor.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	root = normalizeCBOR(root)
	d, _ := newDoc(opts)
	node, err := gomap.ToNode(root)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.root = node
	return d, nil
}

// normalizeCBOR rewrites cbor's map[any]any decoding into the string-keyed
// shapes gomap accepts.
func normalizeCBOR(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeCBOR(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeCBOR(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeCBOR(t[i])
		}
		return t
	}
	return v
}
