package jdoc

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jdoc-format/go-jdoc/encode"
)

// Diff returns the text diffs between the pretty renderings of this
// document and other, cleaned up for human reading.
func (d *Document) Diff(other *Document) ([]diffmatchpatch.Diff, error) {
	if d.closed || other.closed {
		return nil, ErrClosed
	}
	a, err := d.Render(encode.Pretty(true))
	if err != nil {
		return nil, err
	}
	b, err := other.Render(encode.Pretty(true))
	if err != nil {
		return nil, err
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCleanupSemantic(diffs), nil
}

// DiffText is Diff rendered as colored terminal text.
func (d *Document) DiffText(other *Document) (string, error) {
	diffs, err := d.Diff(other)
	if err != nil {
		return "", err
	}
	return diffmatchpatch.New().DiffPrettyText(diffs), nil
}
