package jdoc

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func TestQueryObjectEnv(t *testing.T) {
	d := mustParse(t, `{"items":[{"price":2},{"price":3}],"tax":1}`)
	defer d.Close()
	got, err := d.Query(`len(items)`)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("len(items) = %v", got)
	}

	got, err = d.Query(`filter(items, .price > 2)`)
	if err != nil {
		t.Fatal(err)
	}
	if list, ok := got.([]any); !ok || len(list) != 1 {
		t.Errorf("filter = %#v", got)
	}
}

func TestQueryScalarRoot(t *testing.T) {
	d := mustParse(t, `[1,2,3]`)
	defer d.Close()
	got, err := d.Query(`len(value)`)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("len(value) = %v", got)
	}
}

func TestQueryCompileError(t *testing.T) {
	d := mustParse(t, `{"a":1}`)
	defer d.Close()
	if _, err := d.Query(`a +`); err == nil {
		t.Errorf("bad expression should fail to compile")
	}
}

func TestDiffText(t *testing.T) {
	a := mustParse(t, `{"a":1}`)
	defer a.Close()
	b := mustParse(t, `{"a":2}`)
	defer b.Close()
	text, err := a.DiffText(b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "1") || !strings.Contains(text, "2") {
		t.Errorf("diff text missing changed values: %q", text)
	}

	same, err := a.Diff(a)
	if err != nil {
		t.Fatal(err)
	}
	for _, seg := range same {
		if seg.Type != diffmatchpatch.DiffEqual {
			t.Errorf("self diff should contain only equal segments: %+v", seg)
		}
	}
}
