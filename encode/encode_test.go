package encode

import (
	"math"
	"strings"
	"testing"

	"github.com/jdoc-format/go-jdoc/ir"
)

func TestEncodeCanonical(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want string
	}{
		{"null", ir.Null(), `null`},
		{"true", ir.FromBool(true), `true`},
		{"uint", ir.FromUint(42), `42`},
		{"int", ir.FromInt(-42), `-42`},
		{"float", ir.FromFloat(2.5), `2.5`},
		{"string", ir.FromString("hi"), `"hi"`},
		{"escaped", ir.FromString("a\"b\n"), `"a\"b\n"`},
		{"empty array", ir.FromSlice(nil), `[]`},
		{"empty object", ir.FromMembers(nil), `{}`},
		{"array", ir.FromSlice([]*ir.Node{ir.FromUint(1), ir.FromBool(false)}), `[1,false]`},
		{"object",
			ir.FromMembers([]ir.Member{
				{Key: "b", Val: ir.FromUint(1)},
				{Key: "a", Val: ir.FromUint(2)},
				{Key: "b", Val: ir.FromUint(3)},
			}),
			`{"b":1,"a":2,"b":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodePretty(t *testing.T) {
	n := ir.FromMembers([]ir.Member{
		{Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromUint(1), ir.FromUint(2)})},
	})
	got, err := String(n, Pretty(true))
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if got != want {
		t.Errorf("pretty output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeIndentWidth(t *testing.T) {
	n := ir.FromMembers([]ir.Member{{Key: "a", Val: ir.FromUint(1)}})
	got, err := String(n, Pretty(true), Indent(4))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\n    \"a\"") {
		t.Errorf("indent 4 not applied: %q", got)
	}
}

func TestEncodeRawNumberVerbatim(t *testing.T) {
	n := &ir.Node{Type: ir.FloatType, Float: 0.30000000000000004, Raw: "0.30000000000000004"}
	got, err := String(n)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0.30000000000000004" {
		t.Errorf("raw number not preserved: %s", got)
	}
}

func TestEncodeInfNaN(t *testing.T) {
	n := ir.FromSlice([]*ir.Node{ir.FromFloat(math.NaN()), ir.FromFloat(math.Inf(1))})
	if _, err := String(n); err == nil {
		t.Fatalf("NaN should be an encode error by default")
	}
	got, err := String(n, InfNaNAsNull(true))
	if err != nil {
		t.Fatal(err)
	}
	if got != `[null,null]` {
		t.Errorf("InfNaNAsNull output = %s", got)
	}
}

func TestEscapeUnicode(t *testing.T) {
	n := ir.FromString("héllo  ")
	got, err := String(n, EscapeUnicode(true))
	if err != nil {
		t.Fatal(err)
	}
	if got != `"héllo  "` {
		t.Errorf("EscapeUnicode output = %s", got)
	}
	plain, err := String(n)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(plain, "héllo") {
		t.Errorf("default output should keep unicode verbatim: %s", plain)
	}
}

func TestEscapeSlashes(t *testing.T) {
	n := ir.FromString("a/b")
	got, err := String(n, EscapeSlashes(true))
	if err != nil {
		t.Fatal(err)
	}
	if got != `"a\/b"` {
		t.Errorf("EscapeSlashes output = %s", got)
	}
}

func TestSurrogatePairEscape(t *testing.T) {
	n := ir.FromString("\U0001F600")
	got, err := String(n, EscapeUnicode(true))
	if err != nil {
		t.Fatal(err)
	}
	if got != `"😀"` {
		t.Errorf("surrogate pair output = %s", got)
	}
}

func TestMustStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustString should panic on encode errors")
		}
	}()
	MustString(ir.FromFloat(math.NaN()))
}
