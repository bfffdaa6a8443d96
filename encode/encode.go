// Package encode serializes ir.Node trees to JSON text. Canonical output
// is compact and byte-stable: members appear in stored order with no
// insignificant whitespace, so rendering the same tree twice yields
// identical bytes.
package encode

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jdoc-format/go-jdoc/ir"
)

// Encode writes the subtree rooted at node to w.
func Encode(node *ir.Node, w io.Writer, opts ...Option) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	bw := bufio.NewWriter(w)
	if err := encode(node, bw, es); err != nil {
		return err
	}
	return bw.Flush()
}

// String renders the subtree to a string.
func String(node *ir.Node, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Encode(node, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encode(node *ir.Node, w *bufio.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeToken(w, es, ValueColor, "null")
	case ir.BoolType:
		if node.Bool {
			return writeToken(w, es, ValueColor, "true")
		}
		return writeToken(w, es, ValueColor, "false")
	case ir.UintType:
		if node.Raw != "" {
			return writeToken(w, es, ValueColor, node.Raw)
		}
		return writeToken(w, es, ValueColor, strconv.FormatUint(node.Uint, 10))
	case ir.IntType:
		if node.Raw != "" {
			return writeToken(w, es, ValueColor, node.Raw)
		}
		return writeToken(w, es, ValueColor, strconv.FormatInt(node.Int, 10))
	case ir.FloatType:
		return encodeFloat(node, w, es)
	case ir.StringType:
		return writeToken(w, es, ValueColor, quoteString(node.Str, es))
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	}
	return fmt.Errorf("cannot encode node of type %s", node.Type)
}

func encodeFloat(node *ir.Node, w *bufio.Writer, es *EncState) error {
	f := node.Float
	if math.IsInf(f, 0) || math.IsNaN(f) {
		if es.infNaNAsNull {
			return writeToken(w, es, ValueColor, "null")
		}
		return fmt.Errorf("cannot encode %v: non-finite floats need InfNaNAsNull", f)
	}
	if node.Raw != "" {
		return writeToken(w, es, ValueColor, node.Raw)
	}
	return writeToken(w, es, ValueColor, strconv.FormatFloat(f, 'g', -1, 64))
}

func encodeArray(node *ir.Node, w *bufio.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeToken(w, es, SepColor, "[]")
	}
	if err := writeToken(w, es, SepColor, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeToken(w, es, SepColor, ","); err != nil {
				return err
			}
		}
		if err := newlineIndent(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := newlineIndent(w, es); err != nil {
		return err
	}
	return writeToken(w, es, SepColor, "]")
}

func encodeObject(node *ir.Node, w *bufio.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeToken(w, es, SepColor, "{}")
	}
	if err := writeToken(w, es, SepColor, "{"); err != nil {
		return err
	}
	es.depth++
	for i := range node.Values {
		if i > 0 {
			if err := writeToken(w, es, SepColor, ","); err != nil {
				return err
			}
		}
		if err := newlineIndent(w, es); err != nil {
			return err
		}
		if err := writeToken(w, es, FieldColor, quoteString(node.Fields[i].Str, es)); err != nil {
			return err
		}
		if err := writeToken(w, es, SepColor, ":"); err != nil {
			return err
		}
		if es.pretty {
			if err := writeString(w, " "); err != nil {
				return err
			}
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := newlineIndent(w, es); err != nil {
		return err
	}
	return writeToken(w, es, SepColor, "}")
}

func newlineIndent(w *bufio.Writer, es *EncState) error {
	if !es.pretty {
		return nil
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	return writeString(w, strings.Repeat(" ", es.depth*es.indent))
}

func writeToken(w *bufio.Writer, es *EncState, attr ColorAttr, s string) error {
	if es.color != nil {
		s = es.color(attr, s)
	}
	return writeString(w, s)
}

func writeString(w *bufio.Writer, s string) error {
	_, err := w.WriteString(s)
	return err
}

const hexDigits = "0123456789abcdef"

func quoteString(s string, es *EncState) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				sb.WriteString(`\"`)
			case c == '\\':
				sb.WriteString(`\\`)
			case c == '/' && es.escapeSlashes:
				sb.WriteString(`\/`)
			case c == '\n':
				sb.WriteString(`\n`)
			case c == '\r':
				sb.WriteString(`\r`)
			case c == '\t':
				sb.WriteString(`\t`)
			case c < 0x20:
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xf])
			default:
				sb.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if !es.escapeUnicode && r != utf8.RuneError {
			sb.WriteString(s[i : i+size])
			i += size
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			writeHexEscape(&sb, r1)
			writeHexEscape(&sb, r2)
		} else {
			writeHexEscape(&sb, r)
		}
		i += size
	}
	sb.WriteByte('"')
	return sb.String()
}

func writeHexEscape(sb *strings.Builder, r rune) {
	sb.WriteString(`\u`)
	sb.WriteByte(hexDigits[(r>>12)&0xf])
	sb.WriteByte(hexDigits[(r>>8)&0xf])
	sb.WriteByte(hexDigits[(r>>4)&0xf])
	sb.WriteByte(hexDigits[r&0xf])
}
