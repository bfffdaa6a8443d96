// Package parse turns JSON (and, as a convenience, YAML) text into ir.Node
// trees. The low-level tokenization is delegated to goccy/go-json; the
// comment and trailing-comma read options are handled by a tidwall/jsonc
// pre-pass. The parser preserves object member order and duplicate keys.
package parse

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"

	"github.com/jdoc-format/go-jdoc/ir"
)

// sentinel string payloads produced by the Infinity/NaN pre-pass. The
// builder converts a string back to a float only at the positions the
// pre-pass recorded, so input that legitimately contains one of these
// payloads stays a string.
const (
	sentinelInf    = "\x00inf"
	sentinelNegInf = "\x00-inf"
	sentinelNaN    = "\x00nan"
)

// Parse builds a node tree from JSON text.
func Parse(data []byte, opts ...Option) (*ir.Node, error) {
	o := &parseOpts{}
	for _, f := range opts {
		f(o)
	}
	if !o.allowInvalidUTF8 && !utf8.Valid(data) {
		return nil, &ParseError{Offset: -1, Msg: "input is not valid UTF-8"}
	}
	if o.allowComments || o.allowTrailingCommas {
		if o.insitu {
			data = jsonc.ToJSONInPlace(data)
		} else {
			data = jsonc.ToJSON(data)
		}
	}
	var sentinels []int
	if o.allowInfAndNaN {
		data, sentinels = rewriteInfNaN(data)
	}
	if o.arena != nil {
		if err := o.arena.ReserveFor(data); err != nil {
			return nil, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	b := &builder{opts: o, sentinels: sentinels}
	root, err := b.run(dec)
	if err != nil {
		return nil, asParseError(err, dec)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Offset: dec.InputOffset(), Msg: "unexpected data after top-level value"}
	}
	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts ...Option) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

type builder struct {
	opts  *parseOpts
	stack []*ir.Node
	root  *ir.Node

	// ordinals of string literals the Infinity/NaN pre-pass emitted,
	// ascending; strOrd counts string tokens as they are consumed.
	sentinels []int
	strOrd    int
	sentIdx   int
}

// stringIsSentinel reports whether the string token being consumed sits at
// a position the pre-pass rewrote. It must be called exactly once per
// string token, keys included, to keep the ordinals aligned.
func (b *builder) stringIsSentinel() bool {
	ord := b.strOrd
	b.strOrd++
	if b.sentIdx < len(b.sentinels) && b.sentinels[b.sentIdx] == ord {
		b.sentIdx++
		return true
	}
	return false
}

func (b *builder) run(dec *json.Decoder) (*ir.Node, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if b.root == nil {
				return nil, &ParseError{Offset: 0, Msg: "empty input"}
			}
			return nil, &ParseError{Offset: dec.InputOffset(), Msg: "unexpected end of input"}
		}
		if err != nil {
			return nil, err
		}
		done, err := b.token(tok)
		if err != nil {
			return nil, err
		}
		if done {
			return b.root, nil
		}
	}
}

// token consumes one token and reports whether the top-level value is
// complete.
func (b *builder) token(tok json.Token) (bool, error) {
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{', '[':
			n, err := b.node()
			if err != nil {
				return false, err
			}
			if d == '{' {
				n.Type = ir.ObjectType
			} else {
				n.Type = ir.ArrayType
			}
			if err := b.attach(n); err != nil {
				return false, err
			}
			b.stack = append(b.stack, n)
			return false, nil
		default: // '}' or ']'
			b.stack = b.stack[:len(b.stack)-1]
			return len(b.stack) == 0, nil
		}
	}

	// Object keys arrive as string tokens; in an object a token is a key
	// exactly when the member under construction has no key yet.
	if top := b.top(); top != nil && top.Type == ir.ObjectType && len(top.Fields) == len(top.Values) {
		key, ok := tok.(string)
		if !ok {
			return false, &ParseError{Offset: -1, Msg: "object key is not a string"}
		}
		b.stringIsSentinel()
		keyNode, err := b.node()
		if err != nil {
			return false, err
		}
		ir.FromStringAt(keyNode, key)
		keyNode.Parent = top
		keyNode.ParentIndex = len(top.Fields)
		keyNode.ParentField = key
		top.Fields = append(top.Fields, keyNode)
		return false, nil
	}

	n, err := b.node()
	if err != nil {
		return false, err
	}
	if err := b.leaf(n, tok); err != nil {
		return false, err
	}
	if err := b.attach(n); err != nil {
		return false, err
	}
	return len(b.stack) == 0, nil
}

func (b *builder) leaf(n *ir.Node, tok json.Token) error {
	switch v := tok.(type) {
	case nil:
		n.Type = ir.NullType
	case bool:
		n.Type = ir.BoolType
		n.Bool = v
	case string:
		if b.stringIsSentinel() {
			n.Type = ir.FloatType
			switch v {
			case sentinelInf:
				n.Float = math.Inf(1)
			case sentinelNegInf:
				n.Float = math.Inf(-1)
			case sentinelNaN:
				n.Float = math.NaN()
			}
			return nil
		}
		ir.FromStringAt(n, v)
	case json.Number:
		return numberAt(n, v.String(), b.opts.rawNumbers)
	default:
		return &ParseError{Offset: -1, Msg: "unexpected token"}
	}
	return nil
}

// numberAt fills n from numeric source text. Non-negative integer literals
// tag Uint, negative ones Int, anything with a fraction or exponent Float;
// out-of-range integers fall back to Float.
func numberAt(n *ir.Node, s string, raw bool) error {
	if raw {
		n.Raw = s
	}
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &ParseError{Offset: -1, Msg: "invalid number " + strconv.Quote(s), Err: err}
		}
		n.Type = ir.FloatType
		n.Float = f
		return nil
	}
	if s[0] == '-' {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			n.Type = ir.IntType
			n.Int = i
			return nil
		}
	} else {
		u, err := strconv.ParseUint(s, 10, 64)
		if err == nil {
			n.Type = ir.UintType
			n.Uint = u
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &ParseError{Offset: -1, Msg: "invalid number " + strconv.Quote(s), Err: err}
	}
	n.Type = ir.FloatType
	n.Float = f
	return nil
}

func (b *builder) top() *ir.Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) attach(n *ir.Node) error {
	top := b.top()
	if top == nil {
		b.root = n
		return nil
	}
	n.Parent = top
	n.ParentIndex = len(top.Values)
	if top.Type == ir.ObjectType {
		n.ParentField = top.Fields[len(top.Fields)-1].Str
	}
	top.Values = append(top.Values, n)
	return nil
}

func (b *builder) node() (*ir.Node, error) {
	if b.opts.arena != nil {
		return b.opts.arena.Node()
	}
	return &ir.Node{}, nil
}

// rewriteInfNaN replaces the bare literals Infinity, -Infinity and NaN
// (outside strings) with sentinel JSON strings that the builder converts
// back to float nodes. The returned ordinals say which string literals of
// the rewritten text, counted in order, are sentinels.
func rewriteInfNaN(data []byte) ([]byte, []int) {
	var out []byte
	var sentinels []int
	strOrd := 0
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			strOrd++
			out = append(out, c)
		case c == 'N' && bytes.HasPrefix(data[i:], []byte("NaN")):
			sentinels = append(sentinels, strOrd)
			strOrd++
			out = append(out, `"\u0000nan"`...)
			i += 2
		case c == 'I' && bytes.HasPrefix(data[i:], []byte("Infinity")):
			sentinels = append(sentinels, strOrd)
			strOrd++
			out = append(out, `"\u0000inf"`...)
			i += 7
		case c == '-' && bytes.HasPrefix(data[i:], []byte("-Infinity")):
			sentinels = append(sentinels, strOrd)
			strOrd++
			out = append(out, `"\u0000-inf"`...)
			i += 8
		default:
			out = append(out, c)
		}
	}
	return out, sentinels
}

func asParseError(err error, dec *json.Decoder) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Offset < 0 {
			pe.Offset = dec.InputOffset()
		}
		return pe
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{Offset: syn.Offset, Msg: syn.Error(), Err: err}
	}
	return &ParseError{Offset: dec.InputOffset(), Msg: err.Error(), Err: err}
}
