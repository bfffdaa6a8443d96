package encode

// EncState carries the encoder configuration and state.
type EncState struct {
	depth, indent int

	pretty        bool
	escapeUnicode bool
	escapeSlashes bool
	infNaNAsNull  bool

	color func(attr ColorAttr, s string) string
}

type Option func(*EncState)

// Pretty switches to indented multi-line output. Canonical (compact)
// output is the default.
func Pretty(v bool) Option {
	return func(es *EncState) { es.pretty = v }
}

// Indent sets the indent width used by Pretty output.
func Indent(n int) Option {
	return func(es *EncState) { es.indent = n }
}

// EscapeUnicode escapes every non-ASCII rune as \uXXXX.
func EscapeUnicode(v bool) Option {
	return func(es *EncState) { es.escapeUnicode = v }
}

// EscapeSlashes escapes '/' as \/.
func EscapeSlashes(v bool) Option {
	return func(es *EncState) { es.escapeSlashes = v }
}

// InfNaNAsNull writes non-finite floats as null instead of failing.
func InfNaNAsNull(v bool) Option {
	return func(es *EncState) { es.infNaNAsNull = v }
}

// WithColors enables colorized output for terminal viewing.
func WithColors(c *Colors) Option {
	return func(es *EncState) { es.color = c.Color }
}
