package encode

import (
	"github.com/fatih/color"
)

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

// Colors maps token attributes to sprint functions.
type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			FieldColor: color.CyanString,
			ValueColor: color.GreenString,
			SepColor:   color.RGB(255, 0, 196).SprintfFunc(),
		},
	}
}

func colorDefault(s string, args ...any) string {
	return s
}

func (c *Colors) Color(attr ColorAttr, s string) string {
	fn, ok := c.Map[attr]
	if !ok {
		fn = c.Default
	}
	return fn("%s", s)
}
