package encode

import (
	"github.com/fatih/color"

	"github.com/statepatch/statepatch/patch"
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[patch.OpKind]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[patch.OpKind]func(string, ...any) string{
			patch.AddOp:     color.GreenString,
			patch.RemoveOp:  color.RedString,
			patch.ReplaceOp: color.YellowString,
		},
	}
}

func (c *Colors) Op(kind patch.OpKind, s string) string {
	f, ok := c.Map[kind]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}

func colorDefault(format string, args ...any) string {
	return color.WhiteString(format, args...)
}

func (c *Colors) insert(s string) string {
	return c.Op(patch.AddOp, s)
}

func (c *Colors) delete(s string) string {
	return c.Op(patch.RemoveOp, s)
}
