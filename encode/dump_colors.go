package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/gff-format/ir"
)

type Colorable struct {
	Kind ir.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	PathColor ColorAttr = iota
	KindColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range ir.Kinds() {
		able := Colorable{Kind: k, Attr: PathColor}
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = KindColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}
	for _, k := range []ir.Kind{ir.KindByte, ir.KindChar, ir.KindWord, ir.KindShort,
		ir.KindDword, ir.KindInt, ir.KindDword64, ir.KindInt64} {
		able.Kind = k
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}
	able.Kind = ir.KindFloat
	colors.Map[able] = color.CyanString
	able.Kind = ir.KindDouble
	colors.Map[able] = color.CyanString
	able.Kind = ir.KindCExoStr
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Kind = ir.KindCExoLocStr
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	able.Kind = ir.KindResRef
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Kind = ir.KindVoid
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	able.Kind = ir.KindStruct
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()
	able.Kind = ir.KindList
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ir.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ir.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
