package encode

import (
	"bufio"
	"io"
	"strings"

	"github.com/signadot/gff-format/ir"
)

// Dump writes s one node per line in walk order:
//
//	/Gender (byte) = 1
//	/FirstName (cexolocstr) % 42
//	/FirstName/0 (cexostr) = "Hi"
//	/ItemList (list) = [2]
//	/ItemList[0] (struct) = struct 0
func Dump(s *ir.Struct, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	bw := bufio.NewWriter(w)
	err := s.Walk(func(e *ir.Entry) error {
		if es.dumpDepth > 0 && e.Depth > es.dumpDepth {
			return ir.SkipChildren
		}
		_, err := bw.WriteString(DumpLine(e, es) + "\n")
		return err
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// DumpString is Dump into a string.
func DumpString(s *ir.Struct, opts ...EncodeOption) string {
	b := &strings.Builder{}
	if err := Dump(s, b, opts...); err != nil {
		return "<error: " + err.Error() + ">"
	}
	return b.String()
}

// DumpLine renders one walk entry without a trailing newline.
func DumpLine(e *ir.Entry, es *EncState) string {
	k := e.Kind()
	color := es.Color
	if color == nil {
		color = func(_ ir.Kind, _ ColorAttr, s string) string { return s }
	}
	sep, val := "=", ""
	switch v := e.Value().(type) {
	case string:
		val = ir.FormatValue(ir.CExoStr(v))
	case ir.LocString:
		sep, val = "%", formatStrRef(e.StrRef())
	case ir.Value:
		val = ir.FormatValue(v)
	}
	return color(k, PathColor, e.Path) + " " +
		color(k, KindColor, "("+k.String()+")") + " " +
		color(k, SepColor, sep) + " " +
		color(k, ValueColor, val)
}

func formatStrRef(ref uint32) string {
	if ref == ir.NoStrRef {
		return "-1"
	}
	return ir.FormatValue(ir.Dword(ref))
}
