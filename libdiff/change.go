package libdiff

import (
	"strings"

	"github.com/signadot/gff-format/ir"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	}
	return "?"
}

// Change is one difference. From and To are rendered values; Text is
// set for changed strings and shows the edit inline.
type Change struct {
	Op   Op
	Path string
	Kind ir.Kind
	From string
	To   string
	Text string
}

func (c Change) String() string {
	b := &strings.Builder{}
	b.WriteString(c.Op.String())
	b.WriteByte(' ')
	b.WriteString(c.Path)
	b.WriteString(" (")
	b.WriteString(c.Kind.String())
	b.WriteString(") ")
	switch {
	case c.Op == Insert:
		b.WriteString(c.To)
	case c.Op == Delete:
		b.WriteString(c.From)
	case c.Text != "":
		b.WriteString(c.Text)
	default:
		b.WriteString(c.From)
		b.WriteString(" -> ")
		b.WriteString(c.To)
	}
	return b.String()
}

// Format renders changes one per line.
func Format(cs []Change) string {
	b := &strings.Builder{}
	for _, c := range cs {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func render(v ir.Value) string {
	return ir.FormatValue(v)
}
