package libdiff

import (
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/gff-format/ir"
)

// diffList aligns elements by summary, so that an element inserted in
// the middle is one insertion rather than a change to every following
// element. Aligned elements are compared field by field.
func diffList(from, to *ir.List, path string, res *[]Change) {
	m := map[string]rune{}
	fromRunes := mapElements(m, *from)
	toRunes := mapElements(m, *to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		d := &diffs[i]
		n := len([]rune(d.Text))
		for j := 0; j < n; j++ {
			switch d.Type {
			case diffpatch.DiffDelete:
				e := (*from)[fi]
				*res = append(*res, Change{Op: Delete, Path: elem(path, fi), Kind: ir.KindStruct, From: render(e)})
				fi++
			case diffpatch.DiffInsert:
				e := (*to)[ti]
				*res = append(*res, Change{Op: Insert, Path: elem(path, ti), Kind: ir.KindStruct, To: render(e)})
				ti++
			case diffpatch.DiffEqual:
				diffStruct((*from)[fi], (*to)[ti], elem(path, ti), res)
				fi++
				ti++
			}
		}
	}
}

func elem(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// summary is the struct id and the label set of an element.
func summary(s *ir.Struct) string {
	return strconv.FormatUint(uint64(s.StructID), 10) + ":" + strings.Join(s.Labels(), ",")
}

func mapElements(m map[string]rune, l ir.List) []rune {
	rs := make([]rune, len(l))
	for i, s := range l {
		k := summary(s)
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
		}
		rs[i] = r
	}
	return rs
}
