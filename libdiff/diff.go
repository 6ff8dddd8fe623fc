package libdiff

import (
	"maps"
	"slices"
	"strconv"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/gff-format/ir"
)

// Diff returns the changes turning from into to, in path order of the
// walk. Equal trees give no changes.
func Diff(from, to *ir.Struct) []Change {
	var res []Change
	diffStruct(from, to, "", &res)
	return res
}

// DiffDocuments is Diff on the roots, with a change at "/" when the
// type tags differ.
func DiffDocuments(from, to *ir.Document) []Change {
	var res []Change
	if from.Type != to.Type || from.Version != to.Version {
		res = append(res, Change{
			Op:   Replace,
			Path: "/",
			Kind: ir.KindStruct,
			From: strconv.Quote(from.Type + from.Version),
			To:   strconv.Quote(to.Type + to.Version),
		})
	}
	return append(res, Diff(from.Root, to.Root)...)
}

func diffStruct(from, to *ir.Struct, path string, res *[]Change) {
	if from.StructID != to.StructID {
		*res = append(*res, Change{
			Op:   Replace,
			Path: at(path),
			Kind: ir.KindStruct,
			From: render(from),
			To:   render(to),
		})
	}
	labelMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromLabels := from.Labels()
	toLabels := to.Labels()
	fromRunes := mapLabels(labelMap, runeMap, fromLabels)
	toRunes := mapLabels(labelMap, runeMap, toLabels)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	for i := range diffs {
		d := &diffs[i]
		for _, r := range d.Text {
			label := runeMap[r]
			fpath := path + "/" + label
			switch d.Type {
			case diffpatch.DiffDelete:
				f := from.Fields[label]
				*res = append(*res, Change{Op: Delete, Path: fpath, Kind: f.Kind(), From: render(f.Value)})
			case diffpatch.DiffInsert:
				f := to.Fields[label]
				*res = append(*res, Change{Op: Insert, Path: fpath, Kind: f.Kind(), To: render(f.Value)})
			case diffpatch.DiffEqual:
				diffField(from.Fields[label], to.Fields[label], fpath, res)
			}
		}
	}
}

func diffField(from, to *ir.Field, path string, res *[]Change) {
	fk, tk := from.Kind(), to.Kind()
	if fk != tk {
		*res = append(*res, Change{
			Op:   Replace,
			Path: path,
			Kind: tk,
			From: fk.String() + " " + render(from.Value),
			To:   tk.String() + " " + render(to.Value),
		})
		return
	}
	switch f := from.Value.(type) {
	case *ir.Struct:
		diffStruct(f, to.Value.(*ir.Struct), path, res)
	case *ir.List:
		diffList(f, to.Value.(*ir.List), path, res)
	case ir.LocString:
		diffLocString(from, to, path, res)
	case ir.CExoStr:
		t := to.Value.(ir.CExoStr)
		if f != t {
			*res = append(*res, Change{
				Op: Replace, Path: path, Kind: tk,
				From: render(f), To: render(t),
				Text: StringDiff(string(f), string(t)),
			})
		}
	default:
		if ir.CompareValues(from.Value, to.Value) != 0 {
			*res = append(*res, Change{Op: Replace, Path: path, Kind: tk, From: render(from.Value), To: render(to.Value)})
		}
	}
}

func diffLocString(from, to *ir.Field, path string, res *[]Change) {
	if from.StrRef != to.StrRef {
		*res = append(*res, Change{
			Op: Replace, Path: path + "%", Kind: ir.KindDword,
			From: strRef(from.StrRef), To: strRef(to.StrRef),
		})
	}
	fl, tl := from.LocString(), to.LocString()
	langs := map[uint32]bool{}
	for lang := range fl {
		langs[lang] = true
	}
	for lang := range tl {
		langs[lang] = true
	}
	for _, lang := range slices.Sorted(maps.Keys(langs)) {
		lpath := path + "/" + strconv.FormatUint(uint64(lang), 10)
		f, inFrom := fl[lang]
		t, inTo := tl[lang]
		switch {
		case !inTo:
			*res = append(*res, Change{Op: Delete, Path: lpath, Kind: ir.KindCExoStr, From: strconv.Quote(f)})
		case !inFrom:
			*res = append(*res, Change{Op: Insert, Path: lpath, Kind: ir.KindCExoStr, To: strconv.Quote(t)})
		case f != t:
			*res = append(*res, Change{
				Op: Replace, Path: lpath, Kind: ir.KindCExoStr,
				From: strconv.Quote(f), To: strconv.Quote(t),
				Text: StringDiff(f, t),
			})
		}
	}
}

func strRef(ref uint32) string {
	if ref == ir.NoStrRef {
		return "-1"
	}
	return strconv.FormatUint(uint64(ref), 10)
}

func mapLabels(m map[string]rune, im map[rune]string, labels []string) []rune {
	rs := make([]rune, len(labels))
	for i, l := range labels {
		r, ok := m[l]
		if !ok {
			r = rune(len(m))
			m[l] = r
			im[r] = l
		}
		rs[i] = r
	}
	return rs
}

func at(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
