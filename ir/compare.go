package ir

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

// Compare orders two trees: by struct id, then field by field in label
// order. The result is 0 if a and b are structurally equal, -1 if a < b
// and +1 if a > b. String references only take part for localized
// strings.
func Compare(a, b *Struct) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := cmp.Compare(a.StructID, b.StructID); c != 0 {
		return c
	}
	la, lb := a.Labels(), b.Labels()
	for i := 0; i < min(len(la), len(lb)); i++ {
		if c := strings.Compare(la[i], lb[i]); c != 0 {
			return c
		}
		if c := CompareFields(a.Fields[la[i]], b.Fields[lb[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(la), len(lb))
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b *Struct) bool {
	return Compare(a, b) == 0
}

// CompareFields orders fields by label, kind and then value.
func CompareFields(a, b *Field) int {
	if c := strings.Compare(a.Label, b.Label); c != 0 {
		return c
	}
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	if ka == KindCExoLocStr {
		if c := cmp.Compare(a.StrRef, b.StrRef); c != 0 {
			return c
		}
	}
	return CompareValues(a.Value, b.Value)
}

// CompareValues orders two values, first by kind.
func CompareValues(a, b Value) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case Byte:
		return cmp.Compare(x, b.(Byte))
	case Char:
		return cmp.Compare(x, b.(Char))
	case Word:
		return cmp.Compare(x, b.(Word))
	case Short:
		return cmp.Compare(x, b.(Short))
	case Dword:
		return cmp.Compare(x, b.(Dword))
	case Int:
		return cmp.Compare(x, b.(Int))
	case Dword64:
		return cmp.Compare(x, b.(Dword64))
	case Int64:
		return cmp.Compare(x, b.(Int64))
	case Float:
		return cmp.Compare(x, b.(Float))
	case Double:
		return cmp.Compare(x, b.(Double))
	case CExoStr:
		return cmp.Compare(x, b.(CExoStr))
	case ResRef:
		return cmp.Compare(x, b.(ResRef))
	case Void:
		return bytes.Compare(x, b.(Void))
	case LocString:
		return compareLocStrings(x, b.(LocString))
	case *Struct:
		return Compare(x, b.(*Struct))
	case *List:
		y := b.(*List)
		return slices.CompareFunc(*x, *y, Compare)
	}
	return 0
}

func compareLocStrings(a, b LocString) int {
	la, lb := a.Languages(), b.Languages()
	for i := 0; i < min(len(la), len(lb)); i++ {
		if c := cmp.Compare(la[i], lb[i]); c != 0 {
			return c
		}
		if c := strings.Compare(a[la[i]], b[lb[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(la), len(lb))
}
