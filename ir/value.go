package ir

import (
	"bytes"
	"maps"
	"slices"
)

// Value is the closed set of field values. Each concrete type maps to
// exactly one Kind.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Byte    uint8
	Char    uint8
	Word    uint16
	Short   int16
	Dword   uint32
	Int     int32
	Dword64 uint64
	Int64   int64
	Float   float32
	Double  float64
	CExoStr string
	ResRef  string
	Void    []byte
	List    []*Struct
)

// LocString maps language ids to text. The string-table reference
// shared by all languages lives on the owning Field.
type LocString map[uint32]string

func (Byte) Kind() Kind      { return KindByte }
func (Char) Kind() Kind      { return KindChar }
func (Word) Kind() Kind      { return KindWord }
func (Short) Kind() Kind     { return KindShort }
func (Dword) Kind() Kind     { return KindDword }
func (Int) Kind() Kind       { return KindInt }
func (Dword64) Kind() Kind   { return KindDword64 }
func (Int64) Kind() Kind     { return KindInt64 }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (CExoStr) Kind() Kind   { return KindCExoStr }
func (ResRef) Kind() Kind    { return KindResRef }
func (LocString) Kind() Kind { return KindCExoLocStr }
func (Void) Kind() Kind      { return KindVoid }
func (*Struct) Kind() Kind   { return KindStruct }
func (*List) Kind() Kind     { return KindList }

func (Byte) isValue()      {}
func (Char) isValue()      {}
func (Word) isValue()      {}
func (Short) isValue()     {}
func (Dword) isValue()     {}
func (Int) isValue()       {}
func (Dword64) isValue()   {}
func (Int64) isValue()     {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (CExoStr) isValue()   {}
func (ResRef) isValue()    {}
func (LocString) isValue() {}
func (Void) isValue()      {}
func (*Struct) isValue()   {}
func (*List) isValue()     {}

// Get returns the text for lang, or "" if the language is not set.
func (l LocString) Get(lang uint32) string {
	return l[lang]
}

// Languages returns the language ids in ascending order.
func (l LocString) Languages() []uint32 {
	return slices.Sorted(maps.Keys(l))
}

// Compact returns a copy without empty texts.
func (l LocString) Compact() LocString {
	res := make(LocString, len(l))
	for k, v := range l {
		if v == "" {
			continue
		}
		res[k] = v
	}
	return res
}

// AddStruct appends a new element with the given struct id and returns it.
func (l *List) AddStruct(structID uint32) *Struct {
	s := NewStruct(structID)
	*l = append(*l, s)
	return s
}

// Append adds existing structs to the end of the list.
func (l *List) Append(elems ...*Struct) {
	*l = append(*l, elems...)
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(*l)
}

// At returns element i, or nil when i is out of range.
func (l *List) At(i int) *Struct {
	if l == nil || i < 0 || i >= len(*l) {
		return nil
	}
	return (*l)[i]
}

// CloneValue returns a deep copy of v.
func CloneValue(v Value) Value {
	switch x := v.(type) {
	case Void:
		return Void(bytes.Clone(x))
	case LocString:
		return maps.Clone(x)
	case *Struct:
		return x.Clone()
	case *List:
		res := make(List, len(*x))
		for i, s := range *x {
			res[i] = s.Clone()
		}
		return &res
	default:
		return v
	}
}
