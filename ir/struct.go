package ir

import (
	"fmt"
	"maps"
	"slices"
)

// NoStructID is the struct id given to structs built in memory without
// an explicit id.
const NoStructID uint32 = 0xFFFFFFFF

// NoStrRef marks a localized string with no string-table binding.
const NoStrRef uint32 = 0xFFFFFFFF

// Struct is a set of uniquely labeled fields tagged with a struct id.
type Struct struct {
	StructID uint32
	Fields   map[string]*Field
}

// Field is a labeled value. StrRef is only meaningful for
// localized strings and is NoStrRef otherwise.
type Field struct {
	Label  string
	Value  Value
	StrRef uint32
}

func NewStruct(structID uint32) *Struct {
	return &Struct{StructID: structID, Fields: map[string]*Field{}}
}

func NewField(label string, v Value) *Field {
	return &Field{Label: label, Value: v, StrRef: NoStrRef}
}

func (f *Field) Kind() Kind {
	return f.Value.Kind()
}

// HasStrRef reports whether f is bound to a string-table entry.
func (f *Field) HasStrRef() bool {
	return f.StrRef != NoStrRef
}

func (f *Field) Clone() *Field {
	return &Field{Label: f.Label, Value: CloneValue(f.Value), StrRef: f.StrRef}
}

func (s *Struct) Clone() *Struct {
	res := &Struct{StructID: s.StructID, Fields: make(map[string]*Field, len(s.Fields))}
	for k, f := range s.Fields {
		res.Fields[k] = f.Clone()
	}
	return res
}

// Labels returns the field labels in sorted order.
func (s *Struct) Labels() []string {
	return slices.Sorted(maps.Keys(s.Fields))
}

// Field returns the field labeled label, or nil.
func (s *Struct) Field(label string) *Field {
	return s.Fields[label]
}

func (s *Struct) Len() int {
	return len(s.Fields)
}

// Put stores f under its label, replacing any field with the same label.
func (s *Struct) Put(f *Field) {
	if s.Fields == nil {
		s.Fields = map[string]*Field{}
	}
	s.Fields[f.Label] = f
}

// AddField converts v to kind k, validating it, and stores it under label.
func (s *Struct) AddField(label string, k Kind, v any, opts ...ValidOption) (*Field, error) {
	val, err := ValueFor(k, v, opts...)
	if err != nil {
		return nil, withLabel(err, label)
	}
	f := NewField(label, val)
	s.Put(f)
	return f, nil
}

func (s *Struct) AddByte(label string, v uint8) *Field     { return s.add(label, Byte(v)) }
func (s *Struct) AddChar(label string, v uint8) *Field     { return s.add(label, Char(v)) }
func (s *Struct) AddWord(label string, v uint16) *Field    { return s.add(label, Word(v)) }
func (s *Struct) AddShort(label string, v int16) *Field    { return s.add(label, Short(v)) }
func (s *Struct) AddDword(label string, v uint32) *Field   { return s.add(label, Dword(v)) }
func (s *Struct) AddInt(label string, v int32) *Field      { return s.add(label, Int(v)) }
func (s *Struct) AddDword64(label string, v uint64) *Field { return s.add(label, Dword64(v)) }
func (s *Struct) AddInt64(label string, v int64) *Field    { return s.add(label, Int64(v)) }
func (s *Struct) AddFloat(label string, v float32) *Field  { return s.add(label, Float(v)) }
func (s *Struct) AddDouble(label string, v float64) *Field { return s.add(label, Double(v)) }
func (s *Struct) AddCExoStr(label, v string) *Field        { return s.add(label, CExoStr(v)) }
func (s *Struct) AddVoid(label string, v []byte) *Field    { return s.add(label, Void(v)) }

// AddResRef adds a resref field, failing if v exceeds the resref limit.
func (s *Struct) AddResRef(label, v string, opts ...ValidOption) (*Field, error) {
	return s.AddField(label, KindResRef, v, opts...)
}

// AddCExoLocStr adds a localized string with the given texts and str ref.
func (s *Struct) AddCExoLocStr(label string, texts map[uint32]string, strRef uint32) *Field {
	f := s.add(label, LocString(maps.Clone(texts)))
	if texts == nil {
		f.Value = LocString{}
	}
	f.StrRef = strRef
	return f
}

// AddStruct adds a nested struct field and returns the nested struct.
func (s *Struct) AddStruct(label string, structID uint32) *Struct {
	sub := NewStruct(structID)
	s.add(label, sub)
	return sub
}

// AddList adds a list field holding elems and returns the stored list;
// elements appended with List.AddStruct land in the field.
func (s *Struct) AddList(label string, elems ...*Struct) *List {
	l := List(elems)
	if l == nil {
		l = List{}
	}
	s.add(label, &l)
	return &l
}

// List returns the list held by f, or nil if f is not a list.
func (f *Field) List() *List {
	l, _ := f.Value.(*List)
	return l
}

// Struct returns the struct held by f, or nil if f is not a struct.
func (f *Field) Struct() *Struct {
	s, _ := f.Value.(*Struct)
	return s
}

// LocString returns the texts held by f, or nil if f is not a
// localized string.
func (f *Field) LocString() LocString {
	l, _ := f.Value.(LocString)
	return l
}

func (s *Struct) add(label string, v Value) *Field {
	f := NewField(label, v)
	s.Put(f)
	return f
}

func (s *Struct) String() string {
	return fmt.Sprintf("struct(%d, %d fields)", s.StructID, len(s.Fields))
}
