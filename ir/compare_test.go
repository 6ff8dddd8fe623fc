package ir

import (
	"math"
	"testing"
)

func TestCompare(t *testing.T) {
	withStrRef := func(ref uint32) *Struct {
		s := NewStruct(0)
		s.AddCExoLocStr("Name", map[uint32]string{0: "a"}, ref)
		return s
	}
	byteField := func(label string, v uint8) *Struct {
		s := NewStruct(0)
		s.AddByte(label, v)
		return s
	}
	tests := []struct {
		name     string
		a, b     *Struct
		expected int
	}{
		{"nil < struct", nil, NewStruct(0), -1},
		{"same", testTree(), testTree(), 0},
		{"struct id", NewStruct(0), NewStruct(1), -1},
		{"fewer fields", NewStruct(0), byteField("A", 1), -1},
		{"label", byteField("A", 1), byteField("B", 1), -1},
		{"value", byteField("A", 2), byteField("A", 1), 1},
		{"strref", withStrRef(1), withStrRef(2), -1},
		{"kind before value", byteField("A", 9), func() *Struct {
			s := NewStruct(0)
			s.AddWord("A", 0)
			return s
		}(), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %d, want %d", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("reversed Compare() = %d, want %d", got, -tt.expected)
			}
		})
	}
}

func TestEqualIgnoresScalarStrRef(t *testing.T) {
	a, b := NewStruct(0), NewStruct(0)
	a.AddInt("N", 1).StrRef = 5
	b.AddInt("N", 1)
	if !Equal(a, b) {
		t.Errorf("str ref of an int field affects equality")
	}
}

func TestEqualNaN(t *testing.T) {
	a, b := NewStruct(0), NewStruct(0)
	a.AddDouble("D", math.NaN())
	b.AddDouble("D", math.NaN())
	if !Equal(a, b) {
		t.Errorf("NaN doubles not equal")
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := testTree()
	b := a.Clone()
	b.Field("ItemList").List().At(0).Field("Tag").Value = CExoStr("x")
	b.Field("FirstName").LocString()[0] = "changed"
	if Equal(a, b) {
		t.Fatalf("clone shares state")
	}
	if got, _ := a.Get("/ItemList[0]/Tag$"); got != CExoStr("torch") {
		t.Errorf("original changed: %v", got)
	}
}
