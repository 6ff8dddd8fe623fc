package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testTree() *Struct {
	root := NewStruct(NoStructID)
	root.AddByte("Gender", 1)
	root.AddCExoStr("Tag", "guard")
	root.AddCExoLocStr("FirstName", map[uint32]string{0: "Hi", 1: "Hallo"}, 42)
	sub := root.AddStruct("Stats", 7)
	sub.AddShort("Str", -3)
	items := root.AddList("ItemList")
	items.AddStruct(0).AddCExoStr("Tag", "torch")
	items.AddStruct(1).AddCExoStr("Tag", "sword")
	return root
}

func TestGet(t *testing.T) {
	root := testTree()
	tests := []struct {
		path string
		want any
	}{
		{"/Gender$", Byte(1)},
		{"Gender?", KindByte},
		{"/Gender%", NoStrRef},
		{"/FirstName/1", "Hallo"},
		{"/FirstName/0$", "Hi"},
		{"/FirstName/0?", KindCExoStr},
		{"/FirstName%", uint32(42)},
		{"/FirstName?", KindCExoLocStr},
		{"/Stats/Str$", Short(-3)},
		{"/Stats?", KindStruct},
		{"/ItemList[1]/Tag$", CExoStr("sword")},
		{"/ItemList[0]?", KindStruct},
		{"/ItemList?", KindList},
	}
	for _, tt := range tests {
		got, err := root.Get(tt.path)
		if err != nil {
			t.Errorf("Get(%q): %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Get(%q) = %#v, want %#v", tt.path, got, tt.want)
		}
	}
}

func TestGetNodes(t *testing.T) {
	root := testTree()
	got, err := root.Get("/")
	if err != nil || got != root {
		t.Errorf("root: got %v, %v", got, err)
	}
	got, err = root.Get("/Tag")
	if err != nil || got != root.Field("Tag") {
		t.Errorf("field: got %v, %v", got, err)
	}
	got, err = root.Get("/ItemList[1]")
	if err != nil || got != root.Field("ItemList").List().At(1) {
		t.Errorf("element: got %v, %v", got, err)
	}
	n, err := Resolve(root, "/Stats/Str")
	if err != nil {
		t.Fatal(err)
	}
	if n.Struct != root.Field("Stats").Struct() || n.Path != "/Stats/Str" {
		t.Errorf("node: got %+v", n)
	}
}

func TestGetErrors(t *testing.T) {
	root := testTree()
	tests := []struct {
		path string
		want error
	}{
		{"/Missing", ErrPathNotFound},
		{"/Stats/Missing", ErrPathNotFound},
		{"/ItemList[5]", ErrPathNotFound},
		{"/FirstName/3", ErrPathNotFound},
		{"/Gender[0]", ErrTypeMismatch},
		{"/Gender/X", ErrTypeMismatch},
		{"/ItemList/Tag", ErrTypeMismatch},
		{"/FirstName/x", ErrTypeMismatch},
		{"/FirstName/0/x", ErrTypeMismatch},
		{"/A[x]", ErrPathNotFound},
	}
	for _, tt := range tests {
		_, err := root.Get(tt.path)
		if !errors.Is(err, tt.want) {
			t.Errorf("Get(%q): got %v, want %v", tt.path, err, tt.want)
		}
	}
}

func TestSet(t *testing.T) {
	root := testTree()
	if err := root.Set("/Gender", 5); err != nil {
		t.Fatal(err)
	}
	if got := root.Field("Gender").Value; got != Byte(5) {
		t.Errorf("gender: got %#v", got)
	}
	if err := root.Set("/FirstName/4", "Salut"); err != nil {
		t.Fatal(err)
	}
	if err := root.Set("/FirstName%", 7); err != nil {
		t.Fatal(err)
	}
	f := root.Field("FirstName")
	want := LocString{0: "Hi", 1: "Hallo", 4: "Salut"}
	if diff := cmp.Diff(want, f.LocString()); diff != "" {
		t.Errorf("texts (-want +got):\n%s", diff)
	}
	if f.StrRef != 7 {
		t.Errorf("strref: got %d", f.StrRef)
	}
	if err := root.Set("/Stats/Str?", "int"); err != nil {
		t.Fatal(err)
	}
	if got := root.Field("Stats").Struct().Field("Str").Value; got != Int(-3) {
		t.Errorf("retype: got %#v", got)
	}
	if err := root.Set("/ItemList[0]/Tag$", "lantern"); err != nil {
		t.Fatal(err)
	}
	if got, _ := root.Get("/ItemList[0]/Tag$"); got != CExoStr("lantern") {
		t.Errorf("element tag: got %#v", got)
	}
}

func TestSetFailureLeavesTree(t *testing.T) {
	root := testTree()
	before := root.Clone()
	tests := []struct {
		path string
		v    any
		want error
	}{
		{"/Gender", 300, ErrTypeMismatch},
		{"/Gender", "five", ErrTypeMismatch},
		{"/Gender%", 1, ErrTypeMismatch},
		{"/Stats", NewStruct(0), ErrTypeMismatch},
		{"/ItemList[0]", NewStruct(0), ErrTypeMismatch},
		{"/Tag?", KindInt, ErrTypeMismatch},
		{"/Tag?", "bogus", ErrUnknownFieldType},
		{"/FirstName/2", 3, ErrTypeMismatch},
		{"/Missing", 1, ErrPathNotFound},
	}
	for _, tt := range tests {
		err := root.Set(tt.path, tt.v)
		if !errors.Is(err, tt.want) {
			t.Errorf("Set(%q, %v): got %v, want %v", tt.path, tt.v, err, tt.want)
		}
	}
	if !Equal(before, root) {
		t.Errorf("tree changed by failed sets")
	}
}

func TestSetLanguageNilLocString(t *testing.T) {
	s := NewStruct(NoStructID)
	s.Put(NewField("Name", LocString(nil)))
	if err := Validate(s); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("/Name/0", "Hi"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(LocString{0: "Hi"}, s.Fields["Name"].LocString()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	root := testTree()
	if err := root.Delete("/FirstName/0"); err != nil {
		t.Fatal(err)
	}
	if err := root.Delete("/ItemList[1]/Tag"); err != nil {
		t.Fatal(err)
	}
	if err := root.Delete("/Gender"); err != nil {
		t.Fatal(err)
	}
	if _, err := root.Get("/Gender"); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("gender still present: %v", err)
	}
	if got := root.Field("FirstName").LocString().Languages(); !cmp.Equal(got, []uint32{1}) {
		t.Errorf("languages: got %v", got)
	}
	if got := root.Field("ItemList").List().At(1).Len(); got != 0 {
		t.Errorf("element fields: got %d", got)
	}
	if err := root.Delete("/Stats"); err != nil {
		t.Fatal(err)
	}
	if err := root.Delete("/ItemList[0]"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("delete element: got %v", err)
	}
}
