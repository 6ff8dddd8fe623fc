package gomap

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/ir"
)

func testDoc() *ir.Document {
	doc := ir.NewDocument("UTC ")
	root := doc.Root
	root.AddByte("Gender", 1)
	root.AddShort("Str", -3)
	root.AddDword64("XP", math.MaxUint64)
	root.AddInt64("Gold", math.MinInt64)
	root.AddFloat("Scale", 1.5)
	root.AddDouble("Inf", math.Inf(1))
	root.AddCExoStr("Tag", "guard")
	if _, err := root.AddResRef("Conversation", "nw_guard"); err != nil {
		panic(err)
	}
	root.AddVoid("Blob", []byte{0xde, 0xad})
	root.AddCExoLocStr("FirstName", map[uint32]string{0: "Hi", 10: "Hallo", 2: "Salut"}, 42)
	root.AddStruct("Stats", 7).AddWord("Con", 12)
	items := root.AddList("ItemList")
	items.AddStruct(0).AddCExoStr("Tag", "torch")
	items.AddStruct(1).AddCExoLocStr("Name", map[uint32]string{}, ir.NoStrRef)
	root.AddList("Empty")
	return doc
}

func TestJSONRoundTrip(t *testing.T) {
	doc := testDoc()
	d, err := MarshalJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalJSON(d)
	if err != nil {
		t.Fatalf("%v\n%s", err, d)
	}
	if got.Type != doc.Type || got.Version != doc.Version || !ir.Equal(doc.Root, got.Root) {
		t.Errorf("got\n%s\nwant\n%s", encode.DumpString(got.Root), encode.DumpString(doc.Root))
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := testDoc()
	doc.Version = "V3.3"
	d, err := MarshalYAML(doc)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalYAML(d)
	if err != nil {
		t.Fatalf("%v\n%s", err, d)
	}
	if got.Type != doc.Type || got.Version != doc.Version || !ir.Equal(doc.Root, got.Root) {
		t.Errorf("got\n%s\nwant\n%s", encode.DumpString(got.Root), encode.DumpString(doc.Root))
	}
}

func TestYAMLOrder(t *testing.T) {
	d, err := MarshalYAML(testDoc())
	if err != nil {
		t.Fatal(err)
	}
	s := string(d)
	for _, pair := range [][2]string{
		{"__data_type", "Blob"},
		{"__struct_id", "Blob"},
		{"Blob", "Conversation"},
		{"str_ref: 42", "Hallo"},
		{"Salut", "Hallo"},
	} {
		i, j := strings.Index(s, pair[0]), strings.Index(s, pair[1])
		if i < 0 || j < 0 || i > j {
			t.Errorf("want %q before %q in\n%s", pair[0], pair[1], s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	doc := ir.NewDocument("IFO ")
	doc.Root.AddByte("Gender", 1)
	d, err := MarshalJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "Gender": {
    "type": "byte",
    "value": 1
  },
  "__data_type": "IFO ",
  "__struct_id": 4294967295
}
`
	if diff := cmp.Diff(want, string(d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUnboxErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind error
	}{
		{"no type", `{"__struct_id": 1}`, ir.ErrTypeMismatch},
		{"no struct id", `{"__data_type": "UTC "}`, ir.ErrTypeMismatch},
		{"unknown meta", `{"__data_type": "UTC ", "__struct_id": 1, "__x": 1}`, ir.ErrTypeMismatch},
		{"unknown kind", `{"__data_type": "UTC ", "__struct_id": 1, "A": {"type": "bool", "value": 1}}`, ir.ErrUnknownFieldType},
		{"range", `{"__data_type": "UTC ", "__struct_id": 1, "A": {"type": "byte", "value": 256}}`, ir.ErrTypeMismatch},
		{"fraction", `{"__data_type": "UTC ", "__struct_id": 1, "A": {"type": "int", "value": 1.5}}`, ir.ErrTypeMismatch},
		{"str_ref", `{"__data_type": "UTC ", "__struct_id": 1, "A": {"type": "byte", "value": 1, "str_ref": 2}}`, ir.ErrTypeMismatch},
		{"language", `{"__data_type": "UTC ", "__struct_id": 1, "A": {"type": "cexolocstr", "value": {"x": "y"}}}`, ir.ErrTypeMismatch},
		{"element", `{"__data_type": "UTC ", "__struct_id": 1, "L": {"type": "list", "value": [1]}}`, ir.ErrTypeMismatch},
		{"resref", `{"__data_type": "UTC ", "__struct_id": 1, "R": {"type": "resref", "value": "abcdefghijklmnopq"}}`, ir.ErrTypeMismatch},
		{"label", `{"__data_type": "UTC ", "__struct_id": 1, "ABCDEFGHIJKLMNOPQ": {"type": "byte", "value": 1}}`, ir.ErrTypeMismatch},
	}
	for _, tt := range tests {
		_, err := UnmarshalJSON([]byte(tt.json))
		if !errors.Is(err, tt.kind) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.kind)
		}
	}
}

func TestUnboxPath(t *testing.T) {
	src := "__data_type: \"UTC \"\n__struct_id: 1\nItemList:\n  type: list\n  value:\n  - __struct_id: 0\n    Tag: {type: byte, value: -1}\n"
	_, err := UnmarshalYAML([]byte(src))
	var e *ir.Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v", err)
	}
	if e.Path != "/ItemList[0]/Tag" {
		t.Errorf("path %q", e.Path)
	}
}
