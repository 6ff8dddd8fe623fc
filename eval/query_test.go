package eval

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/gff-format/ir"
)

func testTree() *ir.Struct {
	root := ir.NewStruct(ir.NoStructID)
	root.AddByte("Gender", 1)
	root.AddCExoStr("Tag", "guard")
	root.AddCExoLocStr("FirstName", map[uint32]string{0: "Hi", 4: "Salut"}, 42)
	if _, err := root.AddResRef("Conversation", "nw_guard"); err != nil {
		panic(err)
	}
	items := root.AddList("ItemList")
	items.AddStruct(0).AddCExoStr("Tag", "torch")
	items.AddStruct(1).AddCExoStr("Tag", "sword")
	return root
}

func TestFind(t *testing.T) {
	root := testTree()
	tests := []struct {
		src  string
		want []string
	}{
		{`kind == "resref" && value startsWith "nw_"`, []string{"/Conversation"}},
		{`label == "Tag" && depth > 1`, []string{"/ItemList[0]/Tag", "/ItemList[1]/Tag"}},
		{`path matches "^/ItemList\\[\\d+\\]$"`, []string{"/ItemList[0]", "/ItemList[1]"}},
		{`kind == "byte" && value >= 1`, []string{"/Gender"}},
		{`strref == 42 && kind == "cexolocstr"`, []string{"/FirstName"}},
		{`kind == "cexostr" && value == "Salut"`, []string{"/FirstName/4"}},
		{`depth == 1 && has("/FirstName/4") && label == "Tag"`, []string{"/Tag"}},
		{`get("/Tag$") == "guard" && label == "Gender"`, []string{"/Gender"}},
		{`get("/Gender?") == "byte" && path == "/"`, nil},
		{`false`, nil},
	}
	for _, tt := range tests {
		q, err := Compile(tt.src)
		if err != nil {
			t.Errorf("Compile(%q): %v", tt.src, err)
			continue
		}
		es, err := q.Find(root)
		if err != nil {
			t.Errorf("Find(%q): %v", tt.src, err)
			continue
		}
		var got []string
		for _, e := range es {
			got = append(got, e.Path)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Find(%q) (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`path + `, `depth`, `nosuchvar == 1`} {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) succeeded", src)
		}
	}
}

func TestGetError(t *testing.T) {
	q, err := Compile(`get("/Missing$") == 1`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q.Find(testTree()); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestToAny(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{ir.Byte(3), 3},
		{ir.Short(-2), -2},
		{ir.Dword(7), int64(7)},
		{ir.Dword64(1 << 63), uint64(1 << 63)},
		{ir.Float(1.5), 1.5},
		{ir.ResRef("nw"), "nw"},
		{ir.Void{0xab, 0x01}, "ab01"},
		{ir.LocString{0: "Hi"}, map[string]any{"0": "Hi"}},
		{ir.KindList, "list"},
		{ir.NewStruct(0), nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ToAny(tt.in)); diff != "" {
			t.Errorf("ToAny(%#v) (-want +got):\n%s", tt.in, diff)
		}
	}
}
