package parse

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/gff-format/encode"
	"github.com/signadot/gff-format/format"
	"github.com/signadot/gff-format/ir"
)

func encoded(t *testing.T, root *ir.Struct) []byte {
	t.Helper()
	d, err := encode.EncodeStruct(root, "GIT", "V3.2")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func put32(d []byte, off uint32, v uint32) {
	binary.LittleEndian.PutUint32(d[off:], v)
}

func TestParseHeader(t *testing.T) {
	d := encoded(t, ir.NewStruct(0))
	h, err := ParseHeader(d)
	if err != nil {
		t.Fatal(err)
	}
	if h.TypeTag() != "GIT" || h.VersionTag() != "V3.2" || h.Structs.Count != 1 {
		t.Errorf("header %+v", h)
	}

	bad := append([]byte(nil), d...)
	copy(bad[4:8], "V4.0")
	if _, err := Parse(bad); !errors.Is(err, ir.ErrMalformedHeader) {
		t.Errorf("version: %v", err)
	}
	if _, err := Parse(bad, SupportedVersion("V4.0")); err != nil {
		t.Errorf("supported version: %v", err)
	}

	bad = append([]byte(nil), d...)
	put32(bad, 8, 60)
	if _, err := Parse(bad); !errors.Is(err, ir.ErrMalformedHeader) {
		t.Errorf("struct offset: %v", err)
	}

	if _, err := Parse(d[:20]); !errors.Is(err, ir.ErrOutOfBounds) {
		t.Errorf("short header: %v", err)
	}
}

func TestParseCorrupt(t *testing.T) {
	root := ir.NewStruct(0)
	root.AddByte("A", 1)
	root.AddCExoStr("B", "text")
	root.AddList("C", ir.NewStruct(1))
	root.AddStruct("D", 2)
	root.AddCExoLocStr("E", map[uint32]string{0: "Hi"}, 7)
	d := encoded(t, root)
	h := format.DecodeHeader(d)
	// fields in label order: A, B, C, D, E; structs: root, C[0], D
	fieldAt := func(i uint32) uint32 { return h.Fields.Offset + i*format.FieldEntrySize }
	// E follows B's 4 byte length and "text"
	locAt := h.FieldData.Offset + 8

	tests := []struct {
		name   string
		mutate func(d []byte)
		want   error
	}{
		{"unknown type", func(d []byte) { put32(d, fieldAt(0), 16) }, ir.ErrUnknownFieldType},
		{"label index", func(d []byte) { put32(d, fieldAt(0)+4, 9) }, ir.ErrOutOfBounds},
		{"string offset", func(d []byte) { put32(d, fieldAt(1)+8, 1000) }, ir.ErrOutOfBounds},
		{"string length", func(d []byte) { put32(d, h.FieldData.Offset, 1000) }, ir.ErrOutOfBounds},
		{"list offset unaligned", func(d []byte) { put32(d, fieldAt(2)+8, 2) }, ir.ErrOutOfBounds},
		{"list count", func(d []byte) { put32(d, h.ListIndices.Offset, 7) }, ir.ErrOutOfBounds},
		{"list element", func(d []byte) { put32(d, h.ListIndices.Offset+4, 50) }, ir.ErrOutOfBounds},
		{"field count", func(d []byte) { put32(d, 56+8, 9) }, ir.ErrOutOfBounds},
		{"field run unaligned", func(d []byte) { put32(d, 56+4, 1) }, ir.ErrOutOfBounds},
		{"cycle", func(d []byte) { put32(d, h.ListIndices.Offset+4, 0) }, ir.ErrMalformedHeader},
		{"duplicate label", func(d []byte) { put32(d, fieldAt(1)+4, 0) }, ir.ErrMalformedHeader},
		{"shared struct", func(d []byte) { put32(d, fieldAt(3)+8, 1) }, ir.ErrMalformedHeader},
		{"locstr total below 8", func(d []byte) { put32(d, locAt, 4) }, ir.ErrOutOfBounds},
		{"locstr total past data", func(d []byte) { put32(d, locAt, 1000) }, ir.ErrOutOfBounds},
		{"locstr entry header", func(d []byte) { put32(d, locAt+8, 5) }, ir.ErrOutOfBounds},
		{"locstr entry text", func(d []byte) { put32(d, locAt+16, 100) }, ir.ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := append([]byte(nil), d...)
			tt.mutate(bad)
			doc, err := Parse(bad)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, %v, want %v", doc, err, tt.want)
			}
		})
	}
}

func TestParseSharedChain(t *testing.T) {
	// each struct points both its fields at the next one; decoding
	// must fail instead of expanding 2^n subtrees
	const n = 24
	root := ir.NewStruct(0)
	cur := root
	for i := 1; i < n; i++ {
		cur.AddStruct("L", uint32(i))
		cur = cur.AddStruct("R", uint32(i))
	}
	d := encoded(t, root)
	h := format.DecodeHeader(d)
	fields := d[h.Fields.Offset : h.Fields.Offset+h.Fields.Count*format.FieldEntrySize]
	labels := d[h.Labels.Offset : h.Labels.Offset+h.Labels.Count*format.LabelSize]
	var lIndex uint32
	for i := uint32(0); i < h.Labels.Count; i++ {
		if labels[i*format.LabelSize] == 'L' {
			lIndex = i
		}
	}
	// L's struct is written just before its sibling R's, so moving
	// every L one struct on makes both fields share R's struct
	for off := uint32(0); off < uint32(len(fields)); off += format.FieldEntrySize {
		if binary.LittleEndian.Uint32(fields[off+4:]) == lIndex {
			put32(fields, off+8, binary.LittleEndian.Uint32(fields[off+8:])+1)
		}
	}
	if _, err := Parse(d); !errors.Is(err, ir.ErrMalformedHeader) {
		t.Fatalf("got %v", err)
	}
}

func TestParseErrorContext(t *testing.T) {
	root := ir.NewStruct(0)
	root.AddStruct("Sub", 1).AddCExoStr("Tag", "x")
	d := encoded(t, root)
	h := format.DecodeHeader(d)
	put32(d, h.FieldData.Offset, 99)
	_, err := Parse(d)
	var e *ir.Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v", err)
	}
	if e.Path != "/Sub/Tag" || e.Label != "Tag" || e.Phase != ir.PhaseDecode || e.Offset < int64(h.FieldData.Offset) {
		t.Errorf("context %+v", e)
	}
}

func TestMaxDepth(t *testing.T) {
	root := ir.NewStruct(0)
	cur := root
	for i := 0; i < 10; i++ {
		cur = cur.AddStruct("S", uint32(i))
	}
	d := encoded(t, root)
	if _, err := Parse(d); err != nil {
		t.Fatal(err)
	}
	_, err := Parse(d, MaxDepth(5))
	if !errors.Is(err, ir.ErrOutOfBounds) {
		t.Fatalf("got %v", err)
	}
}

func TestFloatOptions(t *testing.T) {
	root := ir.NewStruct(0)
	root.AddFloat("X", -1.23456)
	d := encoded(t, root)
	got, err := ParseStruct(d, FloatRounding(2), FloatUnsigned(true))
	if err != nil {
		t.Fatal(err)
	}
	if v := got.Field("X").Value.(ir.Float); math.Abs(float64(v)-1.23) > 1e-6 {
		t.Errorf("got %v", v)
	}
	got, err = ParseStruct(d)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(root, got); diff != "" {
		t.Errorf("default options changed floats (-want +got):\n%s", diff)
	}
}

func TestDword64Order(t *testing.T) {
	root := ir.NewStruct(0)
	root.AddDword64("D", 0x1122334455667788)
	d := encoded(t, root)
	h := format.DecodeHeader(d)
	fd := h.FieldData.Offset
	if hi, lo := binary.LittleEndian.Uint32(d[fd:]), binary.LittleEndian.Uint32(d[fd+4:]); hi != 0x11223344 || lo != 0x55667788 {
		t.Errorf("stored %#x %#x", hi, lo)
	}
	got, err := ParseStruct(d)
	if err != nil {
		t.Fatal(err)
	}
	if v := got.Field("D").Value; v != ir.Dword64(0x1122334455667788) {
		t.Errorf("decoded %#x", v)
	}
}
