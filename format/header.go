package format

import (
	"encoding/binary"
	"strings"
)

const (
	// HeaderSize is the size of the fixed preamble, and the offset of
	// the struct table in every well-formed file.
	HeaderSize = 56

	StructEntrySize = 12
	FieldEntrySize  = 12
	LabelSize       = 16
	IndexSize       = 4
)

// Region locates one of the six tables. Count is an element count for
// the struct, field and label tables and a byte count for the others.
type Region struct {
	Offset uint32
	Count  uint32
}

// Header is the decoded preamble. Type and Version keep their raw 4
// bytes, padding included.
type Header struct {
	Type         string
	Version      string
	Structs      Region
	Fields       Region
	Labels       Region
	FieldData    Region
	FieldIndices Region
	ListIndices  Region
}

// Regions returns pointers to the six regions in table order.
func (h *Header) Regions() []*Region {
	return []*Region{&h.Structs, &h.Fields, &h.Labels, &h.FieldData, &h.FieldIndices, &h.ListIndices}
}

// DecodeHeader reads a header from the first HeaderSize bytes of d,
// which must be at least that long.
func DecodeHeader(d []byte) Header {
	h := Header{Type: string(d[0:4]), Version: string(d[4:8])}
	off := 8
	for _, r := range h.Regions() {
		r.Offset = binary.LittleEndian.Uint32(d[off:])
		r.Count = binary.LittleEndian.Uint32(d[off+4:])
		off += 8
	}
	return h
}

// AppendBinary appends the encoded header. The type tag is space
// padded and the version NUL padded to 4 bytes; both are truncated
// to 4.
func (h *Header) AppendBinary(d []byte) []byte {
	d = append(d, pad(h.Type, ' ')...)
	d = append(d, pad(h.Version, 0)...)
	for _, r := range h.Regions() {
		d = binary.LittleEndian.AppendUint32(d, r.Offset)
		d = binary.LittleEndian.AppendUint32(d, r.Count)
	}
	return d
}

// TypeTag and VersionTag return the tags with padding removed.
func (h *Header) TypeTag() string {
	return strings.TrimRight(h.Type, " \x00")
}

func (h *Header) VersionTag() string {
	return strings.TrimRight(h.Version, " \x00")
}

func pad(s string, c byte) []byte {
	b := []byte(s)
	if len(b) > 4 {
		b = b[:4]
	}
	for len(b) < 4 {
		b = append(b, c)
	}
	return b
}
